package sdft_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectral/dsp/sdft"
)

func ExampleResynth() {
	r, err := sdft.NewResynth(sdft.WithCapacity(16), sdft.WithSize(8))
	if err != nil {
		panic(err)
	}

	for _, x := range []float64{1, 0, 0, 0, 0, 0} {
		y := r.ProcessSample(x)
		if math.Abs(y) < 1e-9 {
			y = 0
		}
		fmt.Printf("%.0f ", y)
	}
	fmt.Println()
	// Output:
	// 0 0 0 1 0 0
}
