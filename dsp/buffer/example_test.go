package buffer_test

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/dsp/buffer"
)

func ExampleBuffer() {
	b := buffer.New(8)
	b.Load([]float64{1, 2, 3})
	b.Resize(5)

	fmt.Println(b.Samples())
	fmt.Println(b.Len(), b.Cap())

	// Output:
	// [1 2 3 0 0]
	// 5 8
}
