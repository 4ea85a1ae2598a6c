package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-spectral/internal/testutil"
)

func TestMagnitudePhasePower(t *testing.T) {
	bins := []complex128{3 + 4i, -1 - 1i, 0}

	testutil.RequireSliceNearlyEqual(t, Magnitude(bins), []float64{5, math.Sqrt2, 0}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, Power(bins), []float64{25, 2, 0}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, Phase(bins), []float64{math.Atan2(4, 3), -3 * math.Pi / 4, 0}, 1e-12)

	if Magnitude(nil) != nil || Power(nil) != nil || Phase(nil) != nil {
		t.Fatal("expected nil for empty frame")
	}
}

func TestIntoVariants(t *testing.T) {
	bins := []complex128{3 + 4i, 6 - 8i, 1}

	dst := make([]float64, 2)
	if n := MagnitudeInto(dst, bins); n != 2 {
		t.Fatalf("MagnitudeInto copied %d", n)
	}
	testutil.RequireSliceNearlyEqual(t, dst, []float64{5, 10}, 1e-12)

	if n := PowerInto(dst, bins[2:]); n != 1 || dst[0] != 1 {
		t.Fatalf("PowerInto n=%d dst=%v", n, dst)
	}
	if MagnitudeInto(nil, bins) != 0 || PowerInto(dst, nil) != 0 {
		t.Fatal("expected zero count for empty input")
	}
}

func TestMagnitudeIntoDoesNotAllocate(t *testing.T) {
	frame := make([]complex128, 512)
	for i := range frame {
		frame[i] = complex(float64(i), 1)
	}
	dst := make([]float64, len(frame))
	MagnitudeInto(dst, frame)

	allocs := testing.AllocsPerRun(100, func() {
		MagnitudeInto(dst, frame)
	})
	if allocs > 0 {
		t.Fatalf("MagnitudeInto allocated %v times", allocs)
	}
}

func TestUnwrapPhase(t *testing.T) {
	out := UnwrapPhase([]float64{2.8, -2.7, -2.6})
	if len(out) != 3 || out[1] <= out[0] {
		t.Fatalf("expected increasing unwrapped phase: %v", out)
	}
	if math.Abs((out[1]-out[0])-(2*math.Pi-5.5)) > 1e-12 {
		t.Fatalf("unexpected unwrap delta: %f", out[1]-out[0])
	}
	if UnwrapPhase(nil) != nil {
		t.Fatal("expected nil")
	}
}

func TestPeakBin(t *testing.T) {
	const n = 64

	frame := testutil.NaiveDFT(testutil.BinSine(5, n, 1, n))
	k, mag := PeakBin(frame)
	if k != 5 {
		t.Fatalf("PeakBin = %d, want 5", k)
	}
	if math.Abs(mag-n/2) > 1e-9 {
		t.Fatalf("peak magnitude = %v, want %v", mag, n/2)
	}

	if k, _ := PeakBin(nil); k != -1 {
		t.Fatalf("PeakBin(nil) = %d, want -1", k)
	}
	// Mirror bins above N/2 are ignored.
	if k, _ := PeakBin([]complex128{0, 1, 2, 9}); k != 2 {
		t.Fatalf("PeakBin ignored upper half incorrectly: %d", k)
	}
}

func TestBinFrequency(t *testing.T) {
	if got := BinFrequency(10, 1024, 48000); math.Abs(got-468.75) > 1e-12 {
		t.Fatalf("BinFrequency = %v", got)
	}
	if BinFrequency(3, 0, 48000) != 0 {
		t.Fatal("expected 0 for invalid size")
	}
}
