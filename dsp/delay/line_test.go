package delay

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/internal/testutil"
)

func TestNewValidation(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("expected error for size=0")
	}

	if _, err := New(-1); err == nil {
		t.Fatal("expected error for size=-1")
	}
}

func TestNewRoundsToPowerOfTwo(t *testing.T) {
	d, err := New(100)
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() != 128 {
		t.Fatalf("Len() = %d, want 128", d.Len())
	}
	if d.MaxDelay() < 100 {
		t.Fatalf("MaxDelay() = %v, want >= 100", d.MaxDelay())
	}
}

func TestReadWrite(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 5; i++ {
		d.Write(float64(i))
	}
	for delay, want := range map[int]float64{1: 5, 2: 4, 5: 1} {
		if got := d.Read(delay); got != want {
			t.Fatalf("Read(%d) = %v, want %v", delay, got, want)
		}
	}
}

func TestSingleHeadIsPureDelay(t *testing.T) {
	for _, mode := range []Interp{InterpTruncate, InterpNearest, InterpLinear, InterpQuadratic, InterpHermite} {
		d, err := New(32, WithInterp(mode), WithMix(MixOff))
		if err != nil {
			t.Fatal(err)
		}
		d.AddHead(5, 1)

		in := testutil.Impulse(16, 0)
		for i, x := range in {
			y := d.ProcessSample(x)
			want := 0.0
			if i == 5 {
				want = 1
			}
			if math.Abs(y-want) > 1e-12 {
				t.Fatalf("mode %d: y[%d] = %v, want %v", mode, i, y, want)
			}
		}
	}
}

func TestLinearFractionalDelay(t *testing.T) {
	d, err := New(16, WithInterp(InterpLinear), WithMix(MixOff))
	if err != nil {
		t.Fatal(err)
	}
	d.AddHead(2.5, 1)

	out := make([]float64, 8)
	for i, x := range testutil.Impulse(8, 0) {
		out[i] = d.ProcessSample(x)
	}
	testutil.RequireSliceNearlyEqual(t, out, []float64{0, 0, 0.5, 0.5, 0, 0, 0, 0}, 1e-12)
}

func TestMixScaling(t *testing.T) {
	tests := []struct {
		name string
		mix  Mix
		want float64
	}{
		{name: "off", mix: MixOff, want: 2},
		{name: "perceptual", mix: MixPerceptual, want: 2 / math.Sqrt2},
		{name: "unity", mix: MixUnity, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(16, WithMix(tt.mix))
			if err != nil {
				t.Fatal(err)
			}
			d.AddHead(1, 1)
			d.AddHead(3, 1)

			var y float64
			for range 8 {
				y = d.ProcessSample(1)
			}
			if math.Abs(y-tt.want) > 1e-12 {
				t.Fatalf("steady state = %v, want %v", y, tt.want)
			}
		})
	}
}

func TestHeadManagement(t *testing.T) {
	d, err := New(16)
	if err != nil {
		t.Fatal(err)
	}
	a := d.AddHead(1, 1)
	b := d.AddHead(2, -1)
	if a != 0 || b != 1 || d.Heads() != 2 {
		t.Fatalf("indices = %d,%d heads = %d", a, b, d.Heads())
	}

	if err := d.SetHead(1, 4); err != nil {
		t.Fatalf("SetHead: %v", err)
	}
	if err := d.SetHead(2, 4); err == nil {
		t.Fatal("SetHead(2) expected error")
	}
	if err := d.RemoveHead(0); err != nil {
		t.Fatalf("RemoveHead: %v", err)
	}
	if d.Heads() != 1 || d.offsets[0] != 4 || d.gains[0] != -1 {
		t.Fatalf("after remove: offsets=%v gains=%v", d.offsets, d.gains)
	}
	if err := d.RemoveHead(5); err == nil {
		t.Fatal("RemoveHead(5) expected error")
	}
}

func TestLongRunAllModesStayFinite(t *testing.T) {
	d, err := New(4096)
	if err != nil {
		t.Fatal(err)
	}
	d.AddHead(100, 1)
	d.AddHead(200.5, -1)

	out := make([]float64, 20000)
	modes := []Interp{InterpTruncate, InterpNearest, InterpLinear, InterpQuadratic, InterpHermite}
	for i := range out {
		d.SetInterp(modes[(i/4000)%len(modes)])
		out[i] = d.ProcessSample(1)
	}
	testutil.RequireFinite(t, out)
}

func TestLineIsProcessor(t *testing.T) {
	d, err := New(8, WithMix(MixOff))
	if err != nil {
		t.Fatal(err)
	}
	d.AddHead(1, 1)

	var p core.Processor = d
	chain := core.NewChain(p, core.Passthrough{})
	chain.ProcessSample(3)
	if got := chain.ProcessSample(0); got != 3 {
		t.Fatalf("chained delay = %v, want 3", got)
	}
}

func TestReset(t *testing.T) {
	d, err := New(8)
	if err != nil {
		t.Fatal(err)
	}
	d.Write(1)
	d.Reset()
	if d.Read(1) != 0 {
		t.Fatalf("Read(1) after Reset = %v, want 0", d.Read(1))
	}
}
