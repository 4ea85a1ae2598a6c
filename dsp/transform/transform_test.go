package transform

import (
	"errors"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-spectral/internal/testutil"
)

func backends(t *testing.T, maxSize int) map[string]Transform {
	t.Helper()

	out := map[string]Transform{"godsp": GoDSP{}, "dft": DFT{}}
	for _, name := range []string{"algofft", "gonum"} {
		tr, err := ByName(name, maxSize)
		if err != nil {
			t.Fatalf("ByName(%q): %v", name, err)
		}
		out[name] = tr
	}
	return out
}

func toComplex(x []float64) []complex128 {
	out := make([]complex128, len(x))
	for i, v := range x {
		out[i] = complex(v, 0)
	}
	return out
}

func TestForwardMatchesNaiveDFT(t *testing.T) {
	for name, tr := range backends(t, 256) {
		for _, n := range []int{1, 2, 4, 16, 256} {
			x := testutil.DeterministicNoise(int64(n), 1, n)
			got := make([]complex128, n)
			if err := tr.Forward(got, toComplex(x)); err != nil {
				t.Fatalf("%s n=%d: %v", name, n, err)
			}
			testutil.RequireComplexNearlyEqual(t, got, testutil.NaiveDFT(x), 1e-9)
		}
	}
}

func TestInverseRoundTrip(t *testing.T) {
	for name, tr := range backends(t, 128) {
		for _, n := range []int{2, 8, 128} {
			x := toComplex(testutil.DeterministicNoise(7, 0.5, n))
			freq := make([]complex128, n)
			back := make([]complex128, n)
			if err := tr.Forward(freq, x); err != nil {
				t.Fatalf("%s forward: %v", name, err)
			}
			if err := tr.Inverse(back, freq); err != nil {
				t.Fatalf("%s inverse: %v", name, err)
			}
			testutil.RequireComplexNearlyEqual(t, back, x, 1e-10)
		}
	}
}

func TestInPlace(t *testing.T) {
	for name, tr := range backends(t, 64) {
		x := toComplex(testutil.DeterministicSine(1000, 48000, 1, 64))
		buf := append([]complex128(nil), x...)
		if err := tr.Forward(buf, buf); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if err := tr.Inverse(buf, buf); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		testutil.RequireComplexNearlyEqual(t, buf, x, 1e-10)
	}
}

func TestImpulseIsFlat(t *testing.T) {
	for name, tr := range backends(t, 8) {
		dst := make([]complex128, 8)
		if err := tr.Forward(dst, toComplex(testutil.Impulse(8, 0))); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		for k, v := range dst {
			if cmplx.Abs(v-1) > 1e-12 {
				t.Fatalf("%s bin %d = %v, want 1", name, k, v)
			}
		}
	}
}

func TestBankRejectsUnsupportedSizes(t *testing.T) {
	for _, name := range []string{"algofft", "gonum"} {
		tr, err := ByName(name, 64)
		if err != nil {
			t.Fatal(err)
		}

		cases := []struct{ dst, src int }{{12, 12}, {128, 128}, {8, 16}}
		for _, c := range cases {
			err := tr.Forward(make([]complex128, c.dst), make([]complex128, c.src))
			if !errors.Is(err, ErrSize) {
				t.Fatalf("%s Forward(%d,%d) err = %v, want ErrSize", name, c.dst, c.src, err)
			}
			err = tr.Inverse(make([]complex128, c.dst), make([]complex128, c.src))
			if !errors.Is(err, ErrSize) {
				t.Fatalf("%s Inverse(%d,%d) err = %v, want ErrSize", name, c.dst, c.src, err)
			}
		}
	}
}

func TestEmptyInput(t *testing.T) {
	for name, tr := range backends(t, 4) {
		if err := tr.Forward(nil, nil); !errors.Is(err, ErrSize) {
			t.Fatalf("%s: err = %v, want ErrSize", name, err)
		}
	}
}

func TestConstructorValidation(t *testing.T) {
	for _, n := range []int{0, -8, 12} {
		if _, err := NewAlgoFFT(n); !errors.Is(err, ErrSize) {
			t.Fatalf("NewAlgoFFT(%d) err = %v", n, err)
		}
		if _, err := NewGonum(n); !errors.Is(err, ErrSize) {
			t.Fatalf("NewGonum(%d) err = %v", n, err)
		}
	}

	a, err := NewAlgoFFT(32)
	if err != nil || a.MaxSize() != 32 {
		t.Fatalf("NewAlgoFFT(32) = %v, %v", a, err)
	}
}

func TestByName(t *testing.T) {
	for _, name := range Backends() {
		if _, err := ByName(name, 16); err != nil {
			t.Fatalf("ByName(%q): %v", name, err)
		}
	}
	if _, err := ByName("cufft", 16); !errors.Is(err, ErrBackend) {
		t.Fatalf("err = %v, want ErrBackend", err)
	}
}

func TestBanksDoNotAllocate(t *testing.T) {
	for _, name := range []string{"algofft", "gonum"} {
		tr, err := ByName(name, 512)
		if err != nil {
			t.Fatal(err)
		}
		buf := toComplex(testutil.DeterministicNoise(1, 1, 512))
		out := make([]complex128, 512)

		allocs := testing.AllocsPerRun(50, func() {
			_ = tr.Forward(out, buf)
			_ = tr.Inverse(out, out)
		})
		if allocs != 0 {
			t.Fatalf("%s allocated %v times per run, want 0", name, allocs)
		}
	}
}

func BenchmarkForward(b *testing.B) {
	a, err := NewAlgoFFT(1024)
	if err != nil {
		b.Fatal(err)
	}
	g, err := NewGonum(1024)
	if err != nil {
		b.Fatal(err)
	}
	src := make([]complex128, 1024)
	dst := make([]complex128, 1024)

	for name, tr := range map[string]Transform{"algofft": a, "gonum": g, "godsp": GoDSP{}} {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = tr.Forward(dst, src)
			}
		})
	}
}
