package spectrum

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-spectral/dsp/sdft"
	"github.com/cwbudde/algo-spectral/internal/testutil"
)

func TestGoertzelMatchesDirectDFT(t *testing.T) {
	const (
		sampleRate = 48000.0
		freq       = 1000.0
	)
	sig := testutil.DeterministicSine(freq, sampleRate, 1.0, 1024)

	g, err := NewGoertzel(freq, sampleRate)
	if err != nil {
		t.Fatal(err)
	}
	g.ProcessBlock(sig)

	var dft complex128
	for n, x := range sig {
		dft += complex(x, 0) * cmplx.Exp(complex(0, -2*math.Pi*freq/sampleRate*float64(n)))
	}

	want := real(dft)*real(dft) + imag(dft)*imag(dft)
	if math.Abs(g.Power()-want) > 1e-7*want {
		t.Fatalf("Power = %v, want %v", g.Power(), want)
	}
	if math.Abs(g.Magnitude()-cmplx.Abs(dft)) > 1e-7*cmplx.Abs(dft) {
		t.Fatalf("Magnitude = %v, want %v", g.Magnitude(), cmplx.Abs(dft))
	}
}

func TestGoertzelMatchesSlidingBin(t *testing.T) {
	const n = 32

	s, err := sdft.New(sdft.WithCapacity(64), sdft.WithSize(n))
	if err != nil {
		t.Fatal(err)
	}
	x := testutil.DeterministicNoise(21, 1, 3*n)
	for _, v := range x {
		s.Step(v)
	}
	frame := s.Frame()

	for _, k := range []int{0, 3, n / 2} {
		g, err := NewGoertzelBin(k, n)
		if err != nil {
			t.Fatal(err)
		}
		g.ProcessBlock(x[len(x)-n:])

		want := cmplx.Abs(frame[k])
		if math.Abs(g.Magnitude()-want) > 1e-9 {
			t.Fatalf("bin %d: goertzel %v, sliding %v", k, g.Magnitude(), want)
		}
	}
}

func TestGoertzelSampleByBlock(t *testing.T) {
	x := testutil.DeterministicNoise(3, 1, 100)

	a, _ := NewGoertzel(440, 8000)
	b, _ := NewGoertzel(440, 8000)
	a.ProcessBlock(x)
	for _, v := range x {
		b.ProcessSample(v)
	}
	if a.Power() != b.Power() {
		t.Fatalf("block %v != per-sample %v", a.Power(), b.Power())
	}

	a.Reset()
	if a.Power() != 0 || a.PowerDB() != -300 {
		t.Fatalf("after Reset: power=%v dB=%v", a.Power(), a.PowerDB())
	}
	if a.Frequency() != 440 {
		t.Fatalf("Frequency() = %v", a.Frequency())
	}
}

func TestGoertzelValidation(t *testing.T) {
	bad := []struct{ f, sr float64 }{
		{100, 0},
		{100, -1},
		{100, math.Inf(1)},
		{-1, 8000},
		{4001, 8000},
		{math.NaN(), 8000},
	}
	for _, c := range bad {
		if _, err := NewGoertzel(c.f, c.sr); err == nil {
			t.Fatalf("NewGoertzel(%v, %v) expected error", c.f, c.sr)
		}
	}
	if _, err := NewGoertzelBin(1, 0); err == nil {
		t.Fatal("NewGoertzelBin(1, 0) expected error")
	}
	if _, err := NewGoertzelBin(9, 16); err == nil {
		t.Fatal("NewGoertzelBin(9, 16) expected error above N/2")
	}
}

func BenchmarkGoertzelProcessBlock(b *testing.B) {
	g, err := NewGoertzel(1000, 48000)
	if err != nil {
		b.Fatal(err)
	}
	x := testutil.DeterministicNoise(1, 1, 1024)

	b.ReportAllocs()
	for b.Loop() {
		g.ProcessBlock(x)
	}
}
