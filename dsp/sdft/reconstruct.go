package sdft

import "fmt"

// Reconstruct returns one time-domain sample from a frame by summing the
// even bins, subtracting the odd bins and dividing by the frame length.
//
// This evaluates the inverse DFT at the middle of the window only. For an
// even length N produced by [SlidingDFT] the result is the sample N/2-1
// steps old. It panics on an empty frame.
func Reconstruct(frame []complex128) float64 {
	if len(frame) == 0 {
		panic("sdft: Reconstruct on empty frame")
	}

	var sum complex128
	for k, v := range frame {
		if k&1 == 0 {
			sum += v
		} else {
			sum -= v
		}
	}

	return real(sum) / float64(len(frame))
}

// Resynth runs a SlidingDFT and immediately reconstructs each frame. It
// implements core.Processor and acts as a pure delay of Latency samples
// for even window lengths.
type Resynth struct {
	dft *SlidingDFT
}

// NewResynth builds a Resynth over a new SlidingDFT.
func NewResynth(opts ...Option) (*Resynth, error) {
	dft, err := New(opts...)
	if err != nil {
		return nil, fmt.Errorf("resynth: %w", err)
	}
	return &Resynth{dft: dft}, nil
}

// DFT exposes the underlying transform, e.g. for SetSize.
func (r *Resynth) DFT() *SlidingDFT { return r.dft }

// Latency returns the delay between input and output in samples.
func (r *Resynth) Latency() int { return max(r.dft.Size()/2-1, 0) }

// ProcessSample steps the transform and reconstructs one sample.
func (r *Resynth) ProcessSample(x float64) float64 {
	return Reconstruct(r.dft.Step(x))
}

// ProcessBlock processes src into dst. dst and src may alias.
func (r *Resynth) ProcessBlock(dst, src []float64) {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = r.ProcessSample(src[i])
	}
}

// Reset clears the transform state.
func (r *Resynth) Reset() { r.dft.Reset() }
