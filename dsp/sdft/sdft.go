package sdft

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectral/dsp/ring"
	"github.com/cwbudde/algo-spectral/dsp/transform"
)

const (
	defaultCapacity = 2048
	defaultSize     = 256
)

// ErrSize is returned when the window length is not in [1, capacity].
var ErrSize = errors.New("sdft: invalid size")

// SlidingDFT maintains N complex bins over a sliding window of the input.
type SlidingDFT struct {
	history *ring.Ring
	size    int

	acc []complex128
	rot []complex128

	// resync scratch
	tr     transform.Transform
	window []float64
	work   []complex128

	resyncEvery int
	sinceResync int
}

// Option configures a SlidingDFT.
type Option func(*config)

type config struct {
	capacity    int
	size        int
	resyncEvery int
	tr          transform.Transform
}

// WithCapacity sets the history length, which bounds the window size.
// Must be a power of two. Default 2048.
func WithCapacity(n int) Option {
	return func(c *config) { c.capacity = n }
}

// WithSize sets the initial window length N. Default 256.
func WithSize(n int) Option {
	return func(c *config) { c.size = n }
}

// WithResyncInterval recomputes all bins from the history every n samples,
// discarding accumulated rounding error. Zero (the default) never resyncs.
func WithResyncInterval(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.resyncEvery = n
		}
	}
}

// WithTransform sets the transform used by Resync. The default is the
// direct [transform.DFT], which handles any window length.
func WithTransform(t transform.Transform) Option {
	return func(c *config) {
		if t != nil {
			c.tr = t
		}
	}
}

// New returns a sliding DFT with zeroed history.
func New(opts ...Option) (*SlidingDFT, error) {
	cfg := config{
		capacity: defaultCapacity,
		size:     defaultSize,
		tr:       transform.DFT{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	history, err := ring.New(cfg.capacity)
	if err != nil {
		return nil, fmt.Errorf("sdft: %w", err)
	}
	if cfg.size <= 0 || cfg.size > cfg.capacity {
		return nil, fmt.Errorf("sdft: size %d outside [1, %d]: %w", cfg.size, cfg.capacity, ErrSize)
	}

	s := &SlidingDFT{
		history:     history,
		acc:         make([]complex128, cfg.capacity),
		rot:         make([]complex128, cfg.capacity),
		tr:          cfg.tr,
		window:      make([]float64, cfg.capacity),
		work:        make([]complex128, cfg.capacity),
		resyncEvery: cfg.resyncEvery,
	}
	s.setSize(cfg.size)

	return s, nil
}

// Size returns the window length N.
func (s *SlidingDFT) Size() int { return s.size }

// Capacity returns the history length.
func (s *SlidingDFT) Capacity() int { return s.history.Len() }

// SetSize changes the window length. The bins are recomputed from the
// existing history so they describe the last n samples immediately. If the
// resync transform rejects n the previous size is restored.
func (s *SlidingDFT) SetSize(n int) error {
	if n <= 0 || n > s.history.Len() {
		return fmt.Errorf("sdft: size %d outside [1, %d]: %w", n, s.history.Len(), ErrSize)
	}
	if n == s.size {
		return nil
	}

	prev := s.size
	s.setSize(n)
	if err := s.Resync(); err != nil {
		s.setSize(prev)
		_ = s.Resync()
		return err
	}

	return nil
}

func (s *SlidingDFT) setSize(n int) {
	s.size = n
	for k := range n {
		sin, cos := math.Sincos(2 * math.Pi * float64(k) / float64(n))
		s.rot[k] = complex(cos, sin)
	}
	clear(s.acc[n:])
}

// Step pushes x and returns the updated frame. The slice aliases internal
// state and is valid until the next call that mutates s.
func (s *SlidingDFT) Step(x float64) []complex128 {
	n := s.size
	diff := complex(x-s.history.At(n-1), 0)
	s.history.Push(x)

	acc := s.acc[:n]
	rot := s.rot[:n]
	for k := range acc {
		acc[k] = (acc[k] + diff) * rot[k]
	}

	if s.resyncEvery > 0 {
		s.sinceResync++
		if s.sinceResync >= s.resyncEvery {
			// Resync only fails if the transform rejects n; keep the
			// recursive result in that case.
			_ = s.Resync()
		}
	}

	return acc
}

// Frame returns the current bins without advancing.
func (s *SlidingDFT) Frame() []complex128 { return s.acc[:s.size] }

// Resync recomputes every bin directly from the last N samples.
func (s *SlidingDFT) Resync() error {
	n := s.size
	s.sinceResync = 0

	window := s.window[:n]
	s.history.CopyTo(window)

	work := s.work[:n]
	for i, v := range window {
		work[i] = complex(v, 0)
	}

	if err := s.tr.Forward(s.acc[:n], work); err != nil {
		return fmt.Errorf("sdft: resync: %w", err)
	}

	return nil
}

// Reset zeroes history and bins.
func (s *SlidingDFT) Reset() {
	s.history.Reset()
	clear(s.acc)
	s.sinceResync = 0
}
