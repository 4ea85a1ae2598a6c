package stft

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/transform"
	"github.com/cwbudde/algo-spectral/dsp/window"
)

const (
	defaultMaxSize = 4096
	defaultSize    = 1024

	// Output samples whose summed window weight has a magnitude below
	// normFloor are emitted as zero.
	normFloor = 1e-9
)

var (
	// ErrSize is returned for frame sizes that are not a power of two in
	// [1, max size].
	ErrSize = errors.New("stft: invalid size")
	// ErrShape is returned for undefined window shapes.
	ErrShape = errors.New("stft: invalid window shape")
	// ErrOverlap is returned for undefined overlap policies.
	ErrOverlap = errors.New("stft: invalid overlap policy")

	errNilTransform = errors.New("stft: nil transform")
)

// SpectralProcessor modifies a frame in place between the forward and the
// inverse transform. The frame is only valid during the call.
type SpectralProcessor interface {
	ProcessSpectrum(frame []complex128)
}

// SpectralFunc adapts a plain function to [SpectralProcessor].
type SpectralFunc func(frame []complex128)

// ProcessSpectrum calls f(frame).
func (f SpectralFunc) ProcessSpectrum(frame []complex128) { f(frame) }

type bufState uint8

const (
	stateIdle bufState = iota
	stateFilling
)

// slot is one analysis buffer of the pool.
type slot struct {
	data  []float64
	fill  int
	start int
	state bufState
}

// Engine is a streaming STFT with overlap-add output. It is not safe for
// concurrent use.
type Engine struct {
	forward, inverse transform.Transform
	processor        SpectralProcessor

	maxSize int
	size    int
	shape   window.Shape
	overlap Overlap
	hop     int
	active  int

	pool  [poolSize]slot
	lead  int
	clock int

	window   []float64
	weighted []float64
	timeIn   []complex128
	freq     []complex128
	timeOut  []complex128

	// overlap-add accumulators indexed by absolute time & (maxSize-1)
	outAcc  []float64
	normAcc []float64

	dirty bool
	err   error
}

// Option configures an Engine.
type Option func(*config)

type config struct {
	maxSize   int
	size      int
	shape     window.Shape
	overlap   Overlap
	processor SpectralProcessor
}

// WithMaxSize sets the largest frame size the engine can be configured to.
// All buffers are allocated for it up front. Default 4096.
func WithMaxSize(n int) Option {
	return func(c *config) { c.maxSize = n }
}

// WithSize sets the initial frame size N. Default 1024.
func WithSize(n int) Option {
	return func(c *config) { c.size = n }
}

// WithWindow sets the analysis window shape. Default window.Hann.
func WithWindow(s window.Shape) Option {
	return func(c *config) { c.shape = s }
}

// WithOverlap sets the overlap policy. Default OverlapDefault.
func WithOverlap(o Overlap) Option {
	return func(c *config) { c.overlap = o }
}

// WithProcessor installs a spectral processor.
func WithProcessor(p SpectralProcessor) Option {
	return func(c *config) { c.processor = p }
}

// New returns an engine using forward and inverse for its transforms. The
// same Transform may be passed for both.
func New(forward, inverse transform.Transform, opts ...Option) (*Engine, error) {
	if forward == nil || inverse == nil {
		return nil, errNilTransform
	}

	cfg := config{
		maxSize: defaultMaxSize,
		size:    defaultSize,
		shape:   window.Hann,
		overlap: OverlapDefault,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if !core.IsPowerOfTwo(cfg.maxSize) {
		return nil, fmt.Errorf("stft: max size %d is not a power of two: %w", cfg.maxSize, ErrSize)
	}
	if err := validate(cfg.size, cfg.maxSize, cfg.shape, cfg.overlap); err != nil {
		return nil, err
	}

	e := &Engine{
		forward:   forward,
		inverse:   inverse,
		processor: cfg.processor,
		maxSize:   cfg.maxSize,
		size:      cfg.size,
		shape:     cfg.shape,
		overlap:   cfg.overlap,
		window:    make([]float64, cfg.maxSize),
		weighted:  make([]float64, cfg.maxSize),
		timeIn:    make([]complex128, cfg.maxSize),
		freq:      make([]complex128, cfg.maxSize),
		timeOut:   make([]complex128, cfg.maxSize),
		outAcc:    make([]float64, cfg.maxSize),
		normAcc:   make([]float64, cfg.maxSize),
	}
	for i := range e.pool {
		e.pool[i].data = make([]float64, cfg.maxSize)
	}

	e.applyConfig()

	return e, nil
}

func validate(size, maxSize int, shape window.Shape, overlap Overlap) error {
	if !core.IsPowerOfTwo(size) || size > maxSize {
		return fmt.Errorf("stft: size %d (power of two up to %d): %w", size, maxSize, ErrSize)
	}
	if !shape.Valid() {
		return fmt.Errorf("stft: %v: %w", shape, ErrShape)
	}
	if !overlap.Valid() {
		return fmt.Errorf("stft: %v: %w", overlap, ErrOverlap)
	}
	return nil
}

// SetSize changes the frame size. In-flight frames are discarded.
func (e *Engine) SetSize(n int) error {
	if err := validate(n, e.maxSize, e.shape, e.overlap); err != nil {
		return err
	}
	e.size = n
	e.applyConfig()
	return nil
}

// SetWindow changes the window shape. In-flight frames are discarded.
func (e *Engine) SetWindow(s window.Shape) error {
	if err := validate(e.size, e.maxSize, s, e.overlap); err != nil {
		return err
	}
	e.shape = s
	e.applyConfig()
	return nil
}

// SetOverlap changes the overlap policy. In-flight frames are discarded.
func (e *Engine) SetOverlap(o Overlap) error {
	if err := validate(e.size, e.maxSize, e.shape, o); err != nil {
		return err
	}
	e.overlap = o
	e.applyConfig()
	return nil
}

// SetProcessor replaces the spectral processor. Nil disables it.
func (e *Engine) SetProcessor(p SpectralProcessor) { e.processor = p }

// applyConfig derives the hop and window and rewinds all state.
func (e *Engine) applyConfig() {
	n := e.size
	e.hop = HopSize(n, e.overlap, e.shape)
	e.active = ceilDiv(n, e.hop)

	window.Fill(e.window[:n], e.shape, window.WithPeriodic())

	e.Reset()
}

// Reset discards buffered input, pending output, the ready flag and any
// stored error. Configuration is kept.
func (e *Engine) Reset() {
	for i := range e.pool {
		e.pool[i].fill = 0
		e.pool[i].start = 0
		e.pool[i].state = stateIdle
	}
	e.lead = e.active - 1
	e.clock = 0

	clear(e.outAcc)
	clear(e.normAcc)
	clear(e.freq)

	e.dirty = false
	e.err = nil
}

// Size returns the frame size N.
func (e *Engine) Size() int { return e.size }

// MaxSize returns the largest configurable frame size.
func (e *Engine) MaxSize() int { return e.maxSize }

// Window returns the window shape.
func (e *Engine) Window() window.Shape { return e.shape }

// Overlap returns the overlap policy.
func (e *Engine) Overlap() Overlap { return e.overlap }

// Hop returns the hop size H.
func (e *Engine) Hop() int { return e.hop }

// ActiveBuffers returns how many analysis buffers are in flight.
func (e *Engine) ActiveBuffers() int { return e.active }

// Latency returns the delay of ProcessSample's output in samples.
func (e *Engine) Latency() int { return e.size - 1 }

// Err returns the first transform error since the last configuration
// change or Reset.
func (e *Engine) Err() error { return e.err }

// IsReady reports whether a new frame was produced since the last call and
// clears the flag.
func (e *Engine) IsReady() bool {
	ready := e.dirty
	e.dirty = false
	return ready
}

// Frame returns the most recent frame after spectral processing. The slice
// aliases internal state and is overwritten by later frames.
func (e *Engine) Frame() []complex128 { return e.freq[:e.size] }

// TakeFrame copies the most recent frame into dst, clears the ready flag and
// returns the number of bins copied.
func (e *Engine) TakeFrame(dst []complex128) int {
	e.dirty = false
	return copy(dst, e.freq[:e.size])
}

// ProcessSample feeds one sample and returns the overlap-add output for the
// sample Latency() steps earlier.
//
// The output is the overlap-added signal divided by the summed window
// weights at that position, so it reproduces the input wherever that sum is
// nonzero, including negative sums from Flat-Top lobes. Positions where every
// covering frame has zero weight cannot be recovered and are emitted as 0.
// With OverlapNone this happens at each frame start for shapes whose
// periodic form starts at zero (Triangular, Welch, Hann, Nuttall).
func (e *Engine) ProcessSample(x float64) float64 {
	n := e.size
	t := e.clock
	e.clock++

	if t%e.hop == 0 {
		e.lead = (e.lead + 1) % e.active
		s := &e.pool[e.lead]
		s.fill = 0
		s.start = t
		s.state = stateFilling
	}

	for i := range e.active {
		s := &e.pool[i]
		if s.state != stateFilling {
			continue
		}
		s.data[s.fill] = x
		s.fill++
		if s.fill == n {
			e.processSlot(s)
			s.fill = 0
			s.state = stateIdle
		}
	}

	mask := e.maxSize - 1
	idx := (t - n + 1) & mask
	y := 0.0
	if w := e.normAcc[idx]; math.Abs(w) > normFloor {
		y = e.outAcc[idx] / w
	}
	e.outAcc[idx] = 0
	e.normAcc[idx] = 0

	return y
}

// ProcessBlock processes src into dst. dst and src may alias.
func (e *Engine) ProcessBlock(dst, src []float64) {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = e.ProcessSample(src[i])
	}
}

// processSlot runs window, forward transform, spectral processor, inverse
// transform and overlap-add for a full buffer.
func (e *Engine) processSlot(s *slot) {
	n := e.size
	w := e.window[:n]

	weighted := e.weighted[:n]
	vecmath.MulBlock(weighted, s.data[:n], w)

	timeIn := e.timeIn[:n]
	for i, v := range weighted {
		timeIn[i] = complex(v, 0)
	}

	freq := e.freq[:n]
	if err := e.forward.Forward(freq, timeIn); err != nil {
		e.fail(fmt.Errorf("stft: forward: %w", err))
		return
	}

	if e.processor != nil {
		e.processor.ProcessSpectrum(freq)
	}

	timeOut := e.timeOut[:n]
	if err := e.inverse.Inverse(timeOut, freq); err != nil {
		e.fail(fmt.Errorf("stft: inverse: %w", err))
		return
	}

	mask := e.maxSize - 1
	for i, v := range timeOut {
		idx := (s.start + i) & mask
		e.outAcc[idx] += real(v)
		e.normAcc[idx] += w[i]
	}
	e.dirty = true
}

func (e *Engine) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}
