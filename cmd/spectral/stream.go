package main

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-spectral/dsp/buffer"
	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/sdft"
	"github.com/cwbudde/algo-spectral/dsp/stft"
	"github.com/cwbudde/algo-spectral/dsp/transform"
	"github.com/cwbudde/algo-spectral/internal/config"
)

// frameFunc receives every analysed frame. The slice must not be modified
// or retained.
type frameFunc func(frame []complex128)

// stream drives either the overlap-add engine or the sliding resynthesizer
// behind one block interface.
type stream struct {
	block *stft.Engine
	slide *sdft.Resynth

	size    int
	hop     int
	clock   int
	onFrame frameFunc
}

func newStream(cfg *config.Config, onFrame frameFunc) (*stream, error) {
	e := cfg.Engine

	tr, err := transform.ByName(e.Backend, e.MaxSize)
	if err != nil {
		return nil, err
	}

	s := &stream{
		size:    e.Size,
		hop:     stft.HopSize(e.Size, e.OverlapPolicy(), e.Shape()),
		onFrame: onFrame,
	}

	switch e.Mode {
	case config.ModeSliding:
		s.slide, err = sdft.NewResynth(
			sdft.WithCapacity(e.MaxSize),
			sdft.WithSize(e.Size),
			sdft.WithResyncInterval(e.ResyncInterval),
			sdft.WithTransform(tr),
		)
	default:
		opts := e.EngineOptions()
		if onFrame != nil {
			opts = append(opts, stft.WithProcessor(stft.SpectralFunc(onFrame)))
		}
		s.block, err = stft.New(tr, tr, opts...)
	}
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"mode":    e.Mode,
		"size":    e.Size,
		"hop":     s.hop,
		"window":  e.Shape().String(),
		"overlap": e.OverlapPolicy().String(),
		"backend": e.Backend,
		"latency": s.Latency(),
	}).Debug("stream configured")

	return s, nil
}

// Latency returns the input to output delay in samples.
func (s *stream) Latency() int {
	if s.block != nil {
		return s.block.Latency()
	}
	return s.slide.Latency()
}

// ProcessBlock processes src into dst and reports the first engine error.
func (s *stream) ProcessBlock(dst, src []float64) error {
	if s.block != nil {
		s.block.ProcessBlock(dst, src)
		return s.block.Err()
	}

	for i, x := range src {
		dst[i] = s.slide.ProcessSample(x)
		s.clock++
		if s.onFrame != nil && s.clock >= s.size && (s.clock-s.size)%s.hop == 0 {
			s.onFrame(s.slide.DFT().Frame())
		}
	}
	return nil
}

// run feeds in through the stream block by block. With compensate set the
// input is padded by the latency and the output is shifted back so that
// out[i] lines up with in[i].
func run(cfg *config.Config, s *stream, in []float64, compensate bool) ([]float64, error) {
	sc := core.NewStreamConfig(core.WithBlockSize(cfg.Stream.BlockSize))
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	lat := 0
	if compensate {
		lat = s.Latency()
	}
	total := len(in) + lat

	pool := buffer.NewPool()
	src := pool.Get(sc.BlockSize)
	dst := pool.Get(sc.BlockSize)
	defer pool.Put(src)
	defer pool.Put(dst)

	out := make([]float64, 0, total)
	for b := range sc.Blocks(total) {
		start := b * sc.BlockSize
		end := min(start+sc.BlockSize, total)

		src.Resize(end - start)
		dst.Resize(end - start)
		src.Zero()
		if start < len(in) {
			copy(src.Samples(), in[start:min(end, len(in))])
		}

		if err := s.ProcessBlock(dst.Samples(), src.Samples()); err != nil {
			return nil, fmt.Errorf("block %d: %w", b, err)
		}
		out = append(out, dst.Samples()...)
	}

	return out[lat:], nil
}
