package core

import (
	"errors"
	"fmt"
)

// ErrStreamConfig is returned by StreamConfig.Validate.
var ErrStreamConfig = errors.New("core: invalid stream config")

// StreamConfig holds the settings shared by block-wise drivers of a
// Processor: the sample rate of the stream and the block length used when
// feeding it.
type StreamConfig struct {
	SampleRate float64
	BlockSize  int
}

// StreamOption mutates a StreamConfig. Invalid values are ignored.
type StreamOption func(*StreamConfig)

// DefaultStreamConfig returns 48 kHz with 1024-sample blocks.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		SampleRate: 48000,
		BlockSize:  1024,
	}
}

// WithSampleRate sets the stream sample rate.
func WithSampleRate(sampleRate float64) StreamOption {
	return func(cfg *StreamConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the block length.
func WithBlockSize(blockSize int) StreamOption {
	return func(cfg *StreamConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// NewStreamConfig applies opts to the defaults.
func NewStreamConfig(opts ...StreamOption) StreamConfig {
	cfg := DefaultStreamConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate reports whether the config can drive a stream.
func (c StreamConfig) Validate() error {
	if !(c.SampleRate > 0) {
		return fmt.Errorf("%w: sample rate %v", ErrStreamConfig, c.SampleRate)
	}
	if c.BlockSize <= 0 {
		return fmt.Errorf("%w: block size %d", ErrStreamConfig, c.BlockSize)
	}
	return nil
}

// Blocks returns how many blocks cover total samples.
func (c StreamConfig) Blocks(total int) int {
	if total <= 0 || c.BlockSize <= 0 {
		return 0
	}
	return (total + c.BlockSize - 1) / c.BlockSize
}
