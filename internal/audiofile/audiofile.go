// Package audiofile reads and writes PCM WAV files as float64 sample slices.
package audiofile

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-spectral/dsp/core"
)

// ErrInvalidFile is returned when the input is not a readable PCM WAV file.
var ErrInvalidFile = errors.New("audiofile: not a valid wav file")

// ErrBitDepth is returned for bit depths other than 16, 24 and 32.
var ErrBitDepth = errors.New("audiofile: unsupported bit depth")

// Audio is a decoded mono signal.
type Audio struct {
	Samples    []float64 // in [-1, 1]
	SampleRate int
	Channels   int // channel count of the source file before downmix
	BitDepth   int
}

// Duration returns the signal length in seconds.
func (a *Audio) Duration() float64 {
	if a.SampleRate <= 0 {
		return 0
	}
	return float64(len(a.Samples)) / float64(a.SampleRate)
}

// Read decodes path and averages all channels into one.
func Read(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFile, path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	channels := max(int(dec.NumChans), 1)
	depth := int(dec.BitDepth)
	if buf.SourceBitDepth > 0 {
		depth = buf.SourceBitDepth
	}
	if !validDepth(depth) {
		return nil, fmt.Errorf("%w: %d", ErrBitDepth, depth)
	}

	scale := 1 / fullScale(depth)
	frames := len(buf.Data) / channels
	out := make([]float64, frames)
	for i := range frames {
		var sum float64
		for ch := range channels {
			sum += float64(buf.Data[i*channels+ch])
		}
		out[i] = sum / float64(channels) * scale
	}

	return &Audio{
		Samples:    out,
		SampleRate: int(dec.SampleRate),
		Channels:   channels,
		BitDepth:   depth,
	}, nil
}

// Write encodes mono samples to path as integer PCM. Samples outside
// [-1, 1] are clipped.
func Write(path string, samples []float64, sampleRate, bitDepth int) error {
	if !validDepth(bitDepth) {
		return fmt.Errorf("%w: %d", ErrBitDepth, bitDepth)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("audiofile: invalid sample rate %d", sampleRate)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth, 1, 1)

	fs := fullScale(bitDepth)
	data := make([]int, len(samples))
	for i, x := range samples {
		v := math.Round(core.Clamp(x, -1, 1) * fs)
		data[i] = int(core.Clamp(v, -fs, fs-1))
	}

	ib := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	if err := enc.Write(ib); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func validDepth(d int) bool { return d == 16 || d == 24 || d == 32 }

func fullScale(depth int) float64 { return float64(int64(1) << (depth - 1)) }
