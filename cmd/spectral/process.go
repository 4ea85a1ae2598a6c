package main

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/internal/audiofile"
	"github.com/cwbudde/algo-spectral/internal/config"
)

func newProcessCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process in.wav out.wav",
		Short: "Analyse and resynthesise a WAV file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return processFile(cfg, args[0], args[1])
		},
	}

	cmd.Flags().IntVar(&f.bitDepth, "bit-depth", 16, "output bit depth: 16, 24 or 32")
	cmd.Flags().Float64Var(&f.gainDB, "gain-db", 0, "gain applied to the output in dB")

	return cmd
}

func processFile(cfg *config.Config, inPath, outPath string) error {
	in, err := audiofile.Read(inPath)
	if err != nil {
		return err
	}

	started := time.Now()
	out, err := processSignal(cfg, in.Samples)
	if err != nil {
		return err
	}

	peakDB := core.LinearToDB(peakAbs(out))
	if peakDB > 0 {
		logrus.WithField("peakDBFS", peakDB).Warn("output clips and will be limited to full scale")
	}

	if err := audiofile.Write(outPath, out, in.SampleRate, cfg.Output.BitDepth); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"in":       inPath,
		"out":      outPath,
		"samples":  len(out),
		"rmsIn":    rms(in.Samples),
		"rmsOut":   rms(out),
		"peakDBFS": peakDB,
		"duration": in.Duration(),
		"elapsed":  time.Since(started).Round(time.Millisecond),
	}).Info("processed")

	return nil
}

// processSignal runs in through the configured engine and returns a
// latency-compensated signal of the same length with the output gain
// applied.
func processSignal(cfg *config.Config, in []float64) ([]float64, error) {
	s, err := newStream(cfg, nil)
	if err != nil {
		return nil, err
	}

	out, err := run(cfg, s, in, true)
	if err != nil {
		return nil, err
	}
	if g := cfg.Output.GainDB; g != 0 {
		floats.Scale(core.DBToLinear(g), out)
	}
	return out, nil
}

func rms(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Norm(x, 2) / math.Sqrt(float64(len(x)))
}

func peakAbs(x []float64) float64 {
	peak := 0.0
	for _, v := range x {
		peak = math.Max(peak, math.Abs(v))
	}
	return peak
}
