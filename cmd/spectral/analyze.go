package main

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-spectral/dsp/spectrum"
	"github.com/cwbudde/algo-spectral/dsp/stft"
	"github.com/cwbudde/algo-spectral/internal/audiofile"
	"github.com/cwbudde/algo-spectral/internal/config"
	"github.com/cwbudde/algo-spectral/internal/transport"
)

// summary aggregates per-frame analysis results.
type summary struct {
	Frames     int
	PeakMeanHz float64
	PeakStdHz  float64
	EnergyMean float64
	EnergyStd  float64

	CentroidMeanHz float64
	FlatnessMean   float64
}

func newAnalyzeCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze in.wav",
		Short: "Report spectral statistics of a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return analyzeFile(cmd.OutOrStdout(), cfg, args[0])
		},
	}

	cmd.Flags().StringVar(&f.wsAddr, "ws", "", "broadcast frame magnitudes on this websocket address (ws://addr/ws)")

	return cmd
}

func analyzeFile(w io.Writer, cfg *config.Config, path string) error {
	in, err := audiofile.Read(path)
	if err != nil {
		return err
	}

	var sink func(transport.Frame) error
	if cfg.Transport.WSAddr != "" {
		b := transport.NewBroadcaster(cfg.Transport.WSAddr, logrus.StandardLogger())
		if err := b.Start(); err != nil {
			return err
		}
		defer b.Close()
		sink = func(fr transport.Frame) error { return b.Send(fr) }
	}

	sum, err := analyzeSignal(cfg, in.Samples, in.SampleRate, sink)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "file:        %s\nsample rate: %d Hz\nduration:    %.3f s\nframes:      %d\npeak:        %.2f Hz (std %.2f)\nenergy:      %.6g (std %.6g)\ncentroid:    %.2f Hz\nflatness:    %.4f\n",
		path, in.SampleRate, in.Duration(), sum.Frames,
		sum.PeakMeanHz, sum.PeakStdHz, sum.EnergyMean, sum.EnergyStd,
		sum.CentroidMeanHz, sum.FlatnessMean)
	return err
}

// analyzeSignal collects peak frequency, energy and shape descriptors of
// every frame. A non-nil sink receives each frame as it is produced.
func analyzeSignal(cfg *config.Config, in []float64, sampleRate int, sink func(transport.Frame) error) (summary, error) {
	var (
		peaks     []float64
		energies  []float64
		centroids []float64
		flatness  []float64
		sinkErr   error
		mags      = make([]float64, cfg.Engine.Size)
		power     = make([]float64, cfg.Engine.Size)
		hop       = stft.HopSize(cfg.Engine.Size, cfg.Engine.OverlapPolicy(), cfg.Engine.Shape())
	)

	onFrame := func(frame []complex128) {
		n := len(frame)
		k, _ := spectrum.PeakBin(frame)
		hz := spectrum.BinFrequency(k, n, float64(sampleRate))

		m := spectrum.PowerInto(power, frame)
		energy := floats.Sum(power[:m]) / float64(n)

		half := spectrum.MagnitudeInto(mags, frame[:n/2+1])
		desc := spectrum.Describe(mags[:half], n, float64(sampleRate))

		if sink != nil && sinkErr == nil {
			sinkErr = sink(transport.Frame{
				Index:      len(peaks),
				Time:       float64(n+len(peaks)*hop) / float64(sampleRate),
				SampleRate: sampleRate,
				PeakBin:    k,
				PeakHz:     hz,
				Energy:     energy,
				Centroid:   desc.Centroid,
				Flatness:   desc.Flatness,
				Magnitudes: mags[:half],
			})
		}

		peaks = append(peaks, hz)
		energies = append(energies, energy)
		centroids = append(centroids, desc.Centroid)
		flatness = append(flatness, desc.Flatness)
	}

	s, err := newStream(cfg, onFrame)
	if err != nil {
		return summary{}, err
	}

	if _, err := run(cfg, s, in, false); err != nil {
		return summary{}, err
	}
	if sinkErr != nil {
		return summary{}, sinkErr
	}

	out := summary{Frames: len(peaks)}
	if len(peaks) > 0 {
		out.PeakMeanHz, out.PeakStdHz = stat.PopMeanStdDev(peaks, nil)
		out.EnergyMean, out.EnergyStd = stat.PopMeanStdDev(energies, nil)
		out.CentroidMeanHz = stat.Mean(centroids, nil)
		out.FlatnessMean = stat.Mean(flatness, nil)
	}

	logrus.WithFields(logrus.Fields{
		"frames": out.Frames,
		"peakHz": out.PeakMeanHz,
	}).Debug("analysis complete")

	return out, nil
}
