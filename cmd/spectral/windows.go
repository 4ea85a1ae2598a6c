package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/stft"
	"github.com/cwbudde/algo-spectral/dsp/window"
)

func newWindowsCmd(f *flags) *cobra.Command {
	var symmetric bool

	cmd := &cobra.Command{
		Use:   "windows",
		Short: "Print window properties and hop sizes per overlap policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			size := f.size
			if !core.IsPowerOfTwo(size) {
				return fmt.Errorf("size %d is not a power of two", size)
			}
			return writeWindowTable(cmd.OutOrStdout(), size, !symmetric)
		},
	}

	cmd.Flags().BoolVar(&symmetric, "symmetric", false, "analyse the symmetric form instead of the periodic form used by the engine")

	return cmd
}

// writeWindowTable prints one row per window shape with its measured
// spectral properties and the hop size of every overlap policy at size.
func writeWindowTable(w io.Writer, size int, periodic bool) error {
	var opts []window.Option
	if periodic {
		opts = append(opts, window.WithPeriodic())
	}

	policies := stft.Overlaps()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := []string{"Window", "ENBW [bins]", "Coherent Gain", "BW 3dB [bins]", "Sidelobe [dB]", "Scallop [dB]"}
	for _, p := range policies {
		header = append(header, "hop "+p.String())
	}
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
		return err
	}

	for _, s := range window.Shapes() {
		a := window.AnalyzeShape(s, size, opts...)

		row := fmt.Sprintf("%s\t%.4f\t%.6f\t%.4f\t%.2f\t%.4f",
			s, a.ENBW, a.CoherentGain, a.Bandwidth3dB, a.HighestSidelobedB, a.ScallopLossdB)
		for _, p := range policies {
			row += fmt.Sprintf("\t%d", stft.HopSize(size, p, s))
		}
		if _, err := fmt.Fprintln(tw, row); err != nil {
			return err
		}
	}

	return tw.Flush()
}
