package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spectral/internal/config"
)

// flags holds command line values. Only flags that were set override the
// loaded configuration.
type flags struct {
	configPath string
	mode       string
	size       int
	maxSize    int
	window     string
	overlap    string
	backend    string
	blockSize  int
	bitDepth   int
	gainDB     float64
	wsAddr     string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:           "spectral",
		Short:         "Streaming STFT and sliding DFT processing of audio files",
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "YAML configuration file (default "+config.DefaultPath+" if present)")
	pf.StringVarP(&f.mode, "mode", "m", config.ModeBlock, "engine: block (overlap-add STFT) or sliding (sliding DFT)")
	pf.IntVarP(&f.size, "size", "n", 1024, "frame size, power of two")
	pf.IntVar(&f.maxSize, "max-size", 4096, "maximum frame size, power of two")
	pf.StringVarP(&f.window, "window", "w", "hann", "analysis window shape")
	pf.StringVarP(&f.overlap, "overlap", "o", "default", "overlap policy: none, economy, default, flat-amplitude, flat-power")
	pf.StringVarP(&f.backend, "backend", "b", "algofft", "transform backend: algofft, gonum, godsp, dft")
	pf.IntVar(&f.blockSize, "block-size", 1024, "samples per processing block")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newProcessCmd(f),
		newAnalyzeCmd(f),
		newWindowsCmd(f),
	)

	return root
}

// loadConfig reads the configuration file and applies the flags the user set.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}

	set := cmd.Flags().Changed
	if set("mode") {
		cfg.Engine.Mode = f.mode
	}
	if set("size") {
		cfg.Engine.Size = f.size
	}
	if set("max-size") {
		cfg.Engine.MaxSize = f.maxSize
	}
	if set("window") {
		cfg.Engine.Window = f.window
	}
	if set("overlap") {
		cfg.Engine.Overlap = f.overlap
	}
	if set("backend") {
		cfg.Engine.Backend = f.backend
	}
	if set("block-size") {
		cfg.Stream.BlockSize = f.blockSize
	}
	if set("bit-depth") {
		cfg.Output.BitDepth = f.bitDepth
	}
	if set("gain-db") {
		cfg.Output.GainDB = f.gainDB
	}
	if set("ws") {
		cfg.Transport.WSAddr = f.wsAddr
	}
	if f.verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, _ := logrus.ParseLevel(cfg.LogLevel)
	logrus.SetLevel(level)

	return cfg, nil
}
