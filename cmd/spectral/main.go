// Command spectral runs the streaming spectral engines over WAV files.
//
// Usage:
//
//	spectral process [flags] in.wav out.wav
//	spectral analyze [flags] in.wav
//	spectral windows [flags]
//
// Examples:
//
//	spectral process --size 2048 --window blackman-harris in.wav out.wav
//	spectral process --mode sliding --size 512 in.wav out.wav
//	spectral analyze --ws :8090 in.wav
//	spectral windows --size 4096
package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logrus.WithError(err).Error("spectral failed")
		os.Exit(1)
	}
}
