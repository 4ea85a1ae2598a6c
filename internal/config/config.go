// Package config loads the spectral CLI configuration from YAML with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/stft"
	"github.com/cwbudde/algo-spectral/dsp/transform"
	"github.com/cwbudde/algo-spectral/dsp/window"
)

// Processing modes.
const (
	ModeBlock   = "block"
	ModeSliding = "sliding"
)

// DefaultPath is tried when Load is called with an empty path.
const DefaultPath = "spectral.yaml"

// Output gain limits in dB.
const (
	minGainDB = -120
	maxGainDB = 40
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the top-level CLI configuration.
type Config struct {
	LogLevel  string          `yaml:"log_level"`
	Engine    EngineConfig    `yaml:"engine"`
	Stream    StreamConfig    `yaml:"stream"`
	Output    OutputConfig    `yaml:"output"`
	Transport TransportConfig `yaml:"transport"`
}

// EngineConfig selects and shapes the spectral engine.
type EngineConfig struct {
	Mode           string `yaml:"mode"`            // "block" or "sliding"
	Size           int    `yaml:"size"`            // frame size N, power of two
	MaxSize        int    `yaml:"max_size"`        // buffer capacity, power of two >= size
	Window         string `yaml:"window"`          // window shape name
	Overlap        string `yaml:"overlap"`         // overlap policy name
	Backend        string `yaml:"backend"`         // transform backend name
	ResyncInterval int    `yaml:"resync_interval"` // sliding mode only, 0 disables
}

// StreamConfig controls block-wise feeding.
type StreamConfig struct {
	BlockSize int `yaml:"block_size"`
}

// OutputConfig controls written audio.
type OutputConfig struct {
	BitDepth int     `yaml:"bit_depth"`
	GainDB   float64 `yaml:"gain_db"` // applied to the resynthesised signal
}

// TransportConfig controls the websocket frame broadcaster.
type TransportConfig struct {
	WSAddr string `yaml:"ws_addr"` // empty disables broadcasting
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Engine: EngineConfig{
			Mode:    ModeBlock,
			Size:    1024,
			MaxSize: 4096,
			Window:  "hann",
			Overlap: "default",
			Backend: "algofft",
		},
		Stream: StreamConfig{BlockSize: 1024},
		Output: OutputConfig{BitDepth: 16},
	}
}

// Load reads path, applies SPECTRAL_* environment overrides and validates
// the result. An empty path tries DefaultPath and falls back to Default.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every field that the engines would reject later.
func (c *Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %w", ErrInvalid, err)
	}

	e := c.Engine
	if e.Mode != ModeBlock && e.Mode != ModeSliding {
		return fmt.Errorf("%w: engine.mode %q", ErrInvalid, e.Mode)
	}
	if !core.IsPowerOfTwo(e.Size) {
		return fmt.Errorf("%w: engine.size %d is not a power of two", ErrInvalid, e.Size)
	}
	if !core.IsPowerOfTwo(e.MaxSize) || e.MaxSize < e.Size {
		return fmt.Errorf("%w: engine.max_size %d must be a power of two >= size", ErrInvalid, e.MaxSize)
	}
	if _, err := window.ParseShape(e.Window); err != nil {
		return fmt.Errorf("%w: engine.window: %w", ErrInvalid, err)
	}
	if _, err := stft.ParseOverlap(e.Overlap); err != nil {
		return fmt.Errorf("%w: engine.overlap: %w", ErrInvalid, err)
	}
	backend := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(e.Backend)), "-", "")
	if !slices.Contains(transform.Backends(), backend) {
		return fmt.Errorf("%w: engine.backend %q (want one of %v)", ErrInvalid, e.Backend, transform.Backends())
	}
	if e.ResyncInterval < 0 {
		return fmt.Errorf("%w: engine.resync_interval %d", ErrInvalid, e.ResyncInterval)
	}

	if c.Stream.BlockSize <= 0 {
		return fmt.Errorf("%w: stream.block_size %d", ErrInvalid, c.Stream.BlockSize)
	}
	switch c.Output.BitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("%w: output.bit_depth %d", ErrInvalid, c.Output.BitDepth)
	}
	if g := c.Output.GainDB; math.IsNaN(g) || g < minGainDB || g > maxGainDB {
		return fmt.Errorf("%w: output.gain_db %v outside [%v, %v]", ErrInvalid, g, minGainDB, maxGainDB)
	}

	return nil
}

// Shape returns the parsed window shape. Call after Validate.
func (e EngineConfig) Shape() window.Shape {
	s, _ := window.ParseShape(e.Window)
	return s
}

// OverlapPolicy returns the parsed overlap policy. Call after Validate.
func (e EngineConfig) OverlapPolicy() stft.Overlap {
	o, _ := stft.ParseOverlap(e.Overlap)
	return o
}

// EngineOptions maps the block engine settings to stft options.
func (e EngineConfig) EngineOptions() []stft.Option {
	return []stft.Option{
		stft.WithMaxSize(e.MaxSize),
		stft.WithSize(e.Size),
		stft.WithWindow(e.Shape()),
		stft.WithOverlap(e.OverlapPolicy()),
	}
}

func (c *Config) applyEnvOverrides() {
	str := func(key string, dst *string) {
		if val, ok := os.LookupEnv(key); ok {
			*dst = val
			logrus.WithField(key, val).Debug("configuration: override from env")
		}
	}
	num := func(key string, dst *int) {
		val, ok := os.LookupEnv(key)
		if !ok {
			return
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			logrus.WithField(key, val).Warn("configuration: ignoring non-numeric env override")
			return
		}
		*dst = n
		logrus.WithField(key, n).Debug("configuration: override from env")
	}

	str("SPECTRAL_LOG_LEVEL", &c.LogLevel)
	str("SPECTRAL_MODE", &c.Engine.Mode)
	num("SPECTRAL_SIZE", &c.Engine.Size)
	num("SPECTRAL_MAX_SIZE", &c.Engine.MaxSize)
	str("SPECTRAL_WINDOW", &c.Engine.Window)
	str("SPECTRAL_OVERLAP", &c.Engine.Overlap)
	str("SPECTRAL_BACKEND", &c.Engine.Backend)
	num("SPECTRAL_RESYNC_INTERVAL", &c.Engine.ResyncInterval)
	num("SPECTRAL_BLOCK_SIZE", &c.Stream.BlockSize)
	num("SPECTRAL_BIT_DEPTH", &c.Output.BitDepth)
	str("SPECTRAL_WS_ADDR", &c.Transport.WSAddr)
}
