// Package config holds the configuration of the replayctl command
package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/samuelfneumann/goreplay/experiment"
	"github.com/samuelfneumann/goreplay/expreplay"
)

// EnvPrefix is the prefix of environment variables overriding the
// configuration, e.g. REPLAY_REPLAY_SIZE sets replay.size
const EnvPrefix = "REPLAY"

// Env configures the point reaching environments episodes are
// generated in
type Env struct {
	Dim       int     `mapstructure:"dim"`
	Threshold float64 `mapstructure:"threshold"`
	Workers   int     `mapstructure:"workers"`
	Seed      uint64  `mapstructure:"seed"`

	// Gain scales the scripted policy used to generate demonstrations.
	// A gain of 0 selects random actions instead.
	Gain float64 `mapstructure:"gain"`
}

// Config holds all replayctl configuration
type Config struct {
	Replay     expreplay.Config  `mapstructure:"replay"`
	Experiment experiment.Config `mapstructure:"experiment"`
	Env        Env               `mapstructure:"env"`

	// Demonstrations
	DemoFile string `mapstructure:"demo_file"`
	NumDemo  int    `mapstructure:"num_demo"`

	// Normalization of observations and goals in training batches
	NormEps  float64 `mapstructure:"norm_eps"`
	NormClip float64 `mapstructure:"norm_clip"`

	// Logging
	LogLevel string `mapstructure:"log_level"`
}

// Default returns a config with sensible defaults
func Default() *Config {
	return &Config{
		Replay: expreplay.Config{
			Strategy:     expreplay.Future,
			FixedHorizon: true,
			T:            50,
			Size:         1000000,
			K:            4,
		},
		Experiment: experiment.Config{
			Epochs:          10,
			BatchesPerEpoch: 40,
			BatchSize:       256,
			DemoBatchSize:   0,
		},
		Env: Env{
			Dim:       2,
			Threshold: 0.05,
			Workers:   2,
			Gain:      1,
		},
		NormEps:  0.01,
		NormClip: 5,
		LogLevel: "info",
	}
}

// SetDefaults registers the defaults of Default with v so that every
// key can be overridden by environment variables
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("replay.strategy", string(d.Replay.Strategy))
	v.SetDefault("replay.fixed_horizon", d.Replay.FixedHorizon)
	v.SetDefault("replay.t", d.Replay.T)
	v.SetDefault("replay.size", d.Replay.Size)
	v.SetDefault("replay.k", d.Replay.K)
	v.SetDefault("replay.seed", d.Replay.Seed)
	v.SetDefault("experiment.epochs", d.Experiment.Epochs)
	v.SetDefault("experiment.batches_per_epoch", d.Experiment.BatchesPerEpoch)
	v.SetDefault("experiment.batch_size", d.Experiment.BatchSize)
	v.SetDefault("experiment.demo_batch_size", d.Experiment.DemoBatchSize)
	v.SetDefault("env.dim", d.Env.Dim)
	v.SetDefault("env.threshold", d.Env.Threshold)
	v.SetDefault("env.workers", d.Env.Workers)
	v.SetDefault("env.seed", d.Env.Seed)
	v.SetDefault("env.gain", d.Env.Gain)
	v.SetDefault("demo_file", d.DemoFile)
	v.SetDefault("num_demo", d.NumDemo)
	v.SetDefault("norm_eps", d.NormEps)
	v.SetDefault("norm_clip", d.NormClip)
	v.SetDefault("log_level", d.LogLevel)
}

// Load reads the configuration from v. If path is not empty, the
// configuration file at path is merged over the defaults. Environment
// variables prefixed with EnvPrefix take precedence over both.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("load: could not read %v: %v", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("load: %v", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Replay.Validate(); err != nil {
		return err
	}
	if c.Env.Dim < 1 {
		return fmt.Errorf("env.dim must be positive")
	}
	if c.Env.Threshold <= 0 {
		return fmt.Errorf("env.threshold must be positive")
	}
	if c.Env.Workers < 1 {
		return fmt.Errorf("env.workers must be positive")
	}
	if c.Experiment.BatchSize <= 0 {
		return fmt.Errorf("experiment.batch_size must be positive")
	}
	if c.Experiment.DemoBatchSize < 0 {
		return fmt.Errorf("experiment.demo_batch_size must be non-negative")
	}
	if c.Experiment.DemoBatchSize > 0 && c.DemoFile == "" {
		return fmt.Errorf("demo_file is required when " +
			"experiment.demo_batch_size is positive")
	}
	if c.NormEps <= 0 || c.NormClip <= 0 {
		return fmt.Errorf("norm_eps and norm_clip must be positive")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return nil
}

// Logger returns a console logger writing to w at the configured level
func (c *Config) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
