// Package config loads the server's runtime configuration from a YAML
// file plus environment variable overrides, adapted from the teacher's
// viper-backed config package with its persistence section dropped
// (persistence is out of scope) and a live-reload hook added for the
// log level.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config is the root configuration structure.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	GC      GCConfig      `mapstructure:"gc"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds the TCP listen address.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// StorageConfig selects the store.Engine implementation: Shards == 1
// selects the coarse-mutex Store, a power of two > 1 selects
// ShardedStore with that many shards.
type StorageConfig struct {
	Shards uint `mapstructure:"shards"`
}

// GCConfig tunes the optional active-expiration sweep.
type GCConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Interval        time.Duration `mapstructure:"interval"`
	SamplesPerCheck int           `mapstructure:"samples_per_check"`
}

// LogConfig selects zap's verbosity and encoding.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// Load reads configuration from a file named "config" under path (or
// the current directory), always parsed as YAML, falling back to
// defaults for anything unset, then applies DUSKKV_-prefixed
// environment overrides.
func Load(path string) (*Config, error) {
	setDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("DUSKKV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "6380")

	viper.SetDefault("storage.shards", 32)

	viper.SetDefault("gc.enabled", true)
	viper.SetDefault("gc.interval", "100ms")
	viper.SetDefault("gc.samples_per_check", 20)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")
}

// Watch installs a viper.WatchConfig callback that re-unmarshals the
// config file on every change and hands the fresh value to onChange.
// Only the log level is expected to be usefully hot-reloaded (the
// server doesn't rebind or re-shard on the fly); onChange decides what
// to do with the rest.
func Watch(onChange func(*Config)) {
	viper.OnConfigChange(func(_ fsnotify.Event) {
		var cfg Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return
		}
		onChange(&cfg)
	})
	viper.WatchConfig()
}
