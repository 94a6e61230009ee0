// Package config handles configuration of the command-line tools.
package config

import (
	"github.com/jsr184/m3gfile/internal/logger"
	"github.com/jsr184/m3gfile/m3g"
)

// Config holds all tool settings.
type Config struct {
	Decoder DecoderConfig `yaml:"decoder"`
	Logging LoggingConfig `yaml:"logging"`
}

// DecoderConfig holds the options passed to the decoder.
type DecoderConfig struct {
	StrictBools    bool   `yaml:"strict_bools"`
	MaxSectionSize uint32 `yaml:"max_section_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Decoder: DecoderConfig{
			StrictBools:    false,
			MaxSectionSize: m3g.DefaultMaxSectionSize,
		},
		Logging: LoggingConfig{
			Level:   "warn",
			LogFile: "",
		},
	}
}

// DecoderOptions returns a decoder configured by c.
func (c *Config) DecoderOptions() m3g.Decoder {
	return m3g.Decoder{
		StrictBools:    c.Decoder.StrictBools,
		MaxSectionSize: c.Decoder.MaxSectionSize,
	}
}

// LoggerOptions returns the logger configuration described by c.
func (c *Config) LoggerOptions() logger.Config {
	cfg := logger.Config{Level: c.Logging.Level}
	if c.Logging.LogFile != "" {
		cfg.File = logger.DefaultFileConfig(c.Logging.LogFile)
	}
	return cfg
}
