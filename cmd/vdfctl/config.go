package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Config holds the defaults a solve/verify invocation falls back to when the
// matching flag is left unset.
type Config struct {
	Construction string `yaml:"construction"`
	Difficulty   uint64 `yaml:"difficulty"`
	IntSizeBits  int    `yaml:"intSizeBits"`
	LogLevel     string `yaml:"logLevel"`
}

func defaultConfig() *Config {
	return &Config{
		Construction: "wesolowski",
		Difficulty:   1000,
		IntSizeBits:  2048,
		LogLevel:     "info",
	}
}

// LoadConfig reads a YAML config file, falling back to defaults for any
// field a missing file would otherwise leave unset. A missing path is not an
// error: the caller runs entirely off flags and defaults.
func LoadConfig(path string) (*Config, error) {
	config := defaultConfig()
	if path == "" {
		return config, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, errors.Wrap(err, "vdfctl: opening config file")
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return nil, errors.Wrap(err, "vdfctl: decoding config file")
	}

	return config, nil
}
