package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the reproducible parameters for a bench run. Fields left
// zero fall back to the flag defaults registered on each subcommand.
type Config struct {
	M              int    `yaml:"m"`
	EfConstruction int    `yaml:"efConstruction"`
	EfSearch       int    `yaml:"efSearch"`
	Metric         string `yaml:"metric"`
	Dimension      int    `yaml:"dimension"`
	NumPoints      int    `yaml:"numPoints"`
	NumQueries     int    `yaml:"numQueries"`
	K              int    `yaml:"k"`
	Seed           int64  `yaml:"seed"`
	Dataset        string `yaml:"dataset"`
	Index          string `yaml:"index"`
	Report         string `yaml:"report"`
}

// LoadConfig reads a YAML config file. A missing file is not an error; it
// returns a zero Config so callers fall back to flags entirely.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
