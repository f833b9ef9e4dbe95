package app

import (
	"errors"
	"fmt"

	"github.com/vk/gridfinitygo/modeler"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PartPath  string // hcl part definition file or directory
	OutputDir string

	Format    modeler.Format
	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.PartPath == "" {
		return nil, errors.New("PartPath is a required configuration field and cannot be empty")
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.Format == "" {
		cfg.Format = modeler.FormatSTL
	}
	if _, ok := modeler.ParseFormat(string(cfg.Format)); !ok {
		return nil, fmt.Errorf("unknown output format %q", cfg.Format)
	}

	return &cfg, nil
}
