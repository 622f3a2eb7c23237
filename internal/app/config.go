package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProjectPath     string // .hcl project file or directory
	OutputPath      string // report destination, empty for stdout
	ModelOutputPath string // optional canonical model dump

	LogFormat  string
	LogLevel   string
	UseCatalog bool
	Purge      bool
	RayTrace   bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ProjectPath == "" {
		return nil, errors.New("ProjectPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
