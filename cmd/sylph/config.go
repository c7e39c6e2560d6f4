package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"github.com/sylph-lang/sylph/sylph"
)

// projectConfig mirrors the optional sylph.yaml file. A missing file means
// engine defaults; flags override whatever the file sets.
type projectConfig struct {
	StepQuota      int `yaml:"step_quota"`
	RecursionLimit int `yaml:"recursion_limit"`
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, tracerr.Wrap(err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.StepQuota < 0 {
		return cfg, fmt.Errorf("%s: step_quota must not be negative", path)
	}
	if cfg.RecursionLimit < 0 {
		return cfg, fmt.Errorf("%s: recursion_limit must not be negative", path)
	}
	return cfg, nil
}

func engineConfig(file projectConfig, c *cli.Context) sylph.Config {
	cfg := sylph.Config{
		StepQuota:      file.StepQuota,
		RecursionLimit: file.RecursionLimit,
	}
	if v := c.Int("step-quota"); v > 0 {
		cfg.StepQuota = v
	}
	if v := c.Int("max-depth"); v > 0 {
		cfg.RecursionLimit = v
	}
	return cfg
}
