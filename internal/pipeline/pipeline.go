// Package pipeline executes an ordered sequence of build and deploy stages,
// each delegating to an external command. Stages run strictly in declared
// order; a failing stage stops the run unless it is marked advisory.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ferdiebergado/shortly/internal/pkg/timex"
	"gopkg.in/yaml.v3"
)

// Stage is one named step of the pipeline.
type Stage struct {
	Name string `yaml:"name"`
	// Run is the command line for the stage, executed through the platform
	// shell (sh -c on Unix, cmd /C on Windows).
	Run string `yaml:"run"`
	// Dir is the working directory for the command. Empty means the
	// runner's working directory.
	Dir string `yaml:"dir,omitempty"`
	// Env holds extra KEY=VALUE pairs appended to the inherited environment.
	Env []string `yaml:"env,omitempty"`
	// Advisory stages report failures as warnings and never fail the run.
	Advisory bool `yaml:"advisory,omitempty"`
	// Disabled stages are skipped entirely.
	Disabled bool           `yaml:"disabled,omitempty"`
	Timeout  timex.Duration `yaml:"timeout,omitempty"`
}

// Config is a declared pipeline: an ordered list of stages.
type Config struct {
	Stages []Stage `yaml:"stages"`
}

// LoadConfig reads and validates a pipeline definition from a YAML file.
func LoadConfig(cfgFile string) (*Config, error) {
	cfgFile = filepath.Clean(cfgFile)
	contents, err := os.ReadFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("read pipeline file %s: %w", cfgFile, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("decode yaml pipeline %s: %w", cfgFile, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate pipeline %s: %w", cfgFile, err)
	}

	return &cfg, nil
}

// Validate checks that every stage has a unique name and that enabled
// stages have a command to run.
func (c *Config) Validate() error {
	if len(c.Stages) == 0 {
		return fmt.Errorf("pipeline has no stages")
	}

	seen := make(map[string]struct{}, len(c.Stages))
	for i, stage := range c.Stages {
		if stage.Name == "" {
			return fmt.Errorf("stage %d has no name", i)
		}
		if _, dup := seen[stage.Name]; dup {
			return fmt.Errorf("duplicate stage name: %q", stage.Name)
		}
		seen[stage.Name] = struct{}{}

		if !stage.Disabled && stage.Run == "" {
			return fmt.Errorf("stage %q has no command", stage.Name)
		}
	}
	return nil
}
