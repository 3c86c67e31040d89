package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// runConfig is the resolved configuration for one audit run, after
// merging the config file with command-line flags.
type runConfig struct {
	Timeout     time.Duration
	LinkWorkers int
	DocWorkers  int
	RPS         float64
	OutputDir   string
	Enrich      bool
	Model       string
	HFURL       string
	Verbose     bool
}

// fileConfig mirrors the optional YAML config file. Zero values mean
// "not set"; resolveConfig skips them.
type fileConfig struct {
	Timeout     time.Duration `yaml:"timeout"`
	LinkWorkers int           `yaml:"link_workers"`
	DocWorkers  int           `yaml:"doc_workers"`
	RPS         float64       `yaml:"rps"`
	OutputDir   string        `yaml:"output_dir"`
	Enrich      bool          `yaml:"enrich"`
	Model       string        `yaml:"model"`
	HFURL       string        `yaml:"hf_url"`
	Verbose     bool          `yaml:"verbose"`
}

// loadConfig reads a YAML config file. An empty path yields a zero
// config so flag defaults take over.
func loadConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// resolveConfig merges the config file with the command line. A flag
// the user set explicitly wins over the file; a file value wins over
// the flag default.
func resolveConfig(cmd *cobra.Command) (runConfig, error) {
	file, err := loadConfig(flagConfig)
	if err != nil {
		return runConfig{}, err
	}

	cfg := runConfig{
		Timeout:     flagTimeout,
		LinkWorkers: flagLinkWorkers,
		DocWorkers:  flagDocWorkers,
		RPS:         flagRPS,
		OutputDir:   flagOutputDir,
		Enrich:      flagEnrich,
		Model:       flagModel,
		HFURL:       flagHFURL,
		Verbose:     flagVerbose,
	}

	flags := cmd.Flags()
	if !flags.Changed("timeout") && file.Timeout > 0 {
		cfg.Timeout = file.Timeout
	}
	if !flags.Changed("link_workers") && file.LinkWorkers > 0 {
		cfg.LinkWorkers = file.LinkWorkers
	}
	if !flags.Changed("doc_workers") && file.DocWorkers > 0 {
		cfg.DocWorkers = file.DocWorkers
	}
	if !flags.Changed("rps") && file.RPS > 0 {
		cfg.RPS = file.RPS
	}
	if !flags.Changed("output_dir") && file.OutputDir != "" {
		cfg.OutputDir = file.OutputDir
	}
	if !flags.Changed("enrich") && file.Enrich {
		cfg.Enrich = true
	}
	if !flags.Changed("model") && file.Model != "" {
		cfg.Model = file.Model
	}
	if !flags.Changed("hf_url") && file.HFURL != "" {
		cfg.HFURL = file.HFURL
	}
	if !flags.Changed("verbose") && file.Verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}
