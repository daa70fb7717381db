package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/seqforge/trimwrap/pkg/buildinfo"
	"github.com/seqforge/trimwrap/pkg/engine"
	"github.com/seqforge/trimwrap/pkg/plog"
	"github.com/seqforge/trimwrap/pkg/trimcmd"
	"github.com/seqforge/trimwrap/pkg/util"
)

// ConfigFileName is the name of the configuration file.
const ConfigFileName = "trimwrap.config.json"

// PigzConfig controls the compression offloading around the trimmer.
type PigzConfig struct {
	// Mode selects which paths get wrapped: 'none', 'input', 'output' or 'both'.
	Mode trimcmd.PigzMode `json:"mode"`
	// Compressor is the binary placed inside the substitution fragments.
	Compressor trimcmd.Compressor `json:"compressor"`
	// Level is the compressor flag token, passed through verbatim.
	Level string `json:"level"`
	// Jobs is the compressor worker count. 0 leaves the choice to the compressor.
	Jobs int `json:"jobs"`
}

// ReadsConfig names the per-run input and output files. These always come
// from flags, never from the config file.
type ReadsConfig struct {
	InputR1          string
	InputR2          string
	OutputR1         string
	OutputR1Unpaired string
	OutputR2         string
	OutputR2Unpaired string
}

type RuntimeConfig struct {
	Reads   ReadsConfig
	LogFile string
	DryRun  bool
}

type Config struct {
	Version  string              `json:"version"`
	LogLevel string              `json:"logLevel"`
	Tool     string              `json:"tool"`
	Engine   engine.Substitution `json:"engine"`
	Metrics  bool                `json:"metrics"`
	Pigz     PigzConfig          `json:"pigz"`
	// Trimmers is the ordered list of trimming steps; order is significant
	// and applied left to right by the tool.
	Trimmers []string      `json:"trimmers"`
	Extra    string        `json:"extra"`
	Runtime  RuntimeConfig `json:"-"` // Never added to config file
}

// NewDefault creates and returns a Config struct with sensible default values.
func NewDefault() Config {
	return Config{
		Version:  buildinfo.Version,
		LogLevel: "info", // Default log level.
		Tool:     trimcmd.DefaultTool,
		Engine:   engine.SubstitutionShell, // pigz via bash process substitution.
		Metrics:  false,
		Pigz: PigzConfig{
			Mode:       trimcmd.PigzBoth,
			Compressor: trimcmd.CompressorPigz,
			Level:      trimcmd.DefaultLevel,
			Jobs:       0, // Let pigz size its own worker pool.
		},
		// Intentionally empty: trimming steps are workflow-specific and
		// must be configured by the user.
		Trimmers: []string{},
		Extra:    "",
	}
}

// Load attempts to load a configuration from "trimwrap.config.json" in dir.
// If the file doesn't exist, it returns the default config without an error.
// If the file exists but fails to parse, it returns an error and a zero-value config.
func Load(dir string) (Config, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return Config{}, fmt.Errorf("could not determine absolute path for load directory %s: %w", dir, err)
	}

	configPath := filepath.Join(absDir, ConfigFileName)

	file, err := os.Open(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDefault(), nil // Config file doesn't exist, which is a normal case.
		}
		return Config{}, fmt.Errorf("error opening config file %s: %w", configPath, err)
	}
	defer file.Close()

	plog.Info("Loading configuration", "path", configPath)
	// Start with default values, then overwrite with the file's content.
	// This makes the config loading resilient to missing fields in the JSON file.
	config := NewDefault()
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&config); err != nil {
		return Config{}, fmt.Errorf("error parsing config file %s: %w", configPath, err)
	}

	if config.Version != buildinfo.Version {
		config.Version = buildinfo.Version
	}
	return config, nil
}

// Generate creates or overwrites a default trimwrap.config.json file in dir.
func Generate(configToGenerate Config, dir string) error {
	configPath := filepath.Join(dir, ConfigFileName)
	jsonData, err := json.MarshalIndent(configToGenerate, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config to JSON: %w", err)
	}

	if err := os.WriteFile(configPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	plog.Info("Successfully saved config file", "path", configPath)
	return nil
}

// Validate checks the configuration for logical errors and inconsistencies.
// With checkReads set it also requires the per-run file paths, which only a
// `run` invocation carries.
func (c *Config) Validate(checkReads bool) error {
	if c.Tool == "" {
		return fmt.Errorf("tool cannot be empty")
	}
	if _, err := trimcmd.ParsePigzMode(string(c.Pigz.Mode)); err != nil {
		return err
	}
	if _, err := trimcmd.ParseCompressor(string(c.Pigz.Compressor)); err != nil {
		return err
	}
	if _, err := engine.ParseSubstitution(string(c.Engine)); err != nil {
		return err
	}
	if c.Pigz.Jobs < 0 {
		return fmt.Errorf("pigz.jobs cannot be negative")
	}

	if checkReads {
		reads := &c.Runtime.Reads
		var err error
		for name, p := range map[string]*string{
			"r1":              &reads.InputR1,
			"r2":              &reads.InputR2,
			"out-r1":          &reads.OutputR1,
			"out-r1-unpaired": &reads.OutputR1Unpaired,
			"out-r2":          &reads.OutputR2,
			"out-r2-unpaired": &reads.OutputR2Unpaired,
		} {
			if *p == "" {
				return fmt.Errorf("the -%s flag is required to run a trim", name)
			}
			if *p, err = util.ExpandPath(*p); err != nil {
				return fmt.Errorf("could not expand -%s path: %w", name, err)
			}
		}
		if len(c.Trimmers) == 0 {
			return fmt.Errorf("at least one trimmer step is required (e.g. 'SLIDINGWINDOW:4:15')")
		}
	}
	return nil
}

// LogSummary prints a user-friendly summary of the configuration.
func (c *Config) LogSummary() {
	logArgs := []interface{}{
		"tool", c.Tool,
		"engine", c.Engine,
		"pigz_mode", c.Pigz.Mode,
		"compressor", c.Pigz.Compressor,
		"level", c.Pigz.Level,
		"jobs", c.Pigz.Jobs,
		"log_level", c.LogLevel,
		"dry_run", c.Runtime.DryRun,
		"metrics", c.Metrics,
	}
	if len(c.Trimmers) > 0 {
		logArgs = append(logArgs, "trimmers", strings.Join(c.Trimmers, " "))
	}
	if c.Extra != "" {
		logArgs = append(logArgs, "extra", c.Extra)
	}
	if c.Runtime.LogFile != "" {
		logArgs = append(logArgs, "log_file", c.Runtime.LogFile)
	}
	plog.Info("Configuration loaded", logArgs...)
}

// MergeConfigWithFlags overlays the configuration values from flags on top of
// a base configuration. It iterates over the setFlags map, which contains only
// the flags explicitly provided by the user on the command line. Enum-valued
// flags are parsed here so an invalid value fails the run up front.
func MergeConfigWithFlags(base Config, setFlags map[string]any) (Config, error) {
	merged := base

	for name, value := range setFlags {
		var err error
		switch name {
		case "r1":
			merged.Runtime.Reads.InputR1 = value.(string)
		case "r2":
			merged.Runtime.Reads.InputR2 = value.(string)
		case "out-r1":
			merged.Runtime.Reads.OutputR1 = value.(string)
		case "out-r1-unpaired":
			merged.Runtime.Reads.OutputR1Unpaired = value.(string)
		case "out-r2":
			merged.Runtime.Reads.OutputR2 = value.(string)
		case "out-r2-unpaired":
			merged.Runtime.Reads.OutputR2Unpaired = value.(string)
		case "log":
			merged.Runtime.LogFile = value.(string)
		case "dry-run":
			merged.Runtime.DryRun = value.(bool)
		case "log-level":
			merged.LogLevel = value.(string)
		case "metrics":
			merged.Metrics = value.(bool)
		case "tool":
			merged.Tool = value.(string)
		case "engine":
			if merged.Engine, err = engine.ParseSubstitution(value.(string)); err != nil {
				return Config{}, err
			}
		case "pigz":
			if merged.Pigz.Mode, err = trimcmd.ParsePigzMode(value.(string)); err != nil {
				return Config{}, err
			}
		case "compressor":
			if merged.Pigz.Compressor, err = trimcmd.ParseCompressor(value.(string)); err != nil {
				return Config{}, err
			}
		case "level":
			merged.Pigz.Level = value.(string)
		case "jobs":
			merged.Pigz.Jobs = value.(int)
		case "trimmer":
			merged.Trimmers = util.SplitCommaList(value.(string))
		case "extra":
			merged.Extra = value.(string)
		default:
			plog.Debug("unhandled flag in MergeConfigWithFlags", "flag", name)
		}
	}
	return merged, nil
}

// Params builds the explicit parameter struct handed to the command core.
func (c *Config) Params() trimcmd.Params {
	return trimcmd.Params{
		Tool:             c.Tool,
		InputR1:          c.Runtime.Reads.InputR1,
		InputR2:          c.Runtime.Reads.InputR2,
		OutputR1:         c.Runtime.Reads.OutputR1,
		OutputR1Unpaired: c.Runtime.Reads.OutputR1Unpaired,
		OutputR2:         c.Runtime.Reads.OutputR2,
		OutputR2Unpaired: c.Runtime.Reads.OutputR2Unpaired,
		PigzMode:         c.Pigz.Mode,
		Compressor:       c.Pigz.Compressor,
		Level:            c.Pigz.Level,
		Jobs:             c.Pigz.Jobs,
		Trimmers:         c.Trimmers,
		Extra:            c.Extra,
		LogRedirect:      trimcmd.LogShell(c.Runtime.LogFile),
	}
}
