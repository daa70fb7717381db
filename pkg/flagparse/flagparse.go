// Package flagparse turns argv into a subcommand plus a map of the flags the
// user explicitly set. Only explicitly set flags make it into the map, so the
// config layer can overlay them on top of file and default values without
// clobbering anything the user didn't touch.
package flagparse

import (
	"flag"
	"fmt"

	"github.com/seqforge/trimwrap/pkg/buildinfo"
)

// cliFlags holds pointers to all possible command-line flags.
// Fields are pointers so we can distinguish between "not registered for this
// command" (nil) and "registered but not set by user" (non-nil pointer to zero value).
type cliFlags struct {
	// Global
	LogLevel *string
	DryRun   *bool
	Metrics  *bool

	// Run: reads
	InputR1          *string
	InputR2          *string
	OutputR1         *string
	OutputR1Unpaired *string
	OutputR2         *string
	OutputR2Unpaired *string

	// Run: invocation
	Tool       *string
	Engine     *string
	Pigz       *string
	Compressor *string
	Level      *string
	Jobs       *int
	Trimmer    *string
	Extra      *string
	LogFile    *string

	// Init specific
	Force *bool
}

func registerGlobalFlags(fs *flag.FlagSet, f *cliFlags) {
	f.LogLevel = fs.String("log-level", "info", "Set the logging level: 'debug', 'notice', 'info', 'warn', 'error'.")
	f.DryRun = fs.Bool("dry-run", false, "Show the command that would be executed without running it.")
	f.Metrics = fs.Bool("metrics", false, "Log a run summary with command and byte counters.")
}

func registerRunFlags(fs *flag.FlagSet, f *cliFlags) {
	f.InputR1 = fs.String("r1", "", "Forward (R1) input reads. (Required)")
	f.InputR2 = fs.String("r2", "", "Reverse (R2) input reads. (Required)")
	f.OutputR1 = fs.String("out-r1", "", "Forward paired output. (Required)")
	f.OutputR1Unpaired = fs.String("out-r1-unpaired", "", "Forward unpaired output. (Required)")
	f.OutputR2 = fs.String("out-r2", "", "Reverse paired output. (Required)")
	f.OutputR2Unpaired = fs.String("out-r2-unpaired", "", "Reverse unpaired output. (Required)")

	f.Tool = fs.String("tool", "", "Trimmer binary to invoke.")
	f.Engine = fs.String("engine", "", "Substitution engine: 'shell' (bash + pigz) or 'native' (in-process pipes).")
	f.Pigz = fs.String("pigz", "", "Compression offload mode: 'none', 'input', 'output' or 'both'.")
	f.Compressor = fs.String("compressor", "", "Compressor for the substitution fragments: 'none', 'gzip' or 'pigz'.")
	f.Level = fs.String("level", "", "Compression level flag token passed to the compressor verbatim (e.g. '-5').")
	f.Jobs = fs.Int("jobs", 0, "Number of compressor worker processes/threads (0 = compressor default).")
	f.Trimmer = fs.String("trimmer", "", "Comma-separated, order-significant list of trimming steps (e.g. 'LEADING:3,MINLEN:36').")
	f.Extra = fs.String("extra", "", "Extra arguments inserted after 'PE', verbatim.")
	f.LogFile = fs.String("log", "", "File receiving the trimmer's stdout and stderr.")
}

func registerInitFlags(fs *flag.FlagSet, f *cliFlags) {
	f.Force = fs.Bool("force", false, "Overwrite an existing config file.")
}

// Parse parses args (without the program name) into a Command and a map of
// the flags the user explicitly set.
func Parse(args []string) (Command, map[string]any, error) {
	if len(args) < 1 {
		return None, nil, fmt.Errorf("no command given. Usage: %s <run|version|init> [flags]", buildinfo.Name)
	}

	command, err := ParseCommand(args[0])
	if err != nil {
		return None, nil, err
	}

	fs := flag.NewFlagSet(command.String(), flag.ContinueOnError)
	f := &cliFlags{}

	switch command {
	case Run:
		registerGlobalFlags(fs, f)
		registerRunFlags(fs, f)
	case Init:
		registerGlobalFlags(fs, f)
		registerInitFlags(fs, f)
	case Version:
		// No flags.
	}

	if err := fs.Parse(args[1:]); err != nil {
		return None, nil, err
	}

	// Collect only the flags explicitly set by the user, with their values.
	setFlags := make(map[string]any)
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "jobs":
			setFlags[fl.Name] = *f.Jobs
		case "dry-run":
			setFlags[fl.Name] = *f.DryRun
		case "metrics":
			setFlags[fl.Name] = *f.Metrics
		case "force":
			setFlags[fl.Name] = *f.Force
		default:
			// All remaining flags are plain strings.
			setFlags[fl.Name] = fl.Value.String()
		}
	})
	return command, setFlags, nil
}
