// Package trimcmd composes the shell command line for a paired-end trimmomatic
// run. Compressing and decompressing FASTQ files dominates a trim run's wall
// time, so the inputs and outputs can be wrapped in process-substitution
// fragments (<(...), >(...)) that offload the gzip work to concurrent pigz
// sub-processes.
//
// Everything in this package is pure string computation: no path is stat'ed,
// no process is spawned. Spawning the resulting process tree is the executing
// shell's job (see pkg/shellrun).
package trimcmd

import (
	"fmt"
	"strings"
)

// DefaultTool is the external trimmer binary invoked when none is configured.
const DefaultTool = "trimmomatic"

// Params carries one complete trim invocation. It replaces the workflow
// framework's ambient parameter object with an explicit struct; every run is
// assembled from scratch and nothing persists between calls.
type Params struct {
	Tool string // trimmer binary, DefaultTool when empty

	// Paired-end reads: two inputs, four outputs. The unpaired outputs
	// receive mates whose partner was dropped by a trimming step.
	InputR1          string
	InputR2          string
	OutputR1         string
	OutputR1Unpaired string
	OutputR2         string
	OutputR2Unpaired string

	PigzMode   PigzMode
	Compressor Compressor // compressor for the substitution fragments, CompressorPigz when empty
	Level      string     // compressor flag token, DefaultLevel when empty
	Jobs       int        // compressor worker count, 0 leaves the choice to the compressor

	Trimmers    []string // ordered trimming steps, applied left to right by the tool
	Extra       string   // extra arguments inserted right after "PE", verbatim
	LogRedirect string   // preformatted redirection token, see LogShell
}

// Assemble validates the pigz mode, wraps the input and output paths
// according to it, and concatenates the complete command line in fixed order:
// tool, PE, extra, inputs (R1, R2), outputs (R1, R1 unpaired, R2, R2
// unpaired), trimmer steps, log redirection.
//
// Assembly is all-or-nothing: it either returns a full command string or
// fails with a *ConfigError before any fragment reaches the result.
func Assemble(p Params) (string, error) {
	if _, ok := pigzModeToString[p.PigzMode]; !ok {
		return "", &ConfigError{Param: "pigz mode", Value: string(p.PigzMode), Allowed: pigzModeValues()}
	}

	compressor := p.Compressor
	if compressor == "" {
		compressor = CompressorPigz
	}
	level := p.Level
	if level == "" {
		level = DefaultLevel
	}

	inputR1, inputR2 := p.InputR1, p.InputR2
	if p.PigzMode.WrapsInput() {
		var err error
		if inputR1, err = ComposeInput(inputR1, compressor, p.Jobs); err != nil {
			return "", err
		}
		if inputR2, err = ComposeInput(inputR2, compressor, p.Jobs); err != nil {
			return "", err
		}
	}

	outputs := []string{p.OutputR1, p.OutputR1Unpaired, p.OutputR2, p.OutputR2Unpaired}
	if p.PigzMode.WrapsOutput() {
		for i, out := range outputs {
			wrapped, err := ComposeOutput(out, compressor, level, p.Jobs)
			if err != nil {
				return "", err
			}
			outputs[i] = wrapped
		}
	}

	tool := p.Tool
	if tool == "" {
		tool = DefaultTool
	}

	fields := []string{tool, "PE"}
	appendField := func(s string) {
		if s != "" {
			fields = append(fields, s)
		}
	}
	appendField(p.Extra)
	appendField(inputR1)
	appendField(inputR2)
	for _, out := range outputs {
		appendField(out)
	}
	appendField(strings.Join(p.Trimmers, " "))
	appendField(p.LogRedirect)

	return strings.Join(fields, " "), nil
}

// LogShell formats the stdout/stderr redirection token for a log file path.
// An empty path produces an empty token, leaving the tool's output on the
// parent's streams.
func LogShell(path string) string {
	if path == "" {
		return ""
	}
	return fmt.Sprintf("> %s 2>&1", path)
}
