// Package preflight provides checks that run before a trim command is
// executed. These checks are stateless and idempotent; they only verify that
// the external binaries the assembled command will reference can actually be
// resolved, so a missing tool fails the run up front instead of somewhere
// inside a half-spawned process tree.
package preflight

import (
	"fmt"
	"os/exec"

	"github.com/seqforge/trimwrap/pkg/hints"
	"github.com/seqforge/trimwrap/pkg/trimcmd"
)

// ErrNoCompressorNeeded signals that the selected pigz mode references no
// compressor at all, so there is nothing to check.
var ErrNoCompressorNeeded = hints.New("no compressor binary needed")

// Checker validates the external binaries of a run.
type Checker struct {
	// lookPath allows mocking binary resolution for testing.
	lookPath func(file string) (string, error)
}

// NewChecker creates a Checker resolving binaries against the real PATH.
func NewChecker() *Checker {
	return &Checker{lookPath: exec.LookPath}
}

// NewCheckerWithLookup creates a Checker with an injected lookup, for tests.
func NewCheckerWithLookup(lookPath func(file string) (string, error)) *Checker {
	return &Checker{lookPath: lookPath}
}

// CheckTool verifies that the trimmer binary is resolvable.
func (c *Checker) CheckTool(tool string) error {
	if tool == "" {
		tool = trimcmd.DefaultTool
	}
	if _, err := c.lookPath(tool); err != nil {
		return fmt.Errorf("trimmer binary %q not found in PATH: %w", tool, err)
	}
	return nil
}

// CheckShell verifies that the shell used to spawn the command is resolvable.
func (c *Checker) CheckShell(shell string) error {
	if _, err := c.lookPath(shell); err != nil {
		return fmt.Errorf("shell %q not found in PATH: %w", shell, err)
	}
	return nil
}

// CheckCompressor verifies that the compressor binary referenced by the
// substitution fragments is resolvable. When the pigz mode wraps nothing, or
// the compressor is "none", it returns the ErrNoCompressorNeeded hint.
func (c *Checker) CheckCompressor(mode trimcmd.PigzMode, compressor trimcmd.Compressor) error {
	if !mode.WrapsInput() && !mode.WrapsOutput() {
		return ErrNoCompressorNeeded
	}
	if compressor == "" {
		compressor = trimcmd.CompressorPigz
	}
	if compressor == trimcmd.CompressorNone {
		return ErrNoCompressorNeeded
	}
	if _, err := c.lookPath(string(compressor)); err != nil {
		return fmt.Errorf("compressor binary %q not found in PATH: %w", compressor, err)
	}
	return nil
}
