// Package engine ties the leaf collaborators together and executes one trim
// run end to end: preflight the external binaries, realize the substitution
// strategy, assemble the command line, and hand it to the shell runner.
package engine

import (
	"context"
	"fmt"
	"runtime"

	"github.com/seqforge/trimwrap/pkg/fifogz"
	"github.com/seqforge/trimwrap/pkg/hints"
	"github.com/seqforge/trimwrap/pkg/plog"
	"github.com/seqforge/trimwrap/pkg/preflight"
	"github.com/seqforge/trimwrap/pkg/runmetrics"
	"github.com/seqforge/trimwrap/pkg/shellrun"
	"github.com/seqforge/trimwrap/pkg/trimcmd"
)

// Plan describes one fully resolved trim run.
type Plan struct {
	Params trimcmd.Params
	Engine Substitution

	// Global flags
	DryRun bool
}

// Runner executes trim plans.
type Runner struct {
	checker *preflight.Checker
	shell   *shellrun.Runner
	metrics runmetrics.Metrics
}

// NewRunner creates a Runner from its leaf collaborators.
func NewRunner(checker *preflight.Checker, shell *shellrun.Runner, metrics runmetrics.Metrics) *Runner {
	if metrics == nil {
		metrics = &runmetrics.NoopMetrics{}
	}
	return &Runner{
		checker: checker,
		shell:   shell,
		metrics: metrics,
	}
}

// Execute runs one plan. All validation failures surface before any process
// is spawned or any pipe is created.
func (r *Runner) Execute(ctx context.Context, plan *Plan) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	switch plan.Engine {
	case SubstitutionShell:
		return r.executeShell(ctx, plan)
	case SubstitutionNative:
		return r.executeNative(ctx, plan)
	default:
		_, err := ParseSubstitution(string(plan.Engine))
		return err
	}
}

// executeShell assembles the substituted command and lets bash spawn the
// whole process tree, pigz sub-processes included.
func (r *Runner) executeShell(ctx context.Context, plan *Plan) error {
	p := plan.Params

	wrapsAnything := p.PigzMode.WrapsInput() || p.PigzMode.WrapsOutput()
	if wrapsAnything && runtime.GOOS == "windows" {
		return fmt.Errorf("process substitution requires a POSIX shell; on Windows use pigz mode 'none'")
	}

	if err := r.checker.CheckShell(r.shell.Shell()); err != nil {
		return fmt.Errorf("preflight failed: %w", err)
	}
	if err := r.checker.CheckTool(p.Tool); err != nil {
		return fmt.Errorf("preflight failed: %w", err)
	}
	if err := r.checker.CheckCompressor(p.PigzMode, p.Compressor); err != nil {
		if !hints.IsHint(err) {
			return fmt.Errorf("preflight failed: %w", err)
		}
		plog.Debug("compressor preflight skipped", "reason", err)
	}

	commandLine, err := trimcmd.Assemble(p)
	if err != nil {
		return err
	}
	return r.shell.Run(ctx, commandLine, plan.DryRun)
}

// executeNative rewires the wrapped paths through named pipes fed in-process
// and runs the resulting plain command; no compressor binary is involved.
func (r *Runner) executeNative(ctx context.Context, plan *Plan) error {
	p := plan.Params

	if err := r.checker.CheckShell(r.shell.Shell()); err != nil {
		return fmt.Errorf("preflight failed: %w", err)
	}
	if err := r.checker.CheckTool(p.Tool); err != nil {
		return fmt.Errorf("preflight failed: %w", err)
	}

	pipeEngine, err := fifogz.NewEngine(p.Level, p.Jobs, r.metrics)
	if err != nil {
		return err
	}

	if plan.DryRun {
		// Show the un-rewired command; the pipe paths of a real run are
		// temporary and would carry no information.
		commandLine, err := trimcmd.Assemble(p)
		if err != nil {
			return err
		}
		return r.shell.Run(ctx, commandLine, true)
	}

	rewired, pipes, err := pipeEngine.Prepare(ctx, p)
	if err != nil {
		return err
	}
	defer pipes.Close()

	commandLine, err := trimcmd.Assemble(rewired)
	if err != nil {
		return err
	}
	if err := r.shell.Run(ctx, commandLine, false); err != nil {
		return err
	}
	if err := pipes.Wait(); err != nil {
		return fmt.Errorf("substitution pipeline failed: %w", err)
	}
	return nil
}
