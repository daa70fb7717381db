// Package shellrun executes an assembled trim command line through a shell.
// The shell is what actually spawns the process tree, including the nested
// (de)compression sub-processes behind any process-substitution fragments;
// this package only owns the lifecycle of that single shell invocation.
package shellrun

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/seqforge/trimwrap/pkg/plog"
	"github.com/seqforge/trimwrap/pkg/runmetrics"
)

// Runner spawns one shell command per trim run.
type Runner struct {
	// commandContext allows mocking os/exec for testing.
	commandContext func(ctx context.Context, name string, arg ...string) *exec.Cmd
	shell          string
	metrics        runmetrics.Metrics
}

// NewRunner creates a Runner. An empty shell selects the platform default
// (bash on Unix-like systems, since process substitution is a bash feature).
// A nil commandContext uses os/exec directly.
func NewRunner(shell string, commandContext func(ctx context.Context, name string, arg ...string) *exec.Cmd, metrics runmetrics.Metrics) *Runner {
	if shell == "" {
		shell = DefaultShell
	}
	if commandContext == nil {
		commandContext = exec.CommandContext
	}
	if metrics == nil {
		metrics = &runmetrics.NoopMetrics{}
	}
	return &Runner{
		commandContext: commandContext,
		shell:          shell,
		metrics:        metrics,
	}
}

// Shell returns the shell binary this runner spawns commands with.
func (r *Runner) Shell() string {
	return r.shell
}

// Run executes the command line and waits for the whole process tree to
// finish. Exit codes are propagated through the returned error.
func (r *Runner) Run(ctx context.Context, commandLine string, dryRun bool) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if dryRun {
		plog.Notice("[DRY RUN] Executing command", "command", commandLine)
		return nil
	}
	plog.Notice("Executing command", "command", commandLine)

	cmd := r.createCommand(ctx, commandLine)

	// Pipe output to our streams for visibility. The command's own log
	// redirection, if any, takes precedence inside the shell.
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		// Check if the context was canceled, which can cause cmd.Wait() to
		// return an error. If so, return the context's error to be more specific.
		if ctx.Err() == context.Canceled {
			return context.Canceled
		}
		r.metrics.AddCommandsFailed(1)
		return fmt.Errorf("command '%s' failed: %w", commandLine, err)
	}
	r.metrics.AddCommandsRun(1)
	return nil
}
