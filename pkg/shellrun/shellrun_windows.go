//go:build windows

package shellrun

import (
	"context"
	"os/exec"
)

// DefaultShell on Windows. cmd has no process substitution, so only plain
// commands (pigz mode "none") can run here; the engine rejects anything else.
const DefaultShell = "cmd"

// createCommand creates an exec.Cmd for the run on Windows.
func (r *Runner) createCommand(ctx context.Context, commandLine string) *exec.Cmd {
	return r.commandContext(ctx, r.shell, "/C", commandLine)
}
