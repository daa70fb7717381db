//go:build !windows

package shellrun

import (
	"context"
	"os/exec"

	"golang.org/x/sys/unix"
)

// DefaultShell is bash rather than sh: the substitution fragments rely on
// process substitution, which POSIX sh does not provide.
const DefaultShell = "/bin/bash"

// createCommand creates an exec.Cmd for the run on Unix-like systems.
func (r *Runner) createCommand(ctx context.Context, commandLine string) *exec.Cmd {
	cmd := r.commandContext(ctx, r.shell, "-c", commandLine)
	// Create a new process group (PGRP) and make the command the group
	// leader. This allows sending signals to the entire process group when
	// the context is canceled, ensuring the trimmer and all substitution
	// sub-processes are terminated together.
	cmd.SysProcAttr = &unix.SysProcAttr{Setpgid: true}
	return cmd
}
