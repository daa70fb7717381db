//go:build windows

package fifogz

import (
	"context"
	"fmt"

	"github.com/seqforge/trimwrap/pkg/trimcmd"
)

// Pipes is a placeholder on Windows; Prepare never produces one.
type Pipes struct{}

func (p *Pipes) Wait() error  { return nil }
func (p *Pipes) Close() error { return nil }

// Prepare is unsupported on Windows, which has no Unix named pipes.
func (e *Engine) Prepare(_ context.Context, _ trimcmd.Params) (trimcmd.Params, *Pipes, error) {
	return trimcmd.Params{}, nil, fmt.Errorf("the native substitution engine requires Unix named pipes and is not available on Windows")
}
