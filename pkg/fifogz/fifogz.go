// Package fifogz is the in-process alternative to shell process substitution.
// It rewires the gzip'ed inputs and outputs of a trim invocation through
// named pipes that are fed (or drained) by goroutines running klauspost's
// gzip reader and parallel pgzip writer. The trimmer still sees plain file
// paths, and (de)compression still overlaps the trimming work, but no pigz
// binary and no bash are needed.
package fifogz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/seqforge/trimwrap/pkg/runmetrics"
)

// DefaultLevel is the gzip compression level used when no token is configured.
const DefaultLevel = 5

// Engine prepares the named pipes and streaming goroutines for one run.
type Engine struct {
	level   int
	jobs    int // pgzip block workers per output; 0 keeps pgzip's default
	metrics runmetrics.Metrics
}

// NewEngine creates an Engine from a compressor flag token such as "-5".
// Unlike the shell engine, which passes the token through to pigz verbatim,
// the native engine has to interpret it, so only numeric gzip levels work here.
func NewEngine(levelToken string, jobs int, metrics runmetrics.Metrics) (*Engine, error) {
	level, err := parseLevelToken(levelToken)
	if err != nil {
		return nil, err
	}
	if metrics == nil {
		metrics = &runmetrics.NoopMetrics{}
	}
	return &Engine{level: level, jobs: jobs, metrics: metrics}, nil
}

// parseLevelToken maps a pigz/gzip flag token ("-5") onto a numeric gzip level.
func parseLevelToken(token string) (int, error) {
	if token == "" {
		return DefaultLevel, nil
	}
	level, err := strconv.Atoi(strings.TrimPrefix(token, "-"))
	if err != nil || level < 1 || level > 9 {
		return 0, fmt.Errorf("the native engine requires a numeric compression level token between '-1' and '-9', got %q", token)
	}
	return level, nil
}
