package cmd

import (
	"context"
	"time"

	"github.com/seqforge/trimwrap/pkg/buildinfo"
	"github.com/seqforge/trimwrap/pkg/config"
	"github.com/seqforge/trimwrap/pkg/engine"
	"github.com/seqforge/trimwrap/pkg/plog"
	"github.com/seqforge/trimwrap/pkg/preflight"
	"github.com/seqforge/trimwrap/pkg/runmetrics"
	"github.com/seqforge/trimwrap/pkg/shellrun"
)

// RunTrim handles the logic for the main trim execution.
func RunTrim(ctx context.Context, flagMap map[string]any) error {
	// Load config from the working directory, or use defaults if not found.
	loadedConfig, err := config.Load(".")
	if err != nil {
		return err
	}

	// Merge the flag values over the loaded config to get the final run config.
	runConfig, err := config.MergeConfigWithFlags(loadedConfig, flagMap)
	if err != nil {
		return err
	}

	// CRITICAL: Validate the config for the run
	if err := runConfig.Validate(true); err != nil {
		return err
	}

	// Set the global log level based on the final configuration.
	plog.SetLevel(plog.LevelFromString(runConfig.LogLevel))

	// Log the Summary
	runConfig.LogSummary()

	var metrics runmetrics.Metrics = &runmetrics.NoopMetrics{}
	if runConfig.Metrics {
		metrics = &runmetrics.RunMetrics{}
	}

	// Create the runner and feed it with our leaf workers
	runner := engine.NewRunner(
		preflight.NewChecker(),
		shellrun.NewRunner("", nil, metrics),
		metrics,
	)

	plan := &engine.Plan{
		Params: runConfig.Params(),
		Engine: runConfig.Engine,
		DryRun: runConfig.Runtime.DryRun,
	}

	// Execute the plan
	startTime := time.Now()
	err = runner.Execute(ctx, plan)
	duration := time.Since(startTime).Round(time.Millisecond)
	if err != nil {
		return err // The error will be logged with full details by main()
	}
	metrics.Log()
	plog.Info(buildinfo.Name+" finished successfully.", "duration", duration)
	return nil
}
