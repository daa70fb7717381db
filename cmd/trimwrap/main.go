package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/seqforge/trimwrap/cmd"
	"github.com/seqforge/trimwrap/pkg/buildinfo"
	"github.com/seqforge/trimwrap/pkg/flagparse"
	"github.com/seqforge/trimwrap/pkg/plog"
)

func run() error {
	command, flagMap, err := flagparse.Parse(os.Args[1:])
	if err != nil {
		return err
	}

	// Cancel the run (and its whole process tree) on Ctrl-C or SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch command {
	case flagparse.Run:
		return cmd.RunTrim(ctx, flagMap)
	case flagparse.Version:
		return cmd.RunVersion(buildinfo.Name, buildinfo.Version)
	case flagparse.Init:
		return cmd.RunInit(flagMap)
	default:
		return fmt.Errorf("unhandled command: %s", command)
	}
}

func main() {
	if err := run(); err != nil {
		if errors.Is(err, context.Canceled) {
			plog.Warn("Run canceled")
			os.Exit(130)
		}
		plog.Error(err.Error())
		os.Exit(1)
	}
}
