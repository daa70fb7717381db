//go:build !windows

package fifogz

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"

	"github.com/seqforge/trimwrap/pkg/plog"
	"github.com/seqforge/trimwrap/pkg/trimcmd"
)

// pgzipBlockSize is the block size handed to pgzip when a jobs count is
// configured. 1MB blocks keep the per-block overhead negligible for FASTQ.
const pgzipBlockSize = 1 << 20

// Pipes owns the named pipes and streaming goroutines of one prepared run.
// Wait must be called after the trimmer exits; Close releases everything and
// unblocks goroutines whose pipe peer never showed up.
type Pipes struct {
	dir    string
	fifos  []string
	group  *errgroup.Group
	cancel context.CancelFunc
}

// Prepare creates the named pipes for every path the pigz mode wraps and
// returns a rewritten Params whose wrapped paths point at the pipes and whose
// pigz mode is "none" (from the trimmer's point of view the pipes are plain
// files). The returned Pipes carries the goroutines streaming through them.
func (e *Engine) Prepare(ctx context.Context, p trimcmd.Params) (trimcmd.Params, *Pipes, error) {
	if _, err := trimcmd.ParsePigzMode(string(p.PigzMode)); err != nil {
		return trimcmd.Params{}, nil, err
	}

	dir, err := os.MkdirTemp("", "trimwrap-fifo-")
	if err != nil {
		return trimcmd.Params{}, nil, fmt.Errorf("could not create fifo directory: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	group, ctx := errgroup.WithContext(runCtx)
	pipes := &Pipes{dir: dir, group: group, cancel: cancel}

	rewired := p
	if p.PigzMode.WrapsInput() {
		if rewired.InputR1, err = pipes.addInput(ctx, e, p.InputR1, "in_r1"); err != nil {
			pipes.Close()
			return trimcmd.Params{}, nil, err
		}
		if rewired.InputR2, err = pipes.addInput(ctx, e, p.InputR2, "in_r2"); err != nil {
			pipes.Close()
			return trimcmd.Params{}, nil, err
		}
	}
	if p.PigzMode.WrapsOutput() {
		outputs := []struct {
			src  string
			name string
			dst  *string
		}{
			{p.OutputR1, "out_r1", &rewired.OutputR1},
			{p.OutputR1Unpaired, "out_r1_unpaired", &rewired.OutputR1Unpaired},
			{p.OutputR2, "out_r2", &rewired.OutputR2},
			{p.OutputR2Unpaired, "out_r2_unpaired", &rewired.OutputR2Unpaired},
		}
		for _, out := range outputs {
			if *out.dst, err = pipes.addOutput(ctx, e, out.src, out.name); err != nil {
				pipes.Close()
				return trimcmd.Params{}, nil, err
			}
		}
	}

	rewired.PigzMode = trimcmd.PigzNone
	return rewired, pipes, nil
}

// addInput creates a pipe that serves decompressed bytes from srcPath.
func (p *Pipes) addInput(ctx context.Context, e *Engine, srcPath, name string) (string, error) {
	fifoPath, err := p.makeFifo(name)
	if err != nil {
		return "", err
	}

	p.group.Go(func() error {
		src, err := os.Open(srcPath)
		if err != nil {
			return fmt.Errorf("could not open input %s: %w", srcPath, err)
		}
		defer src.Close()

		gz, err := gzip.NewReader(src)
		if err != nil {
			return fmt.Errorf("input %s is not valid gzip: %w", srcPath, err)
		}
		defer gz.Close()

		// Blocks until the trimmer opens the read end.
		fifo, err := os.OpenFile(fifoPath, os.O_WRONLY, 0)
		if err != nil {
			return fmt.Errorf("could not open pipe %s for writing: %w", fifoPath, err)
		}
		defer fifo.Close()

		n, err := io.Copy(fifo, contextReader{ctx: ctx, r: gz})
		e.metrics.AddBytesDecompressed(n)
		if err != nil {
			return fmt.Errorf("streaming %s failed: %w", srcPath, err)
		}
		plog.Debug("input pipe drained", "source", srcPath, "bytes", n)
		return nil
	})
	return fifoPath, nil
}

// addOutput creates a pipe whose bytes are compressed into dstPath.
func (p *Pipes) addOutput(ctx context.Context, e *Engine, dstPath, name string) (string, error) {
	fifoPath, err := p.makeFifo(name)
	if err != nil {
		return "", err
	}

	p.group.Go(func() error {
		// Blocks until the trimmer opens the write end.
		fifo, err := os.OpenFile(fifoPath, os.O_RDONLY, 0)
		if err != nil {
			return fmt.Errorf("could not open pipe %s for reading: %w", fifoPath, err)
		}
		defer fifo.Close()

		dst, err := os.Create(dstPath)
		if err != nil {
			return fmt.Errorf("could not create output %s: %w", dstPath, err)
		}
		defer dst.Close()

		gz, err := pgzip.NewWriterLevel(dst, e.level)
		if err != nil {
			return fmt.Errorf("could not create gzip writer for %s: %w", dstPath, err)
		}
		if e.jobs > 0 {
			if err := gz.SetConcurrency(pgzipBlockSize, e.jobs); err != nil {
				return fmt.Errorf("invalid jobs count %d: %w", e.jobs, err)
			}
		}

		n, err := io.Copy(gz, contextReader{ctx: ctx, r: fifo})
		e.metrics.AddBytesCompressed(n)
		if err != nil {
			gz.Close()
			return fmt.Errorf("compressing %s failed: %w", dstPath, err)
		}
		if err := gz.Close(); err != nil {
			return fmt.Errorf("finalizing %s failed: %w", dstPath, err)
		}
		plog.Debug("output pipe flushed", "target", dstPath, "bytes", n)
		return nil
	})
	return fifoPath, nil
}

func (p *Pipes) makeFifo(name string) (string, error) {
	fifoPath := filepath.Join(p.dir, name+".fifo")
	if err := unix.Mkfifo(fifoPath, 0600); err != nil {
		return "", fmt.Errorf("could not create named pipe %s: %w", fifoPath, err)
	}
	p.fifos = append(p.fifos, fifoPath)
	return fifoPath, nil
}

// Wait blocks until every streaming goroutine has finished and returns the
// first error among them.
func (p *Pipes) Wait() error {
	return p.group.Wait()
}

// Close unblocks any goroutine still waiting for a pipe peer that never
// opened (e.g. the trimmer crashed before touching its files), waits for the
// group, and removes the pipe directory. Safe to call after Wait.
func (p *Pipes) Close() error {
	p.cancel()

	done := make(chan struct{})
	go func() {
		_ = p.group.Wait()
		close(done)
	}()

	for {
		for _, fifoPath := range p.fifos {
			// Opening our own read-write end never blocks and releases a
			// blocked open(2) on the other side; closing it right away
			// turns any follow-up write into EPIPE and any read into EOF.
			if f, err := os.OpenFile(fifoPath, os.O_RDWR|unix.O_NONBLOCK, 0); err == nil {
				f.Close()
			}
		}
		select {
		case <-done:
			return os.RemoveAll(p.dir)
		case <-time.After(10 * time.Millisecond):
			// A goroutine may not have reached its blocking open yet;
			// poke the pipes again.
		}
	}
}

// contextReader fails a long-running io.Copy once the run's context is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr contextReader) Read(b []byte) (int, error) {
	select {
	case <-cr.ctx.Done():
		return 0, cr.ctx.Err()
	default:
		return cr.r.Read(b)
	}
}
