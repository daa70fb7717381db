//go:build !windows

package fifogz_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seqforge/trimwrap/pkg/fifogz"
	"github.com/seqforge/trimwrap/pkg/runmetrics"
	"github.com/seqforge/trimwrap/pkg/trimcmd"
)

// writeGzFile writes content to path as a gzip member.
func writeGzFile(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write gzip content: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("failed to close gzip writer: %v", err)
	}
}

// readGzFile reads a gzip'ed file back into a string.
func readGzFile(t *testing.T, path string) string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer f.Close()
	gz, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("%s is not valid gzip: %v", path, err)
	}
	defer gz.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, gz); err != nil {
		t.Fatalf("failed to decompress %s: %v", path, err)
	}
	return buf.String()
}

func testParams(dir string) trimcmd.Params {
	return trimcmd.Params{
		InputR1:          filepath.Join(dir, "in_R1.fastq.gz"),
		InputR2:          filepath.Join(dir, "in_R2.fastq.gz"),
		OutputR1:         filepath.Join(dir, "out_R1.fastq.gz"),
		OutputR1Unpaired: filepath.Join(dir, "out_R1u.fastq.gz"),
		OutputR2:         filepath.Join(dir, "out_R2.fastq.gz"),
		OutputR2Unpaired: filepath.Join(dir, "out_R2u.fastq.gz"),
		PigzMode:         trimcmd.PigzBoth,
		Trimmers:         []string{"MINLEN:36"},
	}
}

func TestNewEngineLevelToken(t *testing.T) {
	testCases := []struct {
		token     string
		expectErr bool
	}{
		{"", false},
		{"-5", false},
		{"-9", false},
		{"-1", false},
		{"-0", true},
		{"-11", true},
		{"--best", true},
		{"fast", true},
	}
	for _, tc := range testCases {
		_, err := fifogz.NewEngine(tc.token, 0, nil)
		if tc.expectErr && err == nil {
			t.Errorf("NewEngine(%q): expected error, got nil", tc.token)
		}
		if !tc.expectErr && err != nil {
			t.Errorf("NewEngine(%q): unexpected error: %v", tc.token, err)
		}
	}
}

func TestPrepareRoundTrip(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	p := testParams(dir)
	readsR1 := "@r1\nACGT\n+\nIIII\n"
	readsR2 := "@r2\nTGCA\n+\nIIII\n"
	writeGzFile(t, p.InputR1, readsR1)
	writeGzFile(t, p.InputR2, readsR2)

	metrics := &runmetrics.RunMetrics{}
	eng, err := fifogz.NewEngine("-5", 2, metrics)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}

	// Act
	rewired, pipes, err := eng.Prepare(context.Background(), p)
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	defer pipes.Close()

	if rewired.PigzMode != trimcmd.PigzNone {
		t.Errorf("rewired params should carry pigz mode none, got %q", rewired.PigzMode)
	}
	for _, rewiredPath := range []string{rewired.InputR1, rewired.InputR2, rewired.OutputR1, rewired.OutputR2} {
		if !strings.HasSuffix(rewiredPath, ".fifo") {
			t.Errorf("expected a pipe path, got %q", rewiredPath)
		}
	}

	// Play the trimmer's role: drain the input pipes, fill the output pipes.
	gotR1, err := os.ReadFile(rewired.InputR1)
	if err != nil {
		t.Fatalf("failed to read input pipe: %v", err)
	}
	gotR2, err := os.ReadFile(rewired.InputR2)
	if err != nil {
		t.Fatalf("failed to read input pipe: %v", err)
	}

	outContent := map[string]string{
		rewired.OutputR1:         "trimmed R1\n",
		rewired.OutputR1Unpaired: "",
		rewired.OutputR2:         "trimmed R2\n",
		rewired.OutputR2Unpaired: "",
	}
	for fifoPath, content := range outContent {
		w, err := os.OpenFile(fifoPath, os.O_WRONLY, 0)
		if err != nil {
			t.Fatalf("failed to open output pipe: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write output pipe: %v", err)
		}
		w.Close()
	}

	if err := pipes.Wait(); err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	// Assert
	if string(gotR1) != readsR1 {
		t.Errorf("input R1 round-trip mismatch: got %q", gotR1)
	}
	if string(gotR2) != readsR2 {
		t.Errorf("input R2 round-trip mismatch: got %q", gotR2)
	}
	if got := readGzFile(t, p.OutputR1); got != "trimmed R1\n" {
		t.Errorf("output R1 mismatch: got %q", got)
	}
	if got := readGzFile(t, p.OutputR2); got != "trimmed R2\n" {
		t.Errorf("output R2 mismatch: got %q", got)
	}
	if metrics.BytesDecompressed.Load() == 0 {
		t.Error("expected decompressed bytes to be counted")
	}
	if metrics.BytesCompressed.Load() == 0 {
		t.Error("expected compressed bytes to be counted")
	}
}

func TestPrepareInputOnly(t *testing.T) {
	dir := t.TempDir()
	p := testParams(dir)
	p.PigzMode = trimcmd.PigzInput
	writeGzFile(t, p.InputR1, "a")
	writeGzFile(t, p.InputR2, "b")

	eng, err := fifogz.NewEngine("", 0, nil)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	rewired, pipes, err := eng.Prepare(context.Background(), p)
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	defer pipes.Close()

	if rewired.OutputR1 != p.OutputR1 {
		t.Errorf("outputs must stay untouched in input mode, got %q", rewired.OutputR1)
	}

	if _, err := os.ReadFile(rewired.InputR1); err != nil {
		t.Fatalf("failed to drain input pipe: %v", err)
	}
	if _, err := os.ReadFile(rewired.InputR2); err != nil {
		t.Fatalf("failed to drain input pipe: %v", err)
	}
	if err := pipes.Wait(); err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
}

func TestPrepareRejectsInvalidMode(t *testing.T) {
	eng, err := fifogz.NewEngine("", 0, nil)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	p := testParams(t.TempDir())
	p.PigzMode = "sideways"
	if _, _, err := eng.Prepare(context.Background(), p); err == nil {
		t.Fatal("expected an error for an invalid pigz mode")
	}
}

func TestCloseUnblocksAbandonedPipes(t *testing.T) {
	// The trimmer never opens its ends; Close must still return.
	dir := t.TempDir()
	p := testParams(dir)
	writeGzFile(t, p.InputR1, "a")
	writeGzFile(t, p.InputR2, "b")

	eng, err := fifogz.NewEngine("", 0, nil)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	_, pipes, err := eng.Prepare(context.Background(), p)
	if err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- pipes.Close() }()
	if err := <-done; err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}
