package preflight_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/seqforge/trimwrap/pkg/hints"
	"github.com/seqforge/trimwrap/pkg/preflight"
	"github.com/seqforge/trimwrap/pkg/trimcmd"
)

// fakeLookup resolves only the given binaries.
func fakeLookup(available ...string) func(string) (string, error) {
	return func(file string) (string, error) {
		for _, a := range available {
			if a == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", fmt.Errorf("executable file not found in $PATH")
	}
}

func TestCheckTool(t *testing.T) {
	checker := preflight.NewCheckerWithLookup(fakeLookup("trimmomatic"))

	if err := checker.CheckTool("trimmomatic"); err != nil {
		t.Errorf("expected trimmomatic to pass preflight: %v", err)
	}
	// An empty tool falls back to the default binary name.
	if err := checker.CheckTool(""); err != nil {
		t.Errorf("expected the default tool to pass preflight: %v", err)
	}

	err := checker.CheckTool("TrimmomaticPE")
	if err == nil {
		t.Fatal("expected an error for a missing binary")
	}
	if !strings.Contains(err.Error(), `"TrimmomaticPE"`) {
		t.Errorf("error %q does not name the missing binary", err.Error())
	}
}

func TestCheckShell(t *testing.T) {
	checker := preflight.NewCheckerWithLookup(fakeLookup("/bin/bash"))
	if err := checker.CheckShell("/bin/bash"); err != nil {
		t.Errorf("expected bash to pass preflight: %v", err)
	}
	if err := checker.CheckShell("/bin/fish"); err == nil {
		t.Error("expected an error for a missing shell")
	}
}

func TestCheckCompressor(t *testing.T) {
	checker := preflight.NewCheckerWithLookup(fakeLookup("pigz"))

	testCases := []struct {
		name       string
		mode       trimcmd.PigzMode
		compressor trimcmd.Compressor
		expectHint bool
		expectErr  bool
	}{
		{"Mode none needs nothing", trimcmd.PigzNone, trimcmd.CompressorPigz, true, false},
		{"Compressor none needs nothing", trimcmd.PigzBoth, trimcmd.CompressorNone, true, false},
		{"Pigz available", trimcmd.PigzBoth, trimcmd.CompressorPigz, false, false},
		{"Empty compressor defaults to pigz", trimcmd.PigzInput, "", false, false},
		{"Gzip missing", trimcmd.PigzOutput, trimcmd.CompressorGzip, false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := checker.CheckCompressor(tc.mode, tc.compressor)
			switch {
			case tc.expectHint:
				if !hints.Is(err, preflight.ErrNoCompressorNeeded) {
					t.Errorf("expected the no-compressor hint, got %v", err)
				}
			case tc.expectErr:
				if err == nil || hints.IsHint(err) {
					t.Errorf("expected a hard error, got %v", err)
				}
			default:
				if err != nil {
					t.Errorf("expected success, got %v", err)
				}
			}
		})
	}
}
