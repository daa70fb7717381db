package util_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/seqforge/trimwrap/pkg/util"
)

func TestInvertMap(t *testing.T) {
	in := map[string]int{"a": 1, "b": 2}
	got := util.InvertMap(in)
	want := map[int]string{1: "a", 2: "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("InvertMap = %v, want %v", got, want)
	}
}

func TestExpandPath(t *testing.T) {
	// Paths without a tilde pass through untouched.
	if got, err := util.ExpandPath("/data/reads_R1.fastq.gz"); err != nil || got != "/data/reads_R1.fastq.gz" {
		t.Errorf("ExpandPath passthrough failed: %q, %v", got, err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory available: %v", err)
	}
	got, err := util.ExpandPath("~/reads_R1.fastq.gz")
	if err != nil {
		t.Fatalf("ExpandPath failed: %v", err)
	}
	if got != filepath.Join(home, "reads_R1.fastq.gz") {
		t.Errorf("tilde was not expanded: %q", got)
	}
}

func TestSplitCommaList(t *testing.T) {
	testCases := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"MINLEN:36", []string{"MINLEN:36"}},
		{"LEADING:3,TRAILING:3,MINLEN:36", []string{"LEADING:3", "TRAILING:3", "MINLEN:36"}},
		{" LEADING:3 , ,MINLEN:36 ", []string{"LEADING:3", "MINLEN:36"}},
	}
	for _, tc := range testCases {
		if got := util.SplitCommaList(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("SplitCommaList(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
