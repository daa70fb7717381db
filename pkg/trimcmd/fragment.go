package trimcmd

import "fmt"

// DefaultLevel is the compressor flag token used when none is configured.
// It is passed through to the compressor verbatim and never range-validated.
const DefaultLevel = "-5"

// ComposeInput returns path unchanged for CompressorNone, or a read-side
// process-substitution fragment whose sub-process streams decompressed bytes
// from path to its stdout, so the caller can hand the fragment to the trimmer
// as if it were a readable file.
//
// jobs > 0 is forwarded to pigz as --processes; gzip has no threading flag
// and ignores it. The sub-process is launched later by the shell that runs
// the assembled command, never here.
func ComposeInput(path string, compressor Compressor, jobs int) (string, error) {
	if _, ok := compressorToString[compressor]; !ok {
		return "", &ConfigError{Param: "compression method", Value: string(compressor), Allowed: compressorValues()}
	}

	if compressor == CompressorNone {
		return path, nil
	}
	if compressor == CompressorPigz && jobs > 0 {
		return fmt.Sprintf("<(%s --processes %d --decompress --stdout %s)", compressor, jobs, path), nil
	}
	return fmt.Sprintf("<(%s --decompress --stdout %s)", compressor, path), nil
}

// ComposeOutput returns path unchanged for CompressorNone (level is ignored),
// or a write-side process-substitution fragment whose sub-process compresses
// its stdin at the given level and writes the result to path.
//
// level is a compressor flag token such as "-5"; an empty level falls back to
// DefaultLevel. jobs behaves as in ComposeInput.
func ComposeOutput(path string, compressor Compressor, level string, jobs int) (string, error) {
	if _, ok := compressorToString[compressor]; !ok {
		return "", &ConfigError{Param: "compression method", Value: string(compressor), Allowed: compressorValues()}
	}

	if compressor == CompressorNone {
		return path, nil
	}
	if level == "" {
		level = DefaultLevel
	}
	if compressor == CompressorPigz && jobs > 0 {
		return fmt.Sprintf(">(%s --processes %d %s > %s)", compressor, jobs, level, path), nil
	}
	return fmt.Sprintf(">(%s %s > %s)", compressor, level, path), nil
}
