package main

import (
	"errors"
	"os"

	pagebundle "github.com/alnah/go-pagebundle"
	"github.com/alnah/go-pagebundle/internal/config"
	"github.com/alnah/go-pagebundle/internal/pipeline"
)

// Exit codes for the pagebundle CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Bundle written
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid arguments, flags, or config
	ExitIO      = 3 // Missing document, tool, scripts, or unwritable output
	ExitTool    = 4 // Minifier or compressor failed
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// External tool errors (exit 4)
	if errors.Is(err, pagebundle.ErrMinify) ||
		errors.Is(err, pagebundle.ErrCompress) {
		return ExitTool
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, pagebundle.ErrSamePaths) ||
		errors.Is(err, pagebundle.ErrUnknownEngine) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidName) ||
		errors.Is(err, config.ErrInvalidEngine) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, pagebundle.ErrInputNotFound) ||
		errors.Is(err, pagebundle.ErrToolNotFound) ||
		errors.Is(err, pagebundle.ErrScriptsDirNotFound) ||
		errors.Is(err, pagebundle.ErrReadInput) ||
		errors.Is(err, pagebundle.ErrWriteOutput) ||
		errors.Is(err, pipeline.ErrScriptNotFound) {
		return ExitIO
	}

	return ExitGeneral
}
