package pagebundle

import "errors"

// Sentinel errors for bundling operations.
var (
	// Validation errors.
	ErrSamePaths          = errors.New("input and output documents must be different files")
	ErrInputNotFound      = errors.New("input document not found")
	ErrToolNotFound       = errors.New("minifier tool not found")
	ErrScriptsDirNotFound = errors.New("scripts directory not found")

	// Output errors.
	ErrReadInput   = errors.New("failed to read input document")
	ErrWriteOutput = errors.New("failed to write output document")

	// External tool errors.
	ErrMinify   = errors.New("script minification failed")
	ErrCompress = errors.New("stylesheet compression failed")

	// Configuration errors.
	ErrUnknownEngine = errors.New("unknown stylesheet engine")
)
