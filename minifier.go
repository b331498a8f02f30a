package pagebundle

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// DefaultNodeRuntime runs the script minifier.
const DefaultNodeRuntime = "node"

// Minifier minifies the combined script in place.
type Minifier interface {
	Minify(ctx context.Context, toolPath, bundlePath string) error
}

// ExternalMinifier runs a JavaScript minifier such as UglifyJS under a
// node runtime: "<runtime> <toolPath> <bundlePath>". The tool must print
// the minified script to stdout; the bundle is then replaced by that output.
type ExternalMinifier struct {
	Runner  CommandRunner
	Runtime string
}

// NewExternalMinifier creates an ExternalMinifier with a real command runner.
// An empty runtime selects DefaultNodeRuntime.
func NewExternalMinifier(runtime string) *ExternalMinifier {
	return &ExternalMinifier{Runner: &ExecRunner{}, Runtime: orDefault(runtime, DefaultNodeRuntime)}
}

// Minify runs the tool once, without retry. Stdout is captured in full
// before the bundle is overwritten, so a failed run leaves the
// concatenated bundle untouched.
func (m *ExternalMinifier) Minify(ctx context.Context, toolPath, bundlePath string) error {
	runtime := orDefault(m.Runtime, DefaultNodeRuntime)

	stdout, stderr, err := m.Runner.Run(ctx, runtime, toolPath, bundlePath)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w%s", ErrMinify, runtime, toolPath, err, formatStderr(stderr))
	}

	if err := os.WriteFile(bundlePath, stdout, filePermissions); err != nil {
		return fmt.Errorf("writing minified bundle: %w", err)
	}
	return nil
}

// formatStderr trims tool diagnostics for inclusion in an error message.
func formatStderr(stderr string) string {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return ""
	}
	return "\n" + stderr
}
