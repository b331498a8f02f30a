// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"os/exec"
	"strings"

	"github.com/alnah/go-pagebundle/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// LookPath resolves executables on PATH. Replaced in tests.
var LookPath = exec.LookPath

// InCI reports whether a well-known CI environment variable is set.
func InCI() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-pagebundle/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path to suggest
	for _, p := range searchedPaths {
		if strings.Contains(filepathToSlash(p), "/go-pagebundle/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForToolNotFound returns a hint for a missing minifier script.
func ForToolNotFound() string {
	return format("pass the minifier script itself, e.g. node_modules/uglify-js/bin/uglifyjs")
}

// ForScriptsDir returns a hint for a missing scripts directory.
func ForScriptsDir(name string) string {
	return format("create a " + name + " directory next to the input document or use --scripts-dir")
}

// ForSamePaths returns a hint for an output path equal to the input path.
func ForSamePaths() string {
	return format("the input document is read while the output is written; choose another output path")
}

// ForCompressor returns hints for stylesheet compression failures.
// java and jar are the resolved tool locations, whatever source set them.
// Without a Java runtime on PATH, the builtin engine is suggested first.
func ForCompressor(java, jar string) string {
	var hints []string

	if java == "" {
		java = "java"
	}
	if _, err := LookPath(java); err != nil {
		hints = append(hints, java+" not found; use --css-engine builtin or set --java")
	}

	if jar == "" || !fileutil.FileExists(jar) {
		hints = append(hints, "YUI compressor jar "+quote(jar)+" not found; set --compressor-jar or PAGEBUNDLE_COMPRESSOR_JAR")
	}

	return formatHints(hints)
}

// ForMinifier returns hints for script minification failures.
func ForMinifier(runtime string) string {
	if runtime == "" {
		runtime = "node"
	}
	if _, err := LookPath(runtime); err != nil {
		return format(runtime + " not found on PATH; install Node.js or set PAGEBUNDLE_NODE")
	}
	return format("run the minifier by hand on the bundle to see its full output")
}

// ForOutputDirectory returns hints for output file creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

func quote(s string) string {
	return "\"" + s + "\""
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
