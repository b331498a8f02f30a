package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/alnah/go-pagebundle/internal/config"
	"github.com/alnah/go-pagebundle/internal/fileutil"
	"github.com/alnah/go-pagebundle/internal/hints"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status     string         `json:"status"` // "ready", "warnings", "errors"
	Minifier   toolInfo       `json:"minifier"`
	Compressor compressorInfo `json:"compressor"`
	Env        envInfo        `json:"environment"`
	System     systemInfo     `json:"system"`
	Warnings   []string       `json:"warnings,omitempty"`
	Errors     []string       `json:"errors,omitempty"`
}

// toolInfo holds runtime detection results.
type toolInfo struct {
	Runtime string `json:"runtime"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// compressorInfo holds stylesheet engine detection results.
type compressorInfo struct {
	Engine   string   `json:"engine"`
	Java     toolInfo `json:"java"`
	Jar      string   `json:"jar"`
	JarFound bool     `json:"jar_found"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	Config        string `json:"config,omitempty"`
}

// systemInfo holds system check results.
type systemInfo struct {
	CSSOutputDir      string `json:"css_output_dir"`
	CSSOutputWritable bool   `json:"css_output_writable"`
}

// runDoctorCmd executes the doctor check and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(ctx context.Context, flags *bundleFlags, env *Environment) int {
	result := runDoctor(ctx, flags, env)

	if flags.mode.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks against the effective configuration.
func runDoctor(ctx context.Context, flags *bundleFlags, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	cfg, err := resolveConfig(flags, env)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Configuration: %v", err))
		cfg = config.DefaultConfig()
	}
	result.Env.Config = flags.common.config

	checkMinifier(ctx, result, cfg, env)
	checkCompressor(ctx, result, cfg, env)
	checkEnvironment(result)
	checkSystem(result, cfg)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkMinifier detects the node runtime. Every run needs it.
func checkMinifier(ctx context.Context, result *doctorResult, cfg *config.Config, env *Environment) {
	result.Minifier = probeRuntime(ctx, cfg.Tools.Node, "--version", env)
	if !result.Minifier.Found {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s not found. Install Node.js or set PAGEBUNDLE_NODE", cfg.Tools.Node))
	}
}

// checkCompressor detects java and the YUI jar. Both are only required by
// the yui engine; with the builtin engine a missing one is a warning.
func checkCompressor(ctx context.Context, result *doctorResult, cfg *config.Config, env *Environment) {
	engine := strings.ToLower(cfg.Styles.Engine)
	result.Compressor = compressorInfo{
		Engine:   engine,
		Java:     probeRuntime(ctx, cfg.Tools.Java, "-version", env),
		Jar:      cfg.Tools.CompressorJar,
		JarFound: fileutil.FileExists(cfg.Tools.CompressorJar),
	}

	report := func(msg string) {
		if engine == config.EngineBuiltin {
			result.Warnings = append(result.Warnings, msg+" (not needed with the builtin engine)")
			return
		}
		result.Errors = append(result.Errors, msg+". Use --css-engine builtin to skip it")
	}

	if !result.Compressor.Java.Found {
		report(fmt.Sprintf("%s not found", cfg.Tools.Java))
	}
	if !result.Compressor.JarFound {
		report(fmt.Sprintf("YUI compressor jar not found at %s", cfg.Tools.CompressorJar))
	}
}

// probeRuntime resolves a runtime on PATH and asks it for its version.
// java prints its version on stderr, node on stdout.
func probeRuntime(ctx context.Context, name, versionFlag string, env *Environment) toolInfo {
	info := toolInfo{Runtime: name}

	path, err := env.lookPath(name)
	if err != nil {
		return info
	}
	info.Found = true
	info.Path = path

	stdout, stderr, err := env.runner().Run(ctx, path, versionFlag)
	if err != nil {
		return info
	}
	out := strings.TrimSpace(string(stdout))
	if out == "" {
		out = strings.TrimSpace(stderr)
	}
	if first, _, _ := strings.Cut(out, "\n"); first != "" {
		info.Version = strings.TrimSpace(first)
	}
	return info
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()
	result.Env.CI = hints.InCI() || os.Getenv("CIRCLECI") != ""
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	// Docker
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn / general container indicator
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	// Kubernetes
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies that minified stylesheets can be written.
// A missing --css-out directory is created by the run, so its absence is a warning.
func checkSystem(result *doctorResult, cfg *config.Config) {
	dir := cfg.Styles.OutputDir
	if dir == "" {
		dir = "."
	}
	result.System.CSSOutputDir = dir

	if !fileutil.Exists(dir) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Stylesheet output directory %s does not exist yet; it will be created", dir))
		return
	}
	if err := fileutil.CheckWritableDir(dir); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Stylesheet output directory not writable: %s", dir))
		return
	}
	result.System.CSSOutputWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "pagebundle doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Script minifier")
	printTool(w, r.Minifier)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Stylesheet compressor")
	fmt.Fprintf(w, "  [OK] Engine: %s\n", r.Compressor.Engine)
	if r.Compressor.Engine != config.EngineBuiltin {
		printTool(w, r.Compressor.Java)
		if r.Compressor.JarFound {
			fmt.Fprintf(w, "  [OK] Jar: %s\n", r.Compressor.Jar)
		} else {
			fmt.Fprintf(w, "  [ERROR] Jar not found: %s\n", r.Compressor.Jar)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Config != "" {
		fmt.Fprintf(w, "  [OK] Config: %s\n", r.Env.Config)
	}
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.CSSOutputWritable {
		fmt.Fprintf(w, "  [OK] Stylesheet output: %s writable\n", r.System.CSSOutputDir)
	} else {
		fmt.Fprintf(w, "  [WARN] Stylesheet output: %s not verified\n", r.System.CSSOutputDir)
	}
	fmt.Fprintln(w)

	// Warnings
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	// Errors
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	// Final status
	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to bundle")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func printTool(w io.Writer, t toolInfo) {
	if !t.Found {
		fmt.Fprintf(w, "  [ERROR] %s not found\n", t.Runtime)
		return
	}
	fmt.Fprintf(w, "  [OK] %s found at %s\n", t.Runtime, t.Path)
	if t.Version != "" {
		fmt.Fprintf(w, "  [OK] Version: %s\n", t.Version)
	}
}
