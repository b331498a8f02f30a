package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	pagebundle "github.com/alnah/go-pagebundle"
	"github.com/alnah/go-pagebundle/internal/config"
	"github.com/alnah/go-pagebundle/internal/fileutil"
	"github.com/alnah/go-pagebundle/internal/hints"
	"github.com/alnah/go-pagebundle/internal/yamlutil"
)

// ErrUsage is returned for a wrong number of positional arguments or bad flags.
var ErrUsage = errors.New("usage error")

// Positional arguments: input, output, minifier, optional prefix.
// Arguments past maxPositionalArgs are ignored with a warning.
const (
	minPositionalArgs = 3
	maxPositionalArgs = 4
)

// stylesOutputDirPermissions is rwxr-xr-x for a created --css-out directory.
const stylesOutputDirPermissions = 0o755

// runBundle validates arguments, resolves configuration and runs one bundle.
func runBundle(ctx context.Context, positionalArgs []string, flags *bundleFlags, env *Environment) error {
	paths, err := parsePaths(positionalArgs)
	if err != nil {
		return err
	}
	if extra := len(positionalArgs) - maxPositionalArgs; extra > 0 {
		_, _ = fmt.Fprintf(env.Stderr, "warning: ignoring %d extra argument(s): %s\n",
			extra, strings.Join(positionalArgs[maxPositionalArgs:], " "))
	}

	// Identical paths abort before .env, config or any asset is read.
	if err := pagebundle.CheckDistinct(paths); err != nil {
		return fmt.Errorf("%w%s", err, hints.ForSamePaths())
	}

	cfg, err := resolveConfig(flags, env)
	if err != nil {
		return err
	}

	progress := env.Stdout
	if flags.common.quiet {
		progress = io.Discard
	}

	bundler, err := newBundler(cfg, progress, env)
	if err != nil {
		return err
	}

	if cfg.Styles.OutputDir != "" {
		if err := os.MkdirAll(cfg.Styles.OutputDir, stylesOutputDirPermissions); err != nil {
			return fmt.Errorf("creating stylesheet output directory: %w%s", err, hints.ForOutputDirectory())
		}
	}

	start := env.now()
	res, err := bundler.Run(ctx, paths)
	if err != nil {
		return withHint(err, cfg)
	}

	if !flags.common.quiet {
		printSummary(env.Stdout, res, cfg)
	}
	if flags.common.verbose {
		_, _ = fmt.Fprintf(env.Stderr, "Bundled %d script(s), %d stylesheet(s) in %v\n",
			len(res.Scripts), len(res.Stylesheets), env.now().Sub(start).Round(time.Millisecond))
	}
	return nil
}

// parsePaths maps positional arguments to bundle paths.
func parsePaths(args []string) (pagebundle.Paths, error) {
	if len(args) < minPositionalArgs {
		return pagebundle.Paths{}, fmt.Errorf("%w: expected at least %d arguments, got %d",
			ErrUsage, minPositionalArgs, len(args))
	}
	p := pagebundle.Paths{
		InputHTML:  args[0],
		OutputHTML: args[1],
		ToolPath:   args[2],
	}
	if len(args) >= maxPositionalArgs {
		p.PathFromOutputToInput = args[3]
	}
	return p, nil
}

// resolveConfig builds the effective configuration.
// Precedence: CLI flags > env vars > config file > defaults.
func resolveConfig(flags *bundleFlags, env *Environment) (*config.Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	warnUnknownEnvVars(env.Stderr)
	envCfg := loadEnvConfig()

	cfg := &config.Config{}
	name := flags.common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				err = fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *bundleFlags, cfg *config.Config) {
	setIfNotEmpty(&cfg.Scripts.Dir, flags.assets.scriptsDir)
	setIfNotEmpty(&cfg.Scripts.BundleName, flags.assets.bundleName)
	setIfNotEmpty(&cfg.Styles.Dir, flags.assets.stylesDir)
	if flags.assets.keepPreMinified {
		cfg.Scripts.KeepPreMinified = true
	}

	setIfNotEmpty(&cfg.Styles.Engine, flags.styles.engine)
	setIfNotEmpty(&cfg.Styles.OutputDir, flags.styles.outputDir)

	setIfNotEmpty(&cfg.Tools.Node, flags.tools.node)
	setIfNotEmpty(&cfg.Tools.Java, flags.tools.java)
	setIfNotEmpty(&cfg.Tools.CompressorJar, flags.tools.compressorJar)
}

// newBundler wires the configured tools to the environment's runner.
func newBundler(cfg *config.Config, progress io.Writer, env *Environment) (*pagebundle.Bundler, error) {
	runner := env.runner()

	compressor, err := pagebundle.NewCompressor(cfg.Styles.Engine, cfg.Tools.Java, cfg.Tools.CompressorJar)
	if err != nil {
		return nil, err
	}
	if yui, ok := compressor.(*pagebundle.YUICompressor); ok {
		yui.Runner = runner
	}

	minifier := &pagebundle.ExternalMinifier{Runner: runner, Runtime: cfg.Tools.Node}

	return pagebundle.New(
		pagebundle.WithScriptsDir(cfg.Scripts.Dir),
		pagebundle.WithStylesDir(cfg.Styles.Dir),
		pagebundle.WithBundleName(cfg.Scripts.BundleName),
		pagebundle.WithKeepPreMinified(cfg.Scripts.KeepPreMinified),
		pagebundle.WithStylesOutputDir(cfg.Styles.OutputDir),
		pagebundle.WithMinifier(minifier),
		pagebundle.WithCompressor(compressor),
		pagebundle.WithProgress(progress),
	), nil
}

// withHint appends an actionable hint for the failures users can fix.
func withHint(err error, cfg *config.Config) error {
	var hint string
	switch {
	case errors.Is(err, pagebundle.ErrToolNotFound):
		hint = hints.ForToolNotFound()
	case errors.Is(err, pagebundle.ErrScriptsDirNotFound):
		hint = hints.ForScriptsDir(cfg.Scripts.Dir)
	case errors.Is(err, pagebundle.ErrWriteOutput):
		hint = hints.ForOutputDirectory()
	case errors.Is(err, pagebundle.ErrCompress) && strings.EqualFold(cfg.Styles.Engine, config.EngineYUI):
		hint = hints.ForCompressor(cfg.Tools.Java, cfg.Tools.CompressorJar)
	case errors.Is(err, pagebundle.ErrMinify):
		hint = hints.ForMinifier(cfg.Tools.Node)
	}
	if hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// printSummary lists the produced artifacts.
func printSummary(w io.Writer, res *pagebundle.Result, cfg *config.Config) {
	cssDir := cfg.Styles.OutputDir
	if cssDir == "" {
		cssDir = "working directory"
	}
	_, _ = fmt.Fprintln(w, "Done. Paths:")
	_, _ = fmt.Fprintf(w, "\tMinified JavaScript file: %s\n", res.Layout.BundlePath)
	_, _ = fmt.Fprintf(w, "\tModified document: %s\n", res.Layout.OutputHTML)
	_, _ = fmt.Fprintf(w, "\tModified CSS files: %s (*.min.css)\n", cssDir)
}

// runPrintConfig writes the effective configuration as YAML.
func runPrintConfig(flags *bundleFlags, env *Environment) error {
	cfg, err := resolveConfig(flags, env)
	if err != nil {
		return err
	}
	data, err := yamlutil.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(data)
	return err
}
