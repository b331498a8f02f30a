package pagebundle

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/alnah/go-pagebundle/internal/pipeline"
)

// filePermissions is rw-r--r--: every artifact is a static web asset.
const filePermissions = 0o644

// Compile-time interface implementation checks.
var (
	_ Minifier      = (*ExternalMinifier)(nil)
	_ Compressor    = (*YUICompressor)(nil)
	_ Compressor    = (*BuiltinCompressor)(nil)
	_ CommandRunner = (*ExecRunner)(nil)
)

// Bundler runs the bundling pipeline:
// validate, rewrite (compressing stylesheets inline), concatenate, minify.
// Create with New; a Bundler holds no per-run state and may be reused.
type Bundler struct {
	scriptsDir      string
	stylesDir       string
	bundleName      string
	stylesOutputDir string
	keepPreMinified bool
	minifier        Minifier
	compressor      Compressor
	progress        io.Writer
}

// Option configures a Bundler.
type Option func(*Bundler)

// WithScriptsDir sets the scripts directory name (default "js").
func WithScriptsDir(name string) Option {
	return func(b *Bundler) { b.scriptsDir = name }
}

// WithStylesDir sets the styles directory name (default "css").
func WithStylesDir(name string) Option {
	return func(b *Bundler) { b.stylesDir = name }
}

// WithBundleName sets the combined script file name (default "min.js").
func WithBundleName(name string) Option {
	return func(b *Bundler) { b.bundleName = name }
}

// WithStylesOutputDir sets where minified stylesheets are written.
// Empty (the default) means the current working directory.
func WithStylesOutputDir(dir string) Option {
	return func(b *Bundler) { b.stylesOutputDir = dir }
}

// WithKeepPreMinified copies "min.js" script lines to the output instead of dropping them.
func WithKeepPreMinified(keep bool) Option {
	return func(b *Bundler) { b.keepPreMinified = keep }
}

// WithMinifier replaces the default node-based script minifier.
func WithMinifier(m Minifier) Option {
	return func(b *Bundler) { b.minifier = m }
}

// WithCompressor replaces the default YUI stylesheet compressor.
func WithCompressor(c Compressor) Option {
	return func(b *Bundler) { b.compressor = c }
}

// WithProgress sets where progress lines are written (default: discarded).
func WithProgress(w io.Writer) Option {
	return func(b *Bundler) { b.progress = w }
}

// New creates a Bundler. Without options it expects "js" and "css"
// directories next to the input document, bundles into "js/min.js",
// minifies with node and compresses stylesheets with the YUI compressor.
func New(opts ...Option) *Bundler {
	b := &Bundler{progress: io.Discard}
	for _, opt := range opts {
		opt(b)
	}
	if b.minifier == nil {
		b.minifier = NewExternalMinifier("")
	}
	if b.compressor == nil {
		b.compressor = NewYUICompressor("", "")
	}
	if b.progress == nil {
		b.progress = io.Discard
	}
	return b
}

// StylesheetResult describes one stylesheet reference handled during a run.
type StylesheetResult struct {
	Source    string // stylesheet on disk, next to the input document
	Reference string // name the output document now references
	Output    string // minified file written; empty for pre-minified references
}

// Result describes a completed (or partially completed) run.
type Result struct {
	Layout      *Layout
	Scripts     []string // bundled scripts, in document order
	Stylesheets []StylesheetResult
}

// Run executes one bundling run. Stages are strictly sequential and the first
// failure aborts the rest; files already written are left in place.
// The returned Result is non-nil whenever validation succeeded.
func (b *Bundler) Run(ctx context.Context, p Paths) (*Result, error) {
	layout, err := NewLayout(p, b.scriptsDir, b.stylesDir, b.bundleName)
	if err != nil {
		return nil, err
	}
	res := &Result{Layout: layout}

	scripts, err := b.rewrite(ctx, layout, res)
	res.Scripts = scripts
	if err != nil {
		return res, err
	}

	if err := pipeline.Concatenate(layout.BundlePath, scripts); err != nil {
		return res, fmt.Errorf("concatenating scripts: %w", err)
	}

	b.logf("Calling minifier now. This step takes several seconds.\n")
	if err := b.minifier.Minify(ctx, layout.ToolPath, layout.BundlePath); err != nil {
		return res, err
	}

	return res, nil
}

// rewrite writes the output document and returns the scripts to bundle.
// The input is read in full before the output is truncated, so two
// spellings of the same path still rewrite the original content.
// The output file is flushed and closed before returning, even on error.
func (b *Bundler) rewrite(ctx context.Context, layout *Layout, res *Result) (scripts []string, err error) {
	src, err := os.ReadFile(layout.InputHTML) // #nosec G304 -- input path validated by NewLayout
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}

	out, err := os.OpenFile(layout.OutputHTML, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePermissions) // #nosec G304 -- output path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	bw := bufio.NewWriter(out)
	defer func() {
		flushErr := bw.Flush()
		closeErr := out.Close()
		if err != nil {
			return
		}
		if flushErr != nil {
			err = fmt.Errorf("%w: %w", ErrWriteOutput, flushErr)
		} else if closeErr != nil {
			err = fmt.Errorf("%w: %w", ErrWriteOutput, closeErr)
		}
	}()

	rw := &pipeline.Rewriter{
		ScriptsDir:            layout.ScriptsDirName,
		StylesDir:             layout.StylesDirName,
		BundleName:            layout.BundleName,
		PathFromOutputToInput: layout.PathFromOutputToInput,
		ScriptRoot:            layout.ScriptsDir,
		KeepPreMinified:       b.keepPreMinified,
		OnStylesheet: func(ctx context.Context, ref pipeline.StylesheetRef) error {
			return b.compressStylesheet(ctx, layout, ref, res)
		},
		OnScript: func(scriptPath string) {
			b.logf("[%s]\n", scriptPath)
		},
	}

	return rw.Rewrite(ctx, bytes.NewReader(src), bw)
}

// compressStylesheet minifies one stylesheet unless its name marks it as
// already minified. The output keeps only the base name and lands in the
// styles output directory.
func (b *Bundler) compressStylesheet(ctx context.Context, layout *Layout, ref pipeline.StylesheetRef, res *Result) error {
	sr := StylesheetResult{
		Source:    layout.StylesheetSource(ref.Name),
		Reference: ref.MinifiedName,
	}

	if !ref.PreMinified {
		dst := filepath.Join(b.stylesOutputDir, path.Base(ref.MinifiedName))
		b.logf("Compressing %s -> %s\n", sr.Source, dst)
		if err := b.compressor.Compress(ctx, sr.Source, dst); err != nil {
			return err
		}
		sr.Output = dst
	}

	res.Stylesheets = append(res.Stylesheets, sr)
	return nil
}

func (b *Bundler) logf(format string, args ...any) {
	_, _ = fmt.Fprintf(b.progress, format, args...)
}
