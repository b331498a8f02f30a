package pagebundle

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
)

// Stylesheet engines.
const (
	EngineYUI     = "yui"
	EngineBuiltin = "builtin"
)

// Defaults for the YUI compressor invocation.
const (
	DefaultJavaRuntime   = "java"
	DefaultCompressorJar = "yuicompressor-2.4.8.jar"
)

// Compressor minifies one stylesheet from src into dst.
type Compressor interface {
	Compress(ctx context.Context, src, dst string) error
}

// YUICompressor runs "<java> -jar <jar> <src> -o <dst>". The compressor
// writes dst itself; its stdout is ignored.
type YUICompressor struct {
	Runner CommandRunner
	Java   string
	Jar    string
}

// NewYUICompressor creates a YUICompressor with a real command runner.
// Empty arguments select DefaultJavaRuntime and DefaultCompressorJar.
func NewYUICompressor(java, jar string) *YUICompressor {
	return &YUICompressor{
		Runner: &ExecRunner{},
		Java:   orDefault(java, DefaultJavaRuntime),
		Jar:    orDefault(jar, DefaultCompressorJar),
	}
}

func (c *YUICompressor) Compress(ctx context.Context, src, dst string) error {
	java := orDefault(c.Java, DefaultJavaRuntime)
	jar := orDefault(c.Jar, DefaultCompressorJar)

	_, stderr, err := c.Runner.Run(ctx, java, "-jar", jar, src, "-o", dst)
	if err != nil {
		return fmt.Errorf("%w: %s: %w%s", ErrCompress, src, err, formatStderr(stderr))
	}
	return nil
}

// BuiltinCompressor minifies stylesheets in-process, for machines without a
// Java runtime.
type BuiltinCompressor struct {
	m *minify.M
}

// NewBuiltinCompressor creates a BuiltinCompressor.
func NewBuiltinCompressor() *BuiltinCompressor {
	m := minify.New()
	m.AddFunc(cssMediaType, css.Minify)
	return &BuiltinCompressor{m: m}
}

const cssMediaType = "text/css"

func (c *BuiltinCompressor) Compress(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(src) // #nosec G304 -- path comes from the user's document
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCompress, err)
	}

	out, err := c.m.Bytes(cssMediaType, data)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCompress, src, err)
	}

	if err := os.WriteFile(dst, out, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrCompress, err)
	}
	return nil
}

// NewCompressor returns the compressor for engine ("yui" or "builtin";
// empty means "yui").
func NewCompressor(engine, java, jar string) (Compressor, error) {
	switch strings.ToLower(engine) {
	case "", EngineYUI:
		return NewYUICompressor(java, jar), nil
	case EngineBuiltin:
		return NewBuiltinCompressor(), nil
	default:
		return nil, fmt.Errorf("%w: %q (must be %s or %s)", ErrUnknownEngine, engine, EngineYUI, EngineBuiltin)
	}
}
