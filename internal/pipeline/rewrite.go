package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-pagebundle/internal/fileutil"
)

// ErrEmptyDirName is returned when a Rewriter has no scripts or styles directory name.
var ErrEmptyDirName = errors.New("asset directory name cannot be empty")

// Markers that flag a reference as already minified upstream.
const (
	preMinifiedScript     = "min.js"
	preMinifiedStylesheet = "min.css"
)

// StylesheetRef is a stylesheet reference found while rewriting.
type StylesheetRef struct {
	Name         string // as written after "<styles dir>/" in the document
	MinifiedName string // name the rewritten document now references
	PreMinified  bool   // Name already contains "min.css"; nothing to compress
	Line         int    // 1-based line number in the source document
}

// Rewriter rewrites an HTML document line by line, collecting the scripts to
// bundle. It is not an HTML parser: a tag split across lines is not seen.
type Rewriter struct {
	ScriptsDir            string // scripts directory name as it appears in src attributes
	StylesDir             string // styles directory name as it appears in href attributes
	BundleName            string // combined script file name
	PathFromOutputToInput string // prefix for every rewritten reference
	ScriptRoot            string // filesystem directory that script names resolve against

	// KeepPreMinified copies "min.js" script lines through unchanged.
	// By default they are dropped from the output.
	KeepPreMinified bool

	// OnStylesheet runs synchronously after the rewritten stylesheet line
	// is written. An error stops the rewrite.
	OnStylesheet func(ctx context.Context, ref StylesheetRef) error

	// OnScript is called with each script path added to the bundle list.
	OnScript func(path string)
}

// rewriteState tracks one pass over a document.
type rewriteState struct {
	scripts     []string
	wroteBundle bool
	lineNo      int
}

// Rewrite copies r to w, applying the per-line rules, and returns the script
// paths to bundle in document order. Duplicates are kept.
//
// Per line:
//   - blank lines are dropped
//   - stylesheet links under the styles directory are rewritten to the
//     minified name and relocated under PathFromOutputToInput
//   - script tags under the scripts directory are removed; the first one is
//     replaced by a single tag for the bundle
//   - anything else is copied verbatim, line terminator included
func (rw *Rewriter) Rewrite(ctx context.Context, r io.Reader, w io.Writer) ([]string, error) {
	stylesheetRe, scriptRe, err := rw.patterns()
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(r)
	st := &rewriteState{}

	for {
		line, readErr := br.ReadString('\n')
		if line != "" {
			st.lineNo++
			if err := rw.rewriteLine(ctx, st, line, stylesheetRe, scriptRe, w); err != nil {
				return st.scripts, err
			}
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return st.scripts, fmt.Errorf("reading line %d: %w", st.lineNo+1, readErr)
		}
	}

	return st.scripts, nil
}

func (rw *Rewriter) rewriteLine(ctx context.Context, st *rewriteState, line string, stylesheetRe, scriptRe *regexp.Regexp, w io.Writer) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	copyLine := true

	if m := stylesheetRe.FindStringSubmatch(line); m != nil {
		copyLine = false
		ref := StylesheetRef{
			Name:         m[1],
			MinifiedName: MinifiedStylesheetName(m[1]),
			PreMinified:  IsPreMinifiedStylesheet(m[1]),
			Line:         st.lineNo,
		}
		if _, err := io.WriteString(w, rw.rewriteStylesheetLine(line, ref)); err != nil {
			return err
		}
		if rw.OnStylesheet != nil {
			if err := rw.OnStylesheet(ctx, ref); err != nil {
				return err
			}
		}
	}

	if m := scriptRe.FindStringSubmatch(line); m != nil {
		name := m[1]
		if IsPreMinifiedScript(name) {
			if !rw.KeepPreMinified {
				copyLine = false
			}
		} else {
			copyLine = false
			scriptPath := filepath.Join(rw.ScriptRoot, filepath.FromSlash(name))
			st.scripts = append(st.scripts, scriptPath)
			if rw.OnScript != nil {
				rw.OnScript(scriptPath)
			}
			if !st.wroteBundle {
				st.wroteBundle = true
				if _, err := io.WriteString(w, rw.BundleTag()); err != nil {
					return err
				}
			}
		}
	}

	if copyLine {
		_, err := io.WriteString(w, line)
		return err
	}
	return nil
}

// rewriteStylesheetLine substitutes the minified name and relocates every
// "<styles dir>/" occurrence under PathFromOutputToInput.
func (rw *Rewriter) rewriteStylesheetLine(line string, ref StylesheetRef) string {
	text := strings.ReplaceAll(line, ref.Name, ref.MinifiedName)
	newDir := fileutil.SlashJoin(rw.PathFromOutputToInput, rw.StylesDir)
	return strings.ReplaceAll(text, rw.StylesDir+"/", newDir+"/")
}

// BundleTag returns the script tag written in place of the first bundled script.
func (rw *Rewriter) BundleTag() string {
	src := fileutil.SlashJoin(rw.PathFromOutputToInput, rw.ScriptsDir, rw.BundleName)
	return fmt.Sprintf("\t\t<script src=\"%s\"></script>\n", src)
}

// patterns compiles the stylesheet and script matchers. Both are
// case-insensitive and unanchored, so a tag may sit anywhere on its line.
func (rw *Rewriter) patterns() (stylesheet, script *regexp.Regexp, err error) {
	if rw.ScriptsDir == "" || rw.StylesDir == "" {
		return nil, nil, ErrEmptyDirName
	}
	stylesheet = regexp.MustCompile(`(?i)stylesheet.*"` + regexp.QuoteMeta(rw.StylesDir) + `/([^"]+)"`)
	script = regexp.MustCompile(`(?i)<script\s+src="` + regexp.QuoteMeta(rw.ScriptsDir) + `/([^"]+)"`)
	return stylesheet, script, nil
}

// IsPreMinifiedScript reports whether a script name contains "min.js", ignoring case.
// It is a substring test, so "admin.js" also counts as pre-minified.
func IsPreMinifiedScript(name string) bool {
	return strings.Contains(strings.ToLower(name), preMinifiedScript)
}

// IsPreMinifiedStylesheet reports whether a stylesheet name contains "min.css", ignoring case.
func IsPreMinifiedStylesheet(name string) bool {
	return strings.Contains(strings.ToLower(name), preMinifiedStylesheet)
}

// MinifiedStylesheetName derives the minified name of a stylesheet.
//
// Examples:
//   - "foo.css" -> "foo.min.css"
//   - "foo.min.css" -> "foo.min.css" (pre-minified, unchanged)
//   - "themes/dark.css" -> "themes/dark.min.css"
//   - "foo" -> "foo.min.css"
func MinifiedStylesheetName(name string) string {
	if IsPreMinifiedStylesheet(name) {
		return name
	}
	ext := path.Ext(name)
	if ext == "" {
		return name + ".min.css"
	}
	return strings.TrimSuffix(name, ext) + ".min" + ext
}
