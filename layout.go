package pagebundle

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-pagebundle/internal/fileutil"
)

// Default asset names, matching the layout the bundler was written for.
const (
	DefaultScriptsDir = "js"
	DefaultStylesDir  = "css"
	DefaultBundleName = "min.js"
)

// Paths holds the user-supplied locations for one bundling run.
type Paths struct {
	InputHTML  string // source document
	OutputHTML string // rewritten document
	ToolPath   string // script minifier, run by the node runtime

	// PathFromOutputToInput is prefixed to every rewritten asset reference so
	// that it still resolves once the document lives next to OutputHTML.
	// Empty means both documents share a directory.
	PathFromOutputToInput string
}

// Layout is the validated context shared by every bundling stage.
// It is built once by NewLayout and never modified afterwards.
type Layout struct {
	Paths

	InputDir       string // directory containing InputHTML
	ScriptsDirName string // e.g. "js"
	StylesDirName  string // e.g. "css"
	BundleName     string // e.g. "min.js"
	ScriptsDir     string // InputDir/ScriptsDirName
	BundlePath     string // ScriptsDir/BundleName
}

// CheckDistinct reports ErrSamePaths when the input and output documents
// compare equal ignoring case. The comparison is lexical: two spellings of
// the same file are not detected.
func CheckDistinct(p Paths) error {
	if strings.EqualFold(p.InputHTML, p.OutputHTML) {
		return fmt.Errorf("%w: %s", ErrSamePaths, p.InputHTML)
	}
	return nil
}

// NewLayout validates p and derives the scripts directory and bundle path.
// Empty names fall back to DefaultScriptsDir, DefaultStylesDir and DefaultBundleName.
//
// Checks run in order and the first failure is returned:
//   - input and output differ (no filesystem access before this)
//   - the input document exists
//   - the minifier tool exists
//   - a scripts directory sits next to the input document
func NewLayout(p Paths, scriptsDir, stylesDir, bundleName string) (*Layout, error) {
	if err := CheckDistinct(p); err != nil {
		return nil, err
	}

	l := &Layout{
		Paths:          p,
		InputDir:       filepath.Dir(p.InputHTML),
		ScriptsDirName: orDefault(scriptsDir, DefaultScriptsDir),
		StylesDirName:  orDefault(stylesDir, DefaultStylesDir),
		BundleName:     orDefault(bundleName, DefaultBundleName),
	}
	l.ScriptsDir = filepath.Join(l.InputDir, l.ScriptsDirName)
	l.BundlePath = filepath.Join(l.ScriptsDir, l.BundleName)

	if !fileutil.Exists(p.InputHTML) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, p.InputHTML)
	}
	if !fileutil.Exists(p.ToolPath) {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, p.ToolPath)
	}
	if !fileutil.Exists(l.ScriptsDir) {
		return nil, fmt.Errorf("%w: %s (the input document must sit next to a %q directory)",
			ErrScriptsDirNotFound, l.ScriptsDir, l.ScriptsDirName)
	}

	return l, nil
}

// StylesheetSource returns the on-disk path of a stylesheet referenced as
// "<styles dir>/<name>" in the input document.
func (l *Layout) StylesheetSource(name string) string {
	return filepath.Join(l.InputDir, l.StylesDirName, filepath.FromSlash(name))
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
