package pagebundle

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// TestCheckDistinct - Lexical, case-insensitive path comparison
// ---------------------------------------------------------------------------

func TestCheckDistinct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in, out string
		wantErr bool
	}{
		{"different files", "src/index.html", "out/index.html", false},
		{"identical", "index.html", "index.html", true},
		{"case differs", "Src/Index.HTML", "src/index.html", true},
		{"same file, different spelling", "src/index.html", "src/../src/index.html", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := CheckDistinct(Paths{InputHTML: tt.in, OutputHTML: tt.out})
			if tt.wantErr && !errors.Is(err, ErrSamePaths) {
				t.Errorf("CheckDistinct() error = %v, want ErrSamePaths", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("CheckDistinct() unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNewLayout - Validation order and derived paths
// ---------------------------------------------------------------------------

func TestNewLayout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"src/index.html": "<html></html>\n",
		"src/js/a.js":    "a",
		"tools/uglifyjs": "",
	})
	input := filepath.Join(dir, "src", "index.html")
	output := filepath.Join(dir, "out.html")
	tool := filepath.Join(dir, "tools", "uglifyjs")
	missing := filepath.Join(dir, "missing")

	tests := []struct {
		name    string
		paths   Paths
		scripts string
		wantErr error
	}{
		{"valid", Paths{InputHTML: input, OutputHTML: output, ToolPath: tool}, "", nil},
		{"same paths checked first", Paths{InputHTML: missing, OutputHTML: missing, ToolPath: missing}, "", ErrSamePaths},
		{"input before tool", Paths{InputHTML: missing, OutputHTML: output, ToolPath: missing}, "", ErrInputNotFound},
		{"tool before scripts dir", Paths{InputHTML: input, OutputHTML: output, ToolPath: missing}, "nope", ErrToolNotFound},
		{"scripts dir", Paths{InputHTML: input, OutputHTML: output, ToolPath: tool}, "scripts", ErrScriptsDirNotFound},
		{"tool may be a directory", Paths{InputHTML: input, OutputHTML: output, ToolPath: filepath.Join(dir, "tools")}, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l, err := NewLayout(tt.paths, tt.scripts, "", "")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("NewLayout() error = %v, want %v", err, tt.wantErr)
				}
				if l != nil {
					t.Error("NewLayout() returned a layout alongside an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLayout() unexpected error: %v", err)
			}
		})
	}
}

func TestNewLayout_DerivedPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"site/index.html":   "",
		"site/scripts/a.js": "",
		"site/styles/a.css": "",
		"tools/uglifyjs":    "",
	})
	p := Paths{
		InputHTML:             filepath.Join(dir, "site", "index.html"),
		OutputHTML:            filepath.Join(dir, "public", "index.html"),
		ToolPath:              filepath.Join(dir, "tools", "uglifyjs"),
		PathFromOutputToInput: "../site",
	}

	l, err := NewLayout(p, "scripts", "styles", "app.js")
	if err != nil {
		t.Fatalf("NewLayout() error = %v", err)
	}

	checks := []struct{ name, got, want string }{
		{"InputDir", l.InputDir, filepath.Join(dir, "site")},
		{"ScriptsDir", l.ScriptsDir, filepath.Join(dir, "site", "scripts")},
		{"BundlePath", l.BundlePath, filepath.Join(dir, "site", "scripts", "app.js")},
		{"StylesDirName", l.StylesDirName, "styles"},
		{"PathFromOutputToInput", l.PathFromOutputToInput, "../site"},
		{"StylesheetSource", l.StylesheetSource("themes/dark.css"), filepath.Join(dir, "site", "styles", "themes", "dark.css")},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}
}

func TestNewLayout_Defaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"index.html": "", "js/a.js": "", "uglifyjs": ""})

	l, err := NewLayout(Paths{
		InputHTML:  filepath.Join(dir, "index.html"),
		OutputHTML: filepath.Join(dir, "out.html"),
		ToolPath:   filepath.Join(dir, "uglifyjs"),
	}, "", "", "")
	if err != nil {
		t.Fatalf("NewLayout() error = %v", err)
	}

	if l.ScriptsDirName != DefaultScriptsDir || l.StylesDirName != DefaultStylesDir || l.BundleName != DefaultBundleName {
		t.Errorf("names = %q %q %q, want defaults", l.ScriptsDirName, l.StylesDirName, l.BundleName)
	}
	if _, err := os.Stat(l.BundlePath); !os.IsNotExist(err) {
		t.Error("NewLayout must not create the bundle")
	}
}
