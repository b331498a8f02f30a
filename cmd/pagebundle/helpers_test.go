package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake tools and page fixtures
// ---------------------------------------------------------------------------

// fakeRunner stands in for node and java. A "-o <dst>" argument pair makes
// it write a compressed stylesheet; any other call prints minified.
type fakeRunner struct {
	mu       sync.Mutex
	calls    [][]string
	minified string
	fail     map[string]error // keyed by command name
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()

	if err := f.fail[name]; err != nil {
		return nil, "tool exploded", err
	}
	if i := slices.Index(args, "-o"); i >= 0 && i+1 < len(args) {
		if err := os.WriteFile(args[i+1], []byte("compressed"), 0o644); err != nil {
			return nil, "", err
		}
		return nil, "", nil
	}
	return []byte(f.minified), "", nil
}

func (f *fakeRunner) commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var names []string
	for _, c := range f.calls {
		names = append(names, c[0])
	}
	return names
}

// testEnv returns an Environment with captured output and a fake runner.
// Every executable is found on PATH.
func testEnv(runner *fakeRunner) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:      func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) },
		Stdout:   &stdout,
		Stderr:   &stderr,
		Runner:   runner,
		LookPath: func(file string) (string, error) { return "/usr/bin/" + file, nil },
	}, &stdout, &stderr
}

// pageFixture is a page laid out as src/{index.html,css/,js/} plus a
// minifier script, rooted in the current (temporary) working directory.
type pageFixture struct {
	input  string
	output string
	tool   string
}

const fixtureHTML = `<html>
	<head>
		<link rel="stylesheet" href="css/a.css">

		<script src="js/one.js"></script>
		<script src="js/two.js"></script>
		<script src="js/lib.min.js"></script>
	</head>
</html>
`

// newPageFixture chdirs into a fresh temp dir and writes the page.
func newPageFixture(t *testing.T) pageFixture {
	t.Helper()
	t.Chdir(t.TempDir())

	files := map[string]string{
		"src/index.html": fixtureHTML,
		"src/css/a.css":  "body { color: red; }\n",
		"src/js/one.js":  "A",
		"src/js/two.js":  "B",
		"tools/uglifyjs": "#!/usr/bin/env node\n",
	}
	for name, content := range files {
		if err := os.MkdirAll(filepath.Dir(name), 0o755); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(name, []byte(content), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	if err := os.MkdirAll("out", 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	return pageFixture{
		input:  filepath.Join("src", "index.html"),
		output: filepath.Join("out", "index.html"),
		tool:   filepath.Join("tools", "uglifyjs"),
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// clearPagebundleEnv unsets every PAGEBUNDLE_* variable for the test.
// t.Setenv registers the restore; the unset makes the variable absent
// rather than empty, which .env loading distinguishes.
func clearPagebundleEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) {
			t.Setenv(name, "")
			_ = os.Unsetenv(name)
		}
	}
}

var errExit = errors.New("exit status 1")
