package pagebundle

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// MockRunner records every invocation and returns canned output.
type MockRunner struct {
	mu     sync.Mutex
	Stdout string
	Stderr string
	Err    error
	Calls  [][]string
}

func (m *MockRunner) Run(_ context.Context, name string, args ...string) ([]byte, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, append([]string{name}, args...))
	return []byte(m.Stdout), m.Stderr, m.Err
}

// captureMinifier records the bundle content it was handed and replaces it.
type captureMinifier struct {
	calls   int
	tool    string
	bundle  string
	content string
	output  string
	err     error
}

func (c *captureMinifier) Minify(_ context.Context, toolPath, bundlePath string) error {
	c.calls++
	c.tool = toolPath
	c.bundle = bundlePath
	data, err := os.ReadFile(bundlePath)
	if err != nil {
		return err
	}
	c.content = string(data)
	if c.err != nil {
		return c.err
	}
	return os.WriteFile(bundlePath, []byte(c.output), filePermissions)
}

// recordCompressor copies src to dst and records the pairs it saw.
type recordCompressor struct {
	pairs [][2]string
	err   error
}

func (r *recordCompressor) Compress(_ context.Context, src, dst string) error {
	r.pairs = append(r.pairs, [2]string{src, dst})
	if r.err != nil {
		return r.err
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, filePermissions)
}

// writeTree creates files (slash-separated names) under root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("setup: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
}

func mustRead(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
