// Package fileutil provides file and path utility functions.
package fileutil

import (
	"fmt"
	"os"
	"strings"
)

// Exists returns true if anything (file, directory, link target) exists at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "bundle" -> false (name)
//   - "./bundle.yaml" -> true (relative path)
//   - "/etc/pagebundle.yaml" -> true (absolute)
//   - "C:\conf\bundle.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SlashJoin joins path elements with forward slashes, for use in HTML
// attributes. Empty elements are skipped, an element already ending in a
// separator gets no extra slash, and backslashes are normalized to slashes.
//
// Examples:
//   - ("", "css") -> "css"
//   - ("../src/", "js", "min.js") -> "../src/js/min.js"
//   - (`..\src`, "css") -> "../src/css"
func SlashJoin(elems ...string) string {
	var b strings.Builder
	for _, e := range elems {
		if e == "" {
			continue
		}
		if b.Len() > 0 {
			s := b.String()
			if !strings.HasSuffix(s, "/") && !strings.HasSuffix(s, "\\") {
				b.WriteByte('/')
			}
		}
		b.WriteString(e)
	}
	return strings.ReplaceAll(b.String(), "\\", "/")
}

// CheckWritableDir verifies that a file can be created in dir.
// An empty dir means the current working directory.
func CheckWritableDir(dir string) error {
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, ".pagebundle-probe-*")
	if err != nil {
		return fmt.Errorf("directory not writable: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return nil
}
