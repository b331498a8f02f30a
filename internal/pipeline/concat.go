package pipeline

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// ErrScriptNotFound is returned when a listed script does not exist.
var ErrScriptNotFound = errors.New("script file not found")

// bundlePermissions is rw-r--r--: the bundle is served as a static asset.
const bundlePermissions = 0o644

// Concatenate truncates dst and appends the raw bytes of each script in
// order. No separator is inserted: a script without a trailing newline runs
// into the next one.
func Concatenate(dst string, scripts []string) (err error) {
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, bundlePermissions) // #nosec G304 -- bundle path is derived from the input document
	if err != nil {
		return fmt.Errorf("creating bundle: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing bundle: %w", closeErr)
		}
	}()

	for _, script := range scripts {
		if err := appendFile(out, script); err != nil {
			return err
		}
	}
	return nil
}

func appendFile(w io.Writer, path string) error {
	f, err := os.Open(path) // #nosec G304 -- script paths come from the input document
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %w", ErrScriptNotFound, err)
		}
		return fmt.Errorf("opening script: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("appending %s: %w", path, err)
	}
	return nil
}
