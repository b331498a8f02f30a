package pagebundle

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/alnah/go-pagebundle/internal/process"
)

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout []byte, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
// The child runs in its own process group so that cancelling ctx also
// stops anything the tool spawned (node workers, JVM helpers).
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- tool and runtime are chosen by the user
	process.Isolate(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.Bytes(), stderr.String(), err
}
