package main

import (
	"io"
	"os"
	"os/exec"
	"time"

	pagebundle "github.com/alnah/go-pagebundle"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and the runner used for external tools.
type Environment struct {
	Now      func() time.Time
	Stdout   io.Writer
	Stderr   io.Writer
	Runner   pagebundle.CommandRunner          // nil = real subprocesses
	LookPath func(file string) (string, error) // nil = exec.LookPath
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:      time.Now,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Runner:   &pagebundle.ExecRunner{},
		LookPath: exec.LookPath,
	}
}

func (e *Environment) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Environment) runner() pagebundle.CommandRunner {
	if e.Runner == nil {
		return &pagebundle.ExecRunner{}
	}
	return e.Runner
}

func (e *Environment) lookPath(file string) (string, error) {
	if e.LookPath == nil {
		return exec.LookPath(file)
	}
	return e.LookPath(file)
}
