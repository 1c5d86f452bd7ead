//go:build !unix

package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// SysExecer approximates process replacement where execve is unavailable:
// it runs path as a child with inherited stdio and exits with the child's
// status. Unlike a real exec the child gets a new PID.
type SysExecer struct{}

// NewSysExecer creates the platform Execer
func NewSysExecer() *SysExecer {
	return &SysExecer{}
}

// Exec starts the child and never returns once it has started
func (e *SysExecer) Exec(path string, argv, env []string) error {
	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Env:    env,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", path, err)
	}

	err := cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.ExitCode())
	}
	if err != nil {
		os.Exit(1)
	}
	os.Exit(0)
	return nil
}
