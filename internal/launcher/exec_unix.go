//go:build unix

package launcher

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// SysExecer replaces the process image via execve. The PID, open descriptors
// and stdio carry over to the new program.
type SysExecer struct{}

// NewSysExecer creates the platform Execer
func NewSysExecer() *SysExecer {
	return &SysExecer{}
}

// Exec calls execve(path, argv, env). A relative path is resolved against
// the working directory, without a PATH lookup.
func (e *SysExecer) Exec(path string, argv, env []string) error {
	if err := unix.Exec(path, argv, env); err != nil {
		return fmt.Errorf("execve %s: %w", path, err)
	}
	return nil
}
