package fsops

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// ExecBits covers the owner, group and other execute permissions
const ExecBits os.FileMode = 0o111

// ReadDirNames lists the entry names of dir in directory iteration order
func ReadDirNames(fs afero.Fs, dir string) ([]string, error) {
	f, err := fs.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open directory: %w", err)
	}
	defer f.Close()

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}
	return names, nil
}

// IsExecutable reports whether any execute bit is set in mode
func IsExecutable(mode os.FileMode) bool {
	return mode.Perm()&ExecBits != 0
}
