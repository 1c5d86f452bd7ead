package launcher

// Execer replaces the running process with another executable.
// Implementations return only when the replacement failed.
type Execer interface {
	// Exec runs path with the given argument vector and environment
	Exec(path string, argv, env []string) error
}
