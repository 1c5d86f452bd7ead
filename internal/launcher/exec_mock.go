package launcher

// MockExecer is a mock implementation of Execer for testing
type MockExecer struct {
	ExecFunc func(path string, argv, env []string) error
}

// Exec implements Execer.Exec
func (m *MockExecer) Exec(path string, argv, env []string) error {
	if m.ExecFunc != nil {
		return m.ExecFunc(path, argv, env)
	}
	return nil
}
