package selector

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/quantmind-br/vlaunch/internal/version"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const deployDir = "/deploy"

func newMemFs(t *testing.T, files map[string]os.FileMode) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(deployDir, 0755))
	for name, perm := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.Join(deployDir, name), []byte("#!/bin/sh\n"), perm))
	}
	return fs
}

func newTestSelector(fs afero.Fs) *Selector {
	log := zerolog.New(io.Discard)
	return New(fs, &log)
}

// statFailFs fails Stat for a single name and defers everything else
type statFailFs struct {
	afero.Fs
	fail string
}

func (f statFailFs) Stat(name string) (os.FileInfo, error) {
	if filepath.Base(name) == f.fail {
		return nil, os.ErrPermission
	}
	return f.Fs.Stat(name)
}

func TestSelect_MixedDirectory(t *testing.T) {
	t.Parallel()

	fs := newMemFs(t, map[string]os.FileMode{
		"v1.0.0":    0755,
		"v1.2.0":    0755,
		"v2.0":      0644,
		"README.md": 0644,
		"v1.10":     0644,
	})
	sel := newTestSelector(fs)

	got, ok := sel.Select(deployDir)
	require.True(t, ok)
	assert.Equal(t, "v1.2.0", got.Name)
	assert.Equal(t, version.Version{Major: 1, Minor: 2}, got.Version)
}

func TestSelect_NumericOrdering(t *testing.T) {
	t.Parallel()

	fs := newMemFs(t, map[string]os.FileMode{
		"v1.9.0":   0755,
		"v1.10":    0755,
		"v1.99.99": 0755,
		"v2":       0755,
	})

	got, ok := newTestSelector(fs).Select(deployDir)
	require.True(t, ok)
	assert.Equal(t, "v2", got.Name)
}

func TestSelect_AnyExecuteBit(t *testing.T) {
	tests := []struct {
		name string
		perm os.FileMode
		want bool
	}{
		{"owner", 0700, true},
		{"group", 0610, true},
		{"other", 0601, true},
		{"none", 0666, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fs := newMemFs(t, map[string]os.FileMode{"v1.0.0": tt.perm})
			_, ok := newTestSelector(fs).Select(deployDir)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestSelect_NoCandidates(t *testing.T) {
	t.Parallel()

	t.Run("empty directory", func(t *testing.T) {
		t.Parallel()
		sel := newTestSelector(newMemFs(t, nil))
		for range 3 {
			_, ok := sel.Select(deployDir)
			assert.False(t, ok)
		}
	})

	t.Run("only non-matching entries", func(t *testing.T) {
		t.Parallel()
		fs := newMemFs(t, map[string]os.FileMode{
			"README.md": 0644,
			"app":       0755,
			"1.2.3":     0755,
			"v1.2.3-rc": 0755,
			"v1.2.3.4":  0755,
			"v2.0.0":    0644,
		})
		_, ok := newTestSelector(fs).Select(deployDir)
		assert.False(t, ok)
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()
		_, ok := newTestSelector(afero.NewMemMapFs()).Select("/nowhere")
		assert.False(t, ok)
	})
}

func TestSelect_SingleCandidateAmongNoise(t *testing.T) {
	t.Parallel()

	fs := newMemFs(t, map[string]os.FileMode{
		"v3.1.4":      0755,
		"notes.txt":   0644,
		"run.sh":      0755,
		"v3.1.4.bak":  0755,
		"v9.9.9-beta": 0755,
	})
	require.NoError(t, fs.MkdirAll(filepath.Join(deployDir, "v10"), 0755))
	sel := newTestSelector(fs)

	for range 5 {
		got, ok := sel.Select(deployDir)
		require.True(t, ok)
		assert.Equal(t, "v3.1.4", got.Name)
	}
}

func TestSelect_DirectoryNamedLikeVersion(t *testing.T) {
	t.Parallel()

	fs := newMemFs(t, map[string]os.FileMode{"v1": 0755})
	require.NoError(t, fs.MkdirAll(filepath.Join(deployDir, "v5.0.0"), 0755))

	got, ok := newTestSelector(fs).Select(deployDir)
	require.True(t, ok)
	assert.Equal(t, "v1", got.Name)
}

func TestSelect_UnreadableEntrySkipped(t *testing.T) {
	t.Parallel()

	base := newMemFs(t, map[string]os.FileMode{
		"v1.0.0": 0755,
		"v9.0.0": 0755,
	})
	sel := newTestSelector(statFailFs{Fs: base, fail: "v9.0.0"})

	got, ok := sel.Select(deployDir)
	require.True(t, ok)
	assert.Equal(t, "v1.0.0", got.Name)
}

func TestSelect_EqualVersionsPickOne(t *testing.T) {
	t.Parallel()

	fs := newMemFs(t, map[string]os.FileMode{
		"v1":     0755,
		"v1.0":   0755,
		"v1.0.0": 0755,
	})

	got, ok := newTestSelector(fs).Select(deployDir)
	require.True(t, ok)
	assert.Contains(t, []string{"v1", "v1.0", "v1.0.0"}, got.Name)
	assert.Equal(t, version.Version{Major: 1}, got.Version)
}

func TestSelect_Idempotent(t *testing.T) {
	t.Parallel()

	fs := newMemFs(t, map[string]os.FileMode{
		"v0.1":   0755,
		"v0.2":   0755,
		"v0.10":  0755,
		"v0.9.9": 0755,
	})
	sel := newTestSelector(fs)

	first, ok := sel.Select(deployDir)
	require.True(t, ok)
	for range 10 {
		got, ok := sel.Select(deployDir)
		require.True(t, ok)
		assert.Equal(t, first, got)
	}
	assert.Equal(t, "v0.10", first.Name)
}

func TestSelect_DoesNotMutate(t *testing.T) {
	t.Parallel()

	fs := newMemFs(t, map[string]os.FileMode{"v1": 0755, "v2": 0644})
	ro := afero.NewReadOnlyFs(fs)

	got, ok := newTestSelector(ro).Select(deployDir)
	require.True(t, ok)
	assert.Equal(t, "v1", got.Name)
}

func TestSelect_NilLogger(t *testing.T) {
	t.Parallel()

	sel := New(newMemFs(t, map[string]os.FileMode{"v1": 0755}), nil)
	_, ok := sel.Select(deployDir)
	assert.True(t, ok)
}

func TestSelect_OsFs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name string, perm os.FileMode) {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), perm))
		require.NoError(t, os.Chmod(path, perm))
	}
	write("v1.0.0", 0755)
	write("v1.2.0", 0755)
	write("v2.0", 0644)
	write("README.md", 0644)
	write("v1.10", 0644)

	got, ok := NewOS(nil).Select(dir)
	require.True(t, ok)
	assert.Equal(t, "v1.2.0", got.Name)
}

func TestSelect_Symlinks(t *testing.T) {
	t.Parallel()

	t.Run("link to executable is followed", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		target := filepath.Join(dir, "app-build")
		require.NoError(t, os.WriteFile(target, []byte("#!/bin/sh\n"), 0755))
		require.NoError(t, os.Chmod(target, 0755))
		require.NoError(t, os.Symlink(target, filepath.Join(dir, "v4.0.0")))

		got, ok := NewOS(nil).Select(dir)
		require.True(t, ok)
		assert.Equal(t, "v4.0.0", got.Name)
	})

	t.Run("dangling link is skipped", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		exe := filepath.Join(dir, "v1.0.0")
		require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755))
		require.NoError(t, os.Chmod(exe, 0755))
		require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "v9.0.0")))

		got, ok := NewOS(nil).Select(dir)
		require.True(t, ok)
		assert.Equal(t, "v1.0.0", got.Name)
	})

	t.Run("link to directory is skipped", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		sub := filepath.Join(dir, "releases")
		require.NoError(t, os.Mkdir(sub, 0755))
		require.NoError(t, os.Symlink(sub, filepath.Join(dir, "v2")))

		_, ok := NewOS(nil).Select(dir)
		assert.False(t, ok)
	})
}

func TestScan(t *testing.T) {
	t.Parallel()

	base := newMemFs(t, map[string]os.FileMode{
		"v1.0.0":    0755,
		"v2.0":      0644,
		"README.md": 0644,
		"v3":        0755,
	})
	require.NoError(t, base.MkdirAll(filepath.Join(deployDir, "v4"), 0755))
	sel := newTestSelector(statFailFs{Fs: base, fail: "v3"})

	entries, err := sel.Scan(deployDir)
	require.NoError(t, err)

	byName := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}
	require.Len(t, byName, 5)

	assert.Equal(t, StatusCandidate, byName["v1.0.0"].Status)
	assert.Equal(t, StatusNotExecutable, byName["v2.0"].Status)
	assert.Equal(t, StatusNotVersioned, byName["README.md"].Status)
	assert.Equal(t, StatusNotRegular, byName["v4"].Status)
	assert.Equal(t, StatusUnreadable, byName["v3"].Status)
	assert.True(t, errors.Is(byName["v3"].Err, os.ErrPermission))
}

func TestScan_MissingDirectory(t *testing.T) {
	t.Parallel()

	entries, err := newTestSelector(afero.NewMemMapFs()).Scan("/nowhere")
	assert.Error(t, err)
	assert.Nil(t, entries)
}

func TestCandidates(t *testing.T) {
	t.Parallel()

	entries := []Entry{
		{Name: "v1.9", Status: StatusCandidate, Version: version.Version{Major: 1, Minor: 9}},
		{Name: "README", Status: StatusNotVersioned},
		{Name: "v1.10", Status: StatusCandidate, Version: version.Version{Major: 1, Minor: 10}},
		{Name: "v1", Status: StatusCandidate, Version: version.Version{Major: 1}},
		{Name: "v1.0.0", Status: StatusCandidate, Version: version.Version{Major: 1}},
		{Name: "v7", Status: StatusNotExecutable, Version: version.Version{Major: 7}},
	}

	got := Candidates(entries)
	names := make([]string, 0, len(got))
	for _, c := range got {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"v1.10", "v1.9", "v1", "v1.0.0"}, names)
}
