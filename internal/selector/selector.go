package selector

import (
	"path/filepath"
	"sort"

	"github.com/quantmind-br/vlaunch/internal/fsops"
	"github.com/quantmind-br/vlaunch/internal/version"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Status is the verdict a scan gives a single directory entry
type Status string

const (
	StatusCandidate     Status = "candidate"
	StatusUnreadable    Status = "unreadable"
	StatusNotRegular    Status = "not-regular"
	StatusNotExecutable Status = "not-executable"
	StatusNotVersioned  Status = "not-versioned"
)

// Candidate is an executable whose name parsed as a version
type Candidate struct {
	Name    string          `json:"name"`
	Version version.Version `json:"version"`
}

// Entry is one directory entry together with the reason it was kept or skipped
type Entry struct {
	Name    string          `json:"name"`
	Status  Status          `json:"status"`
	Version version.Version `json:"version"`
	Err     error           `json:"-"`
}

// Selector picks the highest versioned executable in a directory.
// It only reads directory metadata and never writes to fs.
type Selector struct {
	fs  afero.Fs
	log *zerolog.Logger
}

// New creates a Selector over fs. A nil logger discards output.
func New(fs afero.Fs, log *zerolog.Logger) *Selector {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Selector{fs: fs, log: log}
}

// NewOS creates a Selector over the real filesystem
func NewOS(log *zerolog.Logger) *Selector {
	return New(afero.NewOsFs(), log)
}

// Select returns the candidate with the highest version in dir.
//
// Entries that cannot be stat'ed, are not regular files, carry no execute bit
// or do not parse as a version are skipped. Ties between equal versions keep
// whichever entry directory iteration produced first, which is filesystem
// dependent. A directory that cannot be listed reports no candidate, the same
// as an empty one.
func (s *Selector) Select(dir string) (Candidate, bool) {
	names, err := fsops.ReadDirNames(s.fs, dir)
	if err != nil {
		s.log.Debug().Err(err).Str("dir", dir).Msg("directory not readable, treating as empty")
		return Candidate{}, false
	}

	var (
		best  Candidate
		found bool
	)
	for _, name := range names {
		entry := s.classify(dir, name)
		if entry.Status != StatusCandidate {
			s.log.Trace().Str("entry", name).Str("status", string(entry.Status)).Msg("skipped")
			continue
		}
		if !found || version.Compare(entry.Version, best.Version) > 0 {
			best = Candidate{Name: entry.Name, Version: entry.Version}
			found = true
		}
	}

	return best, found
}

// Scan classifies every entry of dir in directory iteration order
func (s *Selector) Scan(dir string) ([]Entry, error) {
	names, err := fsops.ReadDirNames(s.fs, dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entries = append(entries, s.classify(dir, name))
	}
	return entries, nil
}

// Candidates filters a scan report down to candidates, highest version first.
// Equal versions keep their scan order.
func Candidates(entries []Entry) []Candidate {
	out := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		if e.Status == StatusCandidate {
			out = append(out, Candidate{Name: e.Name, Version: e.Version})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[j].Version.Less(out[i].Version)
	})
	return out
}

// classify runs the cheap name check first so unrelated entries are never stat'ed.
// Stat follows symlinks: a link to an executable regular file is a candidate.
func (s *Selector) classify(dir, name string) Entry {
	entry := Entry{Name: name}

	v, ok := version.Parse(name)
	if !ok {
		entry.Status = StatusNotVersioned
		return entry
	}
	entry.Version = v

	info, err := s.fs.Stat(filepath.Join(dir, name))
	if err != nil {
		entry.Status = StatusUnreadable
		entry.Err = err
		return entry
	}

	switch {
	case !info.Mode().IsRegular():
		entry.Status = StatusNotRegular
	case !fsops.IsExecutable(info.Mode()):
		entry.Status = StatusNotExecutable
	default:
		entry.Status = StatusCandidate
	}
	return entry
}
