package launcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/quantmind-br/vlaunch/internal/selector"
	"github.com/rs/zerolog"
)

// DefaultInterval is the pause between scans while no candidate exists
const DefaultInterval = time.Second

// Selector finds the executable to launch in a directory
type Selector interface {
	Select(dir string) (selector.Candidate, bool)
}

// SleepFunc blocks for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// LaunchError reports a candidate that was found but could not replace the process
type LaunchError struct {
	Name string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to execute %s: %v", e.Name, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Launcher polls a directory until a versioned executable shows up and then
// replaces the current process with it.
type Launcher struct {
	sel      Selector
	execer   Execer
	dir      string
	interval time.Duration
	sleep    SleepFunc
	environ  func() []string
	log      *zerolog.Logger
}

// Option configures a Launcher
type Option func(*Launcher)

// WithDir sets the directory scanned for candidates
func WithDir(dir string) Option {
	return func(l *Launcher) { l.dir = dir }
}

// WithInterval sets the fixed delay between empty scans
func WithInterval(d time.Duration) Option {
	return func(l *Launcher) { l.interval = d }
}

// WithSleep replaces the blocking wait, mainly for tests
func WithSleep(fn SleepFunc) Option {
	return func(l *Launcher) { l.sleep = fn }
}

// WithEnviron replaces the environment source read at each launch attempt
func WithEnviron(fn func() []string) Option {
	return func(l *Launcher) { l.environ = fn }
}

// WithLogger sets the logger
func WithLogger(log *zerolog.Logger) Option {
	return func(l *Launcher) { l.log = log }
}

// New creates a Launcher. Without options it scans the working directory
// once per second and launches with the live process environment.
func New(sel Selector, execer Execer, opts ...Option) *Launcher {
	nop := zerolog.Nop()
	l := &Launcher{
		sel:      sel,
		execer:   execer,
		dir:      ".",
		interval: DefaultInterval,
		sleep:    sleepContext,
		environ:  os.Environ,
		log:      &nop,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run scans until a candidate is found and then hands the process over to it.
//
// A successful replacement never returns. A replacement that fails comes back
// as a *LaunchError and is not retried. Run otherwise only returns when ctx is
// done.
func (l *Launcher) Run(ctx context.Context) error {
	for attempt := 1; ; attempt++ {
		if cand, ok := l.sel.Select(l.dir); ok {
			return l.launch(cand)
		}

		l.log.Debug().
			Str("dir", l.dir).
			Int("attempt", attempt).
			Dur("retry_in", l.interval).
			Msg("no candidate found")

		if err := l.sleep(ctx, l.interval); err != nil {
			return err
		}
	}
}

func (l *Launcher) launch(cand selector.Candidate) error {
	path := filepath.Join(l.dir, cand.Name)
	argv := []string{cand.Name}

	l.log.Debug().
		Str("executable", cand.Name).
		Str("version", cand.Version.String()).
		Msg("launching")

	if err := l.execer.Exec(path, argv, l.environ()); err != nil {
		return &LaunchError{Name: cand.Name, Err: err}
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
