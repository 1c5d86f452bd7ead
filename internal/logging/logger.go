package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Color modes accepted by logging.color
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds logger configuration
type Config struct {
	Level   string
	LogFile string
	// Color is one of ColorAuto, ColorAlways or ColorNever
	Color string
	// Out receives console output; nil means os.Stderr
	Out io.Writer
}

// NewLogger creates a zerolog logger writing human-readable lines to Out and,
// when LogFile is set, JSON lines to a rotated file. Stdout is left to the
// launched program.
func NewLogger(cfg Config) *zerolog.Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "15:04:05",
		NoColor:    !ColorEnabled(cfg.Color, out),
	}}

	if w := fileWriter(cfg.LogFile); w != nil {
		writers = append(writers, w)
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()

	return &logger
}

// ColorEnabled resolves a color mode for w. Auto only colors terminals, so
// output captured by a container runtime or journald stays plain.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	default:
		return isTerminal(w)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// fileWriter returns a rotating writer for path, or nil when file logging is
// off or its directory cannot be created.
func fileWriter(path string) io.Writer {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
}

// parseLevel converts string level to zerolog.Level; unknown values fall back to warn
func parseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}

// NewTestLogger creates a logger for testing that writes to a buffer
func NewTestLogger(w io.Writer) *zerolog.Logger {
	logger := zerolog.New(w).With().Timestamp().Logger()
	return &logger
}
