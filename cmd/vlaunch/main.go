package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/quantmind-br/vlaunch/internal/cmd"
	"github.com/quantmind-br/vlaunch/internal/config"
	"github.com/quantmind-br/vlaunch/internal/launcher"
	"github.com/quantmind-br/vlaunch/internal/logging"
	"github.com/quantmind-br/vlaunch/internal/ui"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the command line and returns the process exit status. On a
// successful launch it never returns, since the process image is replaced.
func run(args []string, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}

	ui.InitColors(cfg.Logging.Color)

	log := logging.NewLogger(logging.Config{
		Level:   cfg.Logging.Level,
		LogFile: cfg.Logging.File,
		Color:   cfg.Logging.Color,
		Out:     stderr,
	})

	rootCmd := cmd.NewRootCmd(cfg, log, version)
	rootCmd.SetArgs(args)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		var launchErr *launcher.LaunchError
		if errors.As(err, &launchErr) {
			log.Error().Err(launchErr.Err).Str("executable", launchErr.Name).Msg("failed to execute " + launchErr.Name)
		} else {
			log.Error().Err(err).Msg("command failed")
		}
		return 1
	}
	return 0
}
