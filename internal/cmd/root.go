package cmd

import (
	"github.com/quantmind-br/vlaunch/internal/config"
	"github.com/quantmind-br/vlaunch/internal/launcher"
	"github.com/quantmind-br/vlaunch/internal/selector"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// scanDir is where candidates are looked up; always the working directory
const scanDir = "."

// NewRootCmd creates the root command
func NewRootCmd(cfg *config.Config, log *zerolog.Logger, version string) *cobra.Command {
	return newRootCmd(cfg, log, version, afero.NewOsFs(), launcher.NewSysExecer())
}

func newRootCmd(cfg *config.Config, log *zerolog.Logger, version string, fs afero.Fs, execer launcher.Execer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vlaunch",
		Short: "Launch the highest versioned executable in the working directory",
		Long: `Scan the working directory for executables named v<major>[.<minor>[.<patch>]],
pick the highest version and replace this process with it.

The environment is passed through unchanged and no arguments are forwarded.
While no candidate exists the directory is polled again after a fixed interval.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := []launcher.Option{launcher.WithDir(scanDir), launcher.WithLogger(log)}
			if cfg.Launcher.PollInterval > 0 {
				opts = append(opts, launcher.WithInterval(cfg.Launcher.PollInterval))
			}

			l := launcher.New(selector.New(fs, log), execer, opts...)
			return l.Run(cmd.Context())
		},
	}

	cmd.AddCommand(NewListCmd(log, fs, scanDir))
	cmd.AddCommand(NewVersionCmd(version))

	return cmd
}
