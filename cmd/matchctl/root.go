package main

import (
	"io"
	"log/slog"

	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/config"
	"github.com/ZanzyTHEbar/resume-match-analyzer/internal/monitoring"
	"github.com/spf13/cobra"
)

const app = "matchctl"

// version is set at build time with -ldflags "-X main.version=..."
var version = "1.0.0"

type rootOptions struct {
	cfgFile string
	debug   bool
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           app,
		Short:         "matchctl scores a resume against a job description from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelWarn
			if opts.debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(monitoring.NewLoggerWithWriter(cmd.ErrOrStderr(), level).Logger)

			cfg, err := config.Load(opts.cfgFile)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "a config file (default is match-analyzer.yaml in current directory)")
	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "verbose/debug output")

	cmd.AddCommand(newAnalyzeCmd(opts))
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the matchctl version",
		Args:  cobra.NoArgs,
		// Skip config loading for version.
		PersistentPreRun: func(*cobra.Command, []string) {},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), app+" "+version+"\n")
			return err
		},
	}
}
