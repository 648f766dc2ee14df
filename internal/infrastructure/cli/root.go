package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	configPath string
	verbose    bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:     "boardpulse",
	Version: Version,
	Short:   "Health reports and snapshot diffs for GitHub Projects boards",
	Long: `Boardpulse fetches a GitHub Projects board through the gh CLI and turns
it into a health report: completion, planning discipline, priority
pressure and team workload, plus what changed since the last run.

Reports render as HTML (with charts), Markdown, CSV or JSON.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

// logger builds the CLI progress logger. Progress goes to stderr so
// stdout stays clean for --json output.
func logger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to the config file (default boardpulse.yaml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
}
