package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
)

// logger is configured once before any subcommand runs.
var logger zerolog.Logger

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "offline-scrobbler",
	Short: "Scrobble music you listened to offline to Last.fm",
	Long: `offline-scrobbler reports music plays to Last.fm after the fact.

If you listened to an album on a device that cannot scrobble (a record
player, a portable player, a friend's stereo), this tool reconstructs
plausible play timestamps for the tracks and submits them in one batch.

Run 'auth' once to authorize the tool with your Last.fm API account,
then use 'scrobble' for a single track or a named album, or
'scrobble-url' to scrobble every track of a Bandcamp album page.`,
	Version:       version,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, _ := cmd.Flags().GetString("log-level")
		logger = setupLogger(level)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}

// setupLogger creates a logger with the specified level, writing
// human-readable output to stderr.
func setupLogger(logLevel string) zerolog.Logger {
	level := zerolog.InfoLevel
	switch logLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	return zerolog.New(os.Stderr).
		Level(level).
		With().
		Timestamp().
		Logger().
		Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
