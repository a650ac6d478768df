// Package main provides the hh CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	humanOutput bool
	verbose     bool
)

func main() {
	// A .env in the working directory may carry HEPHARVEST_* overrides.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hh",
	Short: "Bibliography harvester for the INSPIRE-HEP literature database",
	Long: `hh fetches bibliographic metadata from INSPIRE-HEP, normalizes it to
BibTeX, and reconciles fresh metadata with previously stored entries
without clobbering manual edits.

All commands output JSON by default; pass --human for readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Version = Version
}

// newLogger builds the CLI logger: warnings and up by default, everything
// with --verbose.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()
}
