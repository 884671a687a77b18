package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/bloodmagesoftware/hemesh/project"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	logLevel string

	// config is loaded before any subcommand runs; explicit flags are
	// merged into it by the subcommands.
	config *project.Config
	log    = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "hemesh",
	Short: "hemesh - Half-edge mesh surgery tool",
	Long: `hemesh builds procedural half-edge meshes and runs topology operators on them.
It splits faces into quads, validates mesh invariants and prints element statistics.
Settings are read from hemesh.yaml in the working directory or any parent.`,
	SilenceUsage:      true,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := project.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cmd.Flags().Changed("log-level") {
			c.LogLevel = logLevel
		}

		level, err := zerolog.ParseLevel(c.LogLevel)
		if err != nil {
			return fmt.Errorf("parsing log level: %w", err)
		}
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
			Level(level).
			With().
			Timestamp().
			Logger()
		config = c
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace/debug/info/warn/error)")
}
