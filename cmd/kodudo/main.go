package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/aptoro/kodudo"
)

var version = "dev"

func main() {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "kodudo",
		Short:         "Cook your data into documents using templates",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")

	rootCmd.AddCommand(newCookCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCookCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "cook <config.yaml>...",
		Short: "Render data using one or more config files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []kodudo.Option
			if dryRun {
				opts = append(opts, kodudo.WithDryRun())
			}

			failed := 0
			for _, configPath := range args {
				paths, err := kodudo.Cook(configPath, opts...)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", configPath, err)
					failed++
					continue
				}
				for _, path := range paths {
					fmt.Printf("Cooked: %s\n", path)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d configs failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "render to stdout instead of writing output files")

	return cmd
}

func setupLogging(level string) error {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	return nil
}
