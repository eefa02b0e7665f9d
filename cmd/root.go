package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel     string // Log verbosity level
	outputFormat string // Result format: text or json
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "abpower",
	Short: "Bayesian A/B test certainty and Monte Carlo power analysis",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
		if outputFormat != formatText && outputFormat != formatJSON {
			logrus.Fatalf("Invalid output format %q; valid: text, json", outputFormat)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up persistent flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", formatText, "Output format (text, json)")

	rootCmd.AddCommand(certaintyCmd)
	rootCmd.AddCommand(countsCmd)
	rootCmd.AddCommand(drawsCmd)
	rootCmd.AddCommand(powerCmd)
}
