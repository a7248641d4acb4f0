// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package cli provides the command-line interface for odata2openapi.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Flags shared by every command.
var (
	cfgFile   string
	output    string
	format    string
	modelPath string
	verbose   bool
	quiet     bool
)

// logger is configured from the global flags before any command runs.
var logger = slog.Default()

var rootCmd = &cobra.Command{
	Use:   "odata2openapi",
	Short: "OData service model to OpenAPI document converter",
	Long: `odata2openapi converts an OData service model (entity sets, singletons,
navigation properties, functions and actions) into an OpenAPI document.

Every path template the model exposes gets the operations its capability
annotations allow, with parameters, request bodies and responses.

Example:
  odata2openapi generate                  # Generate openapi.yaml from model.yaml
  odata2openapi init --model svc.yaml     # Initialize a new config file
  odata2openapi check --ci                # Fail when the document is out of date
  odata2openapi watch                     # Regenerate whenever the model changes`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(cmd.ErrOrStderr())
		slog.SetDefault(logger)
	},
}

// Execute runs the command line. It is called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	resolveBuildInfo()
	rootCmd.Version = GetVersionInfo()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default: odata2openapi.yaml)")
	flags.StringVarP(&output, "output", "o", "", "output file path (default: openapi.yaml)")
	flags.StringVarP(&format, "format", "f", "", "output format: yaml, json (default: yaml)")
	flags.StringVarP(&modelPath, "model", "m", "", "model document path (default: model.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddCommand(
		versionCmd,
		initCmd,
		generateCmd,
		validateCmd,
		checkCmd,
		diffCmd,
		watchCmd,
		printCmd,
	)
}

// newLogger returns a text logger on w. Verbose enables debug records,
// quiet discards everything.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		w = io.Discard
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// printInfo reports progress on stdout unless quiet.
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format+"\n", args...)
	}
}

// printVerbose is printInfo for verbose runs only.
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format+"\n", args...)
	}
}

func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
