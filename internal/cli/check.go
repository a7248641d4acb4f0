// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/api2spec/odata2openapi/internal/config"
	"github.com/api2spec/odata2openapi/internal/openapi"
)

// Exit codes for check command
const (
	ExitCodeMatch      = 0 // Document matches the model
	ExitCodeDifference = 1 // Document differs from the model
	ExitCodeCheckError = 2 // Error during generation
)

var (
	checkStrict   bool
	checkBreaking bool
	checkIgnore   []string
	checkCI       bool
)

var checkCmd = &cobra.Command{
	Use:   "check [model]",
	Short: "Check if the output document matches the model",
	Long: `Check that the OpenAPI document on disk matches the configured model.

This command regenerates the document from the model and compares it with
the existing output file. It's useful for CI pipelines to ensure the
document is always in sync with the service model.

Exit codes:
  0  Document matches the model
  1  Document differs from the model
  2  Error during generation

Example:
  odata2openapi check                          # Basic validation
  odata2openapi check --breaking-only          # Only fail on breaking changes
  odata2openapi check --ci                     # CI mode with exit codes
  odata2openapi check --ignore '/Audit*/**'    # Ignore matching paths and schemas`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", true, "fail on any difference")
	checkCmd.Flags().BoolVar(&checkBreaking, "breaking-only", false, "fail only on breaking changes")
	checkCmd.Flags().StringSliceVar(&checkIgnore, "ignore", nil, "path and schema patterns to ignore in comparison")
	checkCmd.Flags().BoolVar(&checkCI, "ci", false, "CI mode: use exit codes for status")
}

// checkFail exits with code in CI mode and returns err otherwise.
func checkFail(code int, err error) error {
	if checkCI {
		printError("%v", err)
		os.Exit(code)
	}
	return err
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return checkFail(ExitCodeCheckError, err)
	}
	if err := cfg.Validate(); err != nil {
		return checkFail(ExitCodeCheckError, fmt.Errorf("invalid configuration: %w", err))
	}

	printVerbose("Check configuration:")
	printVerbose("  Strict mode: %t", checkStrict)
	printVerbose("  Breaking only: %t", checkBreaking)
	printVerbose("  CI mode: %t", checkCI)
	if len(checkIgnore) > 0 {
		printVerbose("  Ignored patterns: %s", strings.Join(checkIgnore, ", "))
	}
	printVerbose("  Model: %s", cfg.Model)
	printVerbose("  Document: %s", cfg.Output)

	if _, err := os.Stat(cfg.Output); os.IsNotExist(err) {
		printInfo("Run 'odata2openapi generate' first to create the document")
		return checkFail(ExitCodeDifference, fmt.Errorf("document not found: %s", cfg.Output))
	}

	existing, err := openapi.ReadFile(cfg.Output)
	if err != nil {
		return checkFail(ExitCodeCheckError, fmt.Errorf("failed to read existing document: %w", err))
	}

	generated, err := generateDocument(cfg)
	if err != nil {
		return checkFail(ExitCodeCheckError, err)
	}

	diffResult, err := openapi.NewDiffer().Diff(existing, generated)
	if err != nil {
		return checkFail(ExitCodeCheckError, fmt.Errorf("failed to compare documents: %w", err))
	}

	diffResult, err = applyIgnorePatterns(diffResult, checkIgnore)
	if err != nil {
		return checkFail(ExitCodeCheckError, err)
	}

	if diffResult.IsEmpty() {
		printInfo("Document is in sync with the model")
		if checkCI {
			os.Exit(ExitCodeMatch)
		}
		return nil
	}

	printInfo("Document differs from the model:\n")
	printInfo(openapi.FormatDiff(diffResult))

	if diffResult.HasBreakingChanges {
		printError("Breaking changes detected!")
	}
	printInfo("Run 'odata2openapi generate' to update the document")

	failing := checkStrict
	if checkBreaking {
		failing = diffResult.HasBreakingChanges
	}
	if failing {
		return checkFail(ExitCodeDifference, fmt.Errorf("document differs from the model"))
	}
	return nil
}

// applyIgnorePatterns drops changes whose path or schema name matches one of
// the doublestar patterns, then recomputes the breaking flag and summary.
func applyIgnorePatterns(result *openapi.DiffResult, patterns []string) (*openapi.DiffResult, error) {
	if len(patterns) == 0 {
		return result, nil
	}
	for _, pattern := range patterns {
		if !config.ValidPathPattern(pattern) {
			return nil, fmt.Errorf("invalid ignore pattern %q", pattern)
		}
	}

	filtered := &openapi.DiffResult{
		PathChanges:   make([]openapi.PathChange, 0),
		SchemaChanges: make([]openapi.SchemaChange, 0),
	}

	for _, change := range result.PathChanges {
		if !matchesAnyPattern(change.Path, patterns) {
			filtered.PathChanges = append(filtered.PathChanges, change)
		}
	}

	for _, change := range result.SchemaChanges {
		if !matchesAnyPattern(change.Name, patterns) {
			filtered.SchemaChanges = append(filtered.SchemaChanges, change)
		}
	}

	filtered.Refresh()
	return filtered, nil
}

// matchesAnyPattern reports whether s matches one of the patterns.
func matchesAnyPattern(s string, patterns []string) bool {
	for _, pattern := range patterns {
		if config.MatchPath(pattern, s) {
			return true
		}
	}
	return false
}
