// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/api2spec/odata2openapi/internal/openapi"
	"github.com/api2spec/odata2openapi/pkg/types"
)

var (
	diffFailOnBreaking bool
	diffIgnore         []string
)

var diffCmd = &cobra.Command{
	Use:   "diff [file1] [file2]",
	Short: "Compare two OpenAPI documents",
	Long: `Compare two OpenAPI documents and show the differences.

If only one file is provided, it is compared against the document generated
from the configured model.

If no files are provided, the output file is compared against what would be
generated from the configured model.

Example:
  odata2openapi diff                              # Compare output vs generated
  odata2openapi diff openapi.yaml                 # Compare file vs generated
  odata2openapi diff old.yaml new.yaml            # Compare two files
  odata2openapi diff --fail-on-breaking a.yaml b.yaml`,
	Args: cobra.MaximumNArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&diffFailOnBreaking, "fail-on-breaking", false, "return an error when breaking changes are found")
	diffCmd.Flags().StringSliceVar(&diffIgnore, "ignore", nil, "path and schema patterns to ignore in comparison")
}

func runDiff(cmd *cobra.Command, args []string) error {
	var before, after *types.OpenAPI
	var err error

	switch len(args) {
	case 2:
		printVerbose("Comparing %s against %s", args[0], args[1])
		if before, err = openapi.ReadFile(args[0]); err != nil {
			return err
		}
		if after, err = openapi.ReadFile(args[1]); err != nil {
			return err
		}
	default:
		cfg, err := loadConfig(nil)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		file := cfg.Output
		if len(args) == 1 {
			file = args[0]
		}
		printVerbose("Comparing %s against generated", file)
		if before, err = openapi.ReadFile(file); err != nil {
			return err
		}
		if after, err = generateDocument(cfg); err != nil {
			return err
		}
	}

	result, err := openapi.NewDiffer().Diff(before, after)
	if err != nil {
		return fmt.Errorf("failed to compare documents: %w", err)
	}
	if result, err = applyIgnorePatterns(result, diffIgnore); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), openapi.FormatDiff(result))

	if diffFailOnBreaking && result.HasBreakingChanges {
		return fmt.Errorf("breaking changes detected")
	}
	return nil
}
