// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/api2spec/odata2openapi/internal/openapi"
	"github.com/api2spec/odata2openapi/pkg/types"
)

var printCmd = &cobra.Command{
	Use:   "print [file]",
	Short: "Print the OpenAPI document to stdout",
	Long: `Print the OpenAPI document to standard output.

If a file is provided, that document is re-encoded in the requested format.
Otherwise the document is generated from the configured model.

This is useful for piping the output to other tools or for quick inspection.

Example:
  odata2openapi print                      # Generate and print
  odata2openapi print openapi.yaml         # Print existing file
  odata2openapi print -f json              # Print in JSON format
  odata2openapi print -f json | jq '.paths'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrint,
}

func runPrint(cmd *cobra.Command, args []string) error {
	outputFormat := format
	if outputFormat == "" {
		outputFormat = openapi.FormatYAML
	}

	printVerbose("Print configuration:")
	printVerbose("  Format: %s", outputFormat)

	var doc *types.OpenAPI
	if len(args) > 0 {
		var err error
		doc, err = openapi.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
	} else {
		cfg, err := loadConfig(nil)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		if doc, err = generateDocument(cfg); err != nil {
			return err
		}
	}

	return openapi.NewWriter().Write(doc, cmd.OutOrStdout(), outputFormat)
}
