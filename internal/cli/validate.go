// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/api2spec/odata2openapi/internal/openapi"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate an OpenAPI document",
	Long: `Validate an OpenAPI document against the OpenAPI 3 rules.

If a file is provided, that file is validated. Otherwise the document is
generated from the configured model and validated without being written.

Example:
  odata2openapi validate                  # Validate the generated document
  odata2openapi validate openapi.yaml     # Validate an existing file`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if len(args) == 1 {
		if err := openapi.ValidateFile(ctx, args[0]); err != nil {
			return err
		}
		printInfo("%s is valid", args[0])
		return nil
	}

	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	doc, err := generateDocument(cfg)
	if err != nil {
		return err
	}
	if err := openapi.Validate(ctx, doc); err != nil {
		return err
	}
	printInfo("Generated document for %s is valid", cfg.Model)
	return nil
}
