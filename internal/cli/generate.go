// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/api2spec/odata2openapi/internal/config"
	"github.com/api2spec/odata2openapi/internal/edm"
	"github.com/api2spec/odata2openapi/internal/openapi"
	"github.com/api2spec/odata2openapi/pkg/types"
)

var (
	generateMerge   bool
	generateDryRun  bool
	generateInclude []string
	generateExclude []string
)

var generateCmd = &cobra.Command{
	Use:   "generate [model]",
	Short: "Generate an OpenAPI document from an OData model",
	Long: `Generate an OpenAPI document from an OData service model.

The model document lists the schema (entity types, complex types, functions
and actions), the entity container and its vocabulary annotations. Every
path the container exposes is converted into the operations its capability
annotations allow.

Example:
  odata2openapi generate                          # Convert model.yaml
  odata2openapi generate service.yaml             # Convert a specific model
  odata2openapi generate --merge                  # Keep hand-written docs in the output
  odata2openapi generate --exclude '/Audit*/**'   # Skip matching paths
  odata2openapi generate --dry-run                # Preview without writing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateMerge, "merge", false, "merge with existing output file")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "print the document instead of writing it")
	generateCmd.Flags().StringSliceVarP(&generateInclude, "include", "i", nil, "path patterns to include")
	generateCmd.Flags().StringSliceVarP(&generateExclude, "exclude", "e", nil, "path patterns to exclude")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	if len(generateInclude) > 0 {
		cfg.Paths.Include = generateInclude
	}
	if len(generateExclude) > 0 {
		cfg.Paths.Exclude = generateExclude
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	printVerbose("Configuration:")
	printVerbose("  Model: %s", cfg.Model)
	printVerbose("  Output: %s", cfg.Output)
	printVerbose("  Format: %s", cfg.Format)
	if len(cfg.Paths.Include) > 0 {
		printVerbose("  Include: %s", strings.Join(cfg.Paths.Include, ", "))
	}
	if len(cfg.Paths.Exclude) > 0 {
		printVerbose("  Exclude: %s", strings.Join(cfg.Paths.Exclude, ", "))
	}

	doc, err := generateDocument(cfg)
	if err != nil {
		return err
	}

	if generateMerge {
		doc, err = mergeWithExisting(cfg.Output, doc)
		if err != nil {
			return err
		}
	}

	writer := openapi.NewWriter()
	if generateDryRun {
		return writer.Write(doc, cmd.OutOrStdout(), openapi.FormatFor(cfg.Output, cfg.Format))
	}

	if err := writer.WriteFile(doc, cfg.Output, cfg.Format); err != nil {
		return err
	}
	printInfo("Generated %s (%d paths)", cfg.Output, len(doc.Paths))
	return nil
}

// loadConfig loads the configuration and applies the global flag overrides.
// A positional argument names the model document.
func loadConfig(args []string) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if output != "" {
		cfg.Output = output
	}
	if format != "" {
		cfg.Format = format
	}
	if modelPath != "" {
		cfg.Model = modelPath
	}
	if len(args) > 0 {
		cfg.Model = args[0]
	}
	return cfg, nil
}

// generateDocument loads the model named by cfg and converts it.
func generateDocument(cfg *config.Config) (*types.OpenAPI, error) {
	model, store, err := edm.LoadFile(cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}

	doc, err := openapi.NewBuilder(cfg).WithLogger(logger).Build(model, store)
	if err != nil {
		return nil, fmt.Errorf("failed to build OpenAPI document: %w", err)
	}

	printVerbose("Built %d paths from %s", len(doc.Paths), cfg.Model)
	return doc, nil
}

// mergeWithExisting merges doc into the document at path, if there is one.
func mergeWithExisting(path string, doc *types.OpenAPI) (*types.OpenAPI, error) {
	existing, err := openapi.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			printVerbose("No existing document at %s, nothing to merge", path)
			return doc, nil
		}
		return nil, fmt.Errorf("failed to read existing document: %w", err)
	}

	merged, err := openapi.MergeDefault(existing, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to merge documents: %w", err)
	}
	return merged, nil
}
