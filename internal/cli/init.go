// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/api2spec/odata2openapi/internal/config"
	"github.com/api2spec/odata2openapi/internal/edm"
)

var (
	initForce       bool
	initInteractive bool
	initTitle       string
	initVersion     string
	initDescription string
)

const initConfigFile = "odata2openapi.yaml"

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new odata2openapi configuration file",
	Long: `Initialize a new odata2openapi configuration file in the current directory.

This command creates an odata2openapi.yaml file with sensible defaults
that you can customize for your service.

Features:
  - Finds the model document in the project
  - Infers the API title and description from the model's container

Example:
  odata2openapi init                         # Detect the model and create config
  odata2openapi init --model svc/model.yaml  # Use a specific model document
  odata2openapi init --force                 # Overwrite existing config
  odata2openapi init --interactive           # Interactive mode with prompts
  odata2openapi init --title "My API"        # Set custom API title`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "interactive mode with prompts")
	initCmd.Flags().StringVar(&initTitle, "title", "", "API title for OpenAPI info")
	initCmd.Flags().StringVar(&initVersion, "version", "", "API version for OpenAPI info")
	initCmd.Flags().StringVar(&initDescription, "description", "", "API description for OpenAPI info")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := initConfigFile
	if cfgFile != "" {
		configFile = cfgFile
	}

	if _, err := os.Stat(configFile); err == nil && !initForce {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", configFile)
	}

	projectRoot, err := filepath.Abs(".")
	if err != nil {
		return fmt.Errorf("failed to determine project root: %w", err)
	}

	cfg := config.Default()

	model := modelPath
	if model == "" {
		printVerbose("Looking for a model document...")
		model = detectModelFile(projectRoot)
		if model != "" {
			printInfo("Detected model: %s", model)
		} else {
			printInfo("No model document found. Using %s.", cfg.Model)
		}
	}
	if model != "" {
		cfg.Model = model
	}
	if output != "" {
		cfg.Output = output
	}
	if format != "" {
		cfg.Format = format
	}

	info := detectProjectInfo(filepath.Join(projectRoot, cfg.Model))

	if initTitle != "" {
		cfg.OpenAPI.Info.Title = initTitle
	} else if info.Title != "" {
		cfg.OpenAPI.Info.Title = info.Title
	}

	if initVersion != "" {
		cfg.OpenAPI.Info.Version = initVersion
	}

	if initDescription != "" {
		cfg.OpenAPI.Info.Description = initDescription
	} else if info.Description != "" {
		cfg.OpenAPI.Info.Description = info.Description
	}

	if initInteractive && isTerminal() {
		cfg, err = interactiveInit(cfg)
		if err != nil {
			return fmt.Errorf("interactive init failed: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	data, err := buildConfigYAML(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFile, []byte(data), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	printInfo("Created %s", configFile)
	printVerbose("Model: %s", cfg.Model)
	printVerbose("Output: %s", cfg.Output)

	return nil
}

// modelCandidates are checked in order before falling back to a search.
var modelCandidates = []string{"model.yaml", "model.yml", "model.json"}

// modelPattern matches model documents anywhere below the project root.
const modelPattern = "**/*.{model,odata}.{yaml,yml,json}"

// detectModelFile returns the model document path relative to projectRoot,
// or "" when there is none.
func detectModelFile(projectRoot string) string {
	for _, name := range modelCandidates {
		if stat, err := os.Stat(filepath.Join(projectRoot, name)); err == nil && !stat.IsDir() {
			return name
		}
	}

	matches, err := doublestar.Glob(os.DirFS(projectRoot), modelPattern)
	if err != nil || len(matches) == 0 {
		return ""
	}
	// Glob walks in lexical order; the shallowest match wins.
	best := matches[0]
	for _, m := range matches[1:] {
		if strings.Count(m, "/") < strings.Count(best, "/") {
			best = m
		}
	}
	return filepath.FromSlash(best)
}

// projectInfo holds information detected from the model document.
type projectInfo struct {
	Title       string
	Namespace   string
	Description string
}

// detectProjectInfo reads the model document and derives the API info from
// its container. An unreadable model yields an empty result.
func detectProjectInfo(modelFile string) projectInfo {
	info := projectInfo{}

	schema, _, err := edm.LoadFile(modelFile)
	if err != nil {
		printVerbose("Model not readable: %v", err)
		return info
	}

	info.Namespace = schema.Namespace()
	if name := schema.ContainerName(); name != "" {
		info.Title = titleFromIdentifier(name)
	}
	info.Description = fmt.Sprintf("OData service %s with %d entity sets and %d singletons.",
		schema.Namespace(), len(schema.EntitySets()), len(schema.Singletons()))

	return info
}

// titleFromIdentifier splits camel case, kebab case and snake case names into
// title-cased words, e.g. "TripPinService" becomes "Trip Pin Service".
func titleFromIdentifier(name string) string {
	var words []string
	var current []rune
	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '-' || r == '_' || r == '.' || unicode.IsSpace(r):
			if len(current) > 0 {
				words = append(words, string(current))
				current = nil
			}
			continue
		case unicode.IsUpper(r) && len(current) > 0:
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				words = append(words, string(current))
				current = nil
			}
		}
		current = append(current, r)
	}
	if len(current) > 0 {
		words = append(words, string(current))
	}

	caser := cases.Title(language.English, cases.NoLower)
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}

// isTerminal checks if stdin is a terminal.
func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// interactiveInit prompts the user for configuration options.
func interactiveInit(cfg *config.Config) (*config.Config, error) {
	reader := bufio.NewReader(os.Stdin)

	prompt := func(label string, value *string) {
		fmt.Printf("%s [%s]: ", label, *value)
		answer, _ := reader.ReadString('\n')
		if answer = strings.TrimSpace(answer); answer != "" {
			*value = answer
		}
	}

	prompt("API Title", &cfg.OpenAPI.Info.Title)
	prompt("API Version", &cfg.OpenAPI.Info.Version)
	prompt("API Description", &cfg.OpenAPI.Info.Description)
	prompt("Model document", &cfg.Model)
	prompt("Output file", &cfg.Output)
	prompt("Output format (yaml/json)", &cfg.Format)

	return cfg, nil
}

// buildConfigYAML builds a YAML config with a header comment.
func buildConfigYAML(cfg *config.Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}

	header := `# odata2openapi configuration file
# https://github.com/api2spec/odata2openapi

`
	return header + string(data), nil
}
