// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package config provides configuration loading and validation for odata2openapi.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"
)

// Config is the contents of an odata2openapi.yaml file.
type Config struct {
	// Model is the model document to convert (YAML or JSON)
	Model string `mapstructure:"model" yaml:"model" json:"model"`

	// Output is where the OpenAPI document is written. Format is yaml or json;
	// when empty it follows the Output extension.
	Output string `mapstructure:"output" yaml:"output" json:"output"`
	Format string `mapstructure:"format" yaml:"format" json:"format"`

	OpenAPI    OpenAPIConfig    `mapstructure:"openapi" yaml:"openapi" json:"openapi"`
	Paths      PathsConfig      `mapstructure:"paths" yaml:"paths" json:"paths"`
	Conversion ConversionConfig `mapstructure:"conversion" yaml:"conversion" json:"conversion"`
	Watch      WatchConfig      `mapstructure:"watch" yaml:"watch" json:"watch"`
}

// OpenAPIConfig holds the document-level settings that do not come from the
// model: the OpenAPI version, info block, servers, extra tags and security.
type OpenAPIConfig struct {
	// Version is "3.0.3" or "3.1.0"
	Version  string         `mapstructure:"version" yaml:"version" json:"version"`
	Info     InfoConfig     `mapstructure:"info" yaml:"info" json:"info"`
	Servers  []ServerConfig `mapstructure:"servers" yaml:"servers" json:"servers"`
	Tags     []TagConfig    `mapstructure:"tags" yaml:"tags" json:"tags"`
	Security SecurityConfig `mapstructure:"security" yaml:"security" json:"security"`
}

// InfoConfig is copied into the document's info object.
type InfoConfig struct {
	Title          string        `mapstructure:"title" yaml:"title" json:"title"`
	Description    string        `mapstructure:"description" yaml:"description" json:"description"`
	Version        string        `mapstructure:"version" yaml:"version" json:"version"`
	TermsOfService string        `mapstructure:"termsOfService" yaml:"termsOfService" json:"termsOfService"`
	Contact        ContactConfig `mapstructure:"contact" yaml:"contact" json:"contact"`
	License        LicenseConfig `mapstructure:"license" yaml:"license" json:"license"`
}

type ContactConfig struct {
	Name  string `mapstructure:"name" yaml:"name" json:"name"`
	URL   string `mapstructure:"url" yaml:"url" json:"url"`
	Email string `mapstructure:"email" yaml:"email" json:"email"`
}

type LicenseConfig struct {
	Name string `mapstructure:"name" yaml:"name" json:"name"`
	URL  string `mapstructure:"url" yaml:"url" json:"url"`
}

// ServerConfig is one entry of the document's servers list.
type ServerConfig struct {
	URL         string `mapstructure:"url" yaml:"url" json:"url"`
	Description string `mapstructure:"description" yaml:"description" json:"description"`
}

// TagConfig describes a tag; entries with a generated tag's name add its
// description, others are appended.
type TagConfig struct {
	Name        string `mapstructure:"name" yaml:"name" json:"name"`
	Description string `mapstructure:"description" yaml:"description" json:"description"`
}

// SecurityConfig declares security schemes and the ones applied document-wide.
type SecurityConfig struct {
	Schemes map[string]SecuritySchemeConfig `mapstructure:"schemes" yaml:"schemes" json:"schemes"`

	// Default names schemes from Schemes required by every operation
	Default []string `mapstructure:"default" yaml:"default" json:"default"`
}

// SecuritySchemeConfig mirrors the OpenAPI security scheme object. Type is
// one of apiKey, http, oauth2 or openIdConnect; Name and In apply to apiKey,
// Scheme and BearerFormat to http.
type SecuritySchemeConfig struct {
	Type         string `mapstructure:"type" yaml:"type" json:"type"`
	Name         string `mapstructure:"name" yaml:"name" json:"name"`
	In           string `mapstructure:"in" yaml:"in" json:"in"`
	Scheme       string `mapstructure:"scheme" yaml:"scheme" json:"scheme"`
	BearerFormat string `mapstructure:"bearerFormat" yaml:"bearerFormat" json:"bearerFormat"`
	Description  string `mapstructure:"description" yaml:"description" json:"description"`
}

// PathsConfig filters generated path templates with doublestar patterns.
// Braces match literally, so "/Customers/{customer-id}/**" selects keyed paths.
type PathsConfig struct {
	// Include keeps only paths matching one of the patterns; empty keeps all
	Include []string `mapstructure:"include" yaml:"include" json:"include"`

	// Exclude drops paths matching any of the patterns
	Exclude []string `mapstructure:"exclude" yaml:"exclude" json:"exclude"`
}

// templateBraces escapes the braces of path template parameters such as
// {customer-id}, which doublestar would read as alternations.
var templateBraces = strings.NewReplacer("{", `\{`, "}", `\}`)

// PathPattern returns pattern with template braces escaped, so that
// "/Customers/{customer-id}/**" matches the generated templates literally.
func PathPattern(pattern string) string {
	return templateBraces.Replace(pattern)
}

// ValidPathPattern reports whether pattern is a usable path pattern.
func ValidPathPattern(pattern string) bool {
	return doublestar.ValidatePattern(PathPattern(pattern))
}

// MatchPath reports whether the path template or name matches pattern.
func MatchPath(pattern, name string) bool {
	ok, err := doublestar.Match(PathPattern(pattern), name)
	return err == nil && ok
}

// ConversionConfig contains the settings consumed while generating operations.
type ConversionConfig struct {
	// EnableOperationID emits operationId on every operation
	EnableOperationID bool `mapstructure:"enableOperationId" yaml:"enableOperationId" json:"enableOperationId"`

	// EnablePagination adds x-ms-pageable to collection responses
	EnablePagination bool `mapstructure:"enablePagination" yaml:"enablePagination" json:"enablePagination"`

	// UseSuccessStatusCodeRange uses 2XX instead of exact success codes
	UseSuccessStatusCodeRange bool `mapstructure:"useSuccessStatusCodeRange" yaml:"useSuccessStatusCodeRange" json:"useSuccessStatusCodeRange"`

	// ShowLinks adds response links to navigation property reads
	ShowLinks bool `mapstructure:"showLinks" yaml:"showLinks" json:"showLinks"`

	// EnableDerivedTypesReferencesForResponses references derived types with anyOf in responses
	EnableDerivedTypesReferencesForResponses bool `mapstructure:"enableDerivedTypesReferencesForResponses" yaml:"enableDerivedTypesReferencesForResponses" json:"enableDerivedTypesReferencesForResponses"`

	// EnableDerivedTypesReferencesForRequestBody references derived types with anyOf in request bodies
	EnableDerivedTypesReferencesForRequestBody bool `mapstructure:"enableDerivedTypesReferencesForRequestBody" yaml:"enableDerivedTypesReferencesForRequestBody" json:"enableDerivedTypesReferencesForRequestBody"`

	// ShowExternalDocs adds externalDocs from Core.Links annotations
	ShowExternalDocs bool `mapstructure:"showExternalDocs" yaml:"showExternalDocs" json:"showExternalDocs"`

	// CustomHTTPMethodLinkRelMapping maps link relation keys (list, get, create,
	// update, delete, action, function) to the relation used for externalDocs
	CustomHTTPMethodLinkRelMapping map[string]string `mapstructure:"customHttpMethodLinkRelMapping" yaml:"customHttpMethodLinkRelMapping" json:"customHttpMethodLinkRelMapping"`

	// PageableOperationName is the operationName of x-ms-pageable
	PageableOperationName string `mapstructure:"pageableOperationName" yaml:"pageableOperationName" json:"pageableOperationName"`

	// EnableDeprecationInformation reads Core.Revisions into x-ms-deprecation
	EnableDeprecationInformation bool `mapstructure:"enableDeprecationInformation" yaml:"enableDeprecationInformation" json:"enableDeprecationInformation"`

	// KeyAsSegment renders keys as /Set/{key} instead of /Set({key})
	KeyAsSegment bool `mapstructure:"keyAsSegment" yaml:"keyAsSegment" json:"keyAsSegment"`

	// PrefixEntityTypeNameBeforeKey names key parameters <type>-<key>
	PrefixEntityTypeNameBeforeKey bool `mapstructure:"prefixEntityTypeNameBeforeKey" yaml:"prefixEntityTypeNameBeforeKey" json:"prefixEntityTypeNameBeforeKey"`

	// EnableDollarCountPath generates /$count paths
	EnableDollarCountPath bool `mapstructure:"enableDollarCountPath" yaml:"enableDollarCountPath" json:"enableDollarCountPath"`

	// EnableNavigationPropertyPath generates navigation property paths
	EnableNavigationPropertyPath bool `mapstructure:"enableNavigationPropertyPath" yaml:"enableNavigationPropertyPath" json:"enableNavigationPropertyPath"`

	// EnableOperationPath generates bound function and action paths
	EnableOperationPath bool `mapstructure:"enableOperationPath" yaml:"enableOperationPath" json:"enableOperationPath"`

	// EnableOperationImportPath generates function and action import paths
	EnableOperationImportPath bool `mapstructure:"enableOperationImportPath" yaml:"enableOperationImportPath" json:"enableOperationImportPath"`

	// EnableTypeCastPath generates derived type cast paths
	EnableTypeCastPath bool `mapstructure:"enableTypeCastPath" yaml:"enableTypeCastPath" json:"enableTypeCastPath"`

	// EnableCount advertises the $count query option on collection reads
	EnableCount bool `mapstructure:"enableCount" yaml:"enableCount" json:"enableCount"`

	// TopExample is the example value of the $top parameter
	TopExample int `mapstructure:"topExample" yaml:"topExample" json:"topExample"`
}

// LinkRel returns the link relation configured for key, or "".
func (c ConversionConfig) LinkRel(key string) string {
	if c.CustomHTTPMethodLinkRelMapping == nil {
		return ""
	}
	return c.CustomHTTPMethodLinkRelMapping[strings.ToLower(key)]
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled" json:"enabled"`

	// Debounce is the quiet period in milliseconds before regenerating
	Debounce int `mapstructure:"debounce" yaml:"debounce" json:"debounce"`

	// OnChange is a shell command run after each regeneration
	OnChange string `mapstructure:"onChange" yaml:"onChange" json:"onChange"`
}

// configFileNames are tried in order in the working directory.
var configFileNames = []string{
	"odata2openapi.yaml",
	"odata2openapi.json",
	".odata2openapi.yaml",
	".odata2openapi.json",
}

// envPrefix prefixes environment overrides, e.g. ODATA2OPENAPI_OUTPUT.
const envPrefix = "ODATA2OPENAPI"

var (
	supportedFormats         = []string{"yaml", "json"}
	supportedOpenAPIVersions = []string{"3.0.3", "3.1.0"}

	// linkRelKeys are the keys of conversion.customHttpMethodLinkRelMapping.
	linkRelKeys = []string{"list", "get", "create", "update", "delete", "action", "function"}
)

// ValidationError is a problem with one configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found by Validate.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	switch len(e) {
	case 0:
		return "no validation errors"
	case 1:
		return e[0].Error()
	}
	lines := make([]string, 0, len(e)+1)
	lines = append(lines, "config validation errors:")
	for _, err := range e {
		lines = append(lines, fmt.Sprintf("  - %s: %s", err.Field, err.Message))
	}
	return strings.Join(lines, "\n") + "\n"
}

// DefaultConversion returns the conversion settings used when none are configured.
func DefaultConversion() ConversionConfig {
	return ConversionConfig{
		EnableOperationID:             true,
		EnablePagination:              false,
		UseSuccessStatusCodeRange:     false,
		ShowLinks:                     false,
		ShowExternalDocs:              true,
		PageableOperationName:         "listMore",
		EnableDeprecationInformation:  true,
		KeyAsSegment:                  true,
		PrefixEntityTypeNameBeforeKey: true,
		EnableDollarCountPath:         true,
		EnableNavigationPropertyPath:  true,
		EnableOperationPath:           true,
		EnableOperationImportPath:     true,
		EnableTypeCastPath:            true,
		EnableCount:                   true,
		TopExample:                    50,
		CustomHTTPMethodLinkRelMapping: map[string]string{
			"list":     "https://graph.microsoft.com/rels/docs/list",
			"get":      "https://graph.microsoft.com/rels/docs/get",
			"create":   "https://graph.microsoft.com/rels/docs/create",
			"update":   "https://graph.microsoft.com/rels/docs/update",
			"delete":   "https://graph.microsoft.com/rels/docs/delete",
			"action":   "https://graph.microsoft.com/rels/docs/action",
			"function": "https://graph.microsoft.com/rels/docs/function",
		},
	}
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Model:  "model.yaml",
		Output: "openapi.yaml",
		Format: "yaml",
		OpenAPI: OpenAPIConfig{
			Version: "3.0.3",
			Info: InfoConfig{
				Title:   "OData Service",
				Version: "1.0.0",
			},
		},
		Conversion: DefaultConversion(),
		Watch: WatchConfig{
			Enabled:  false,
			Debounce: 500,
		},
	}
}

// Load reads the configuration through viper. With an empty configPath the
// first of configFileNames present in the working directory is used, and
// without one the defaults apply. ODATA2OPENAPI_* environment variables
// override file values.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		configPath = findConfigFile(".")
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// LoadFromPath loads the config file found in dir, or the defaults.
func LoadFromPath(dir string) (*Config, error) {
	if path := findConfigFile(dir); path != "" {
		return Load(path)
	}
	return Default(), nil
}

// ConfigFilePath returns the config file of the working directory, or "".
func ConfigFilePath() string {
	return findConfigFile(".")
}

func findConfigFile(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if stat, err := os.Stat(path); err == nil && !stat.IsDir() {
			return path
		}
	}
	return ""
}

// setDefaults sets the default values for viper.
func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("model", d.Model)
	v.SetDefault("output", d.Output)
	v.SetDefault("format", d.Format)
	v.SetDefault("openapi.version", d.OpenAPI.Version)
	v.SetDefault("openapi.info.title", d.OpenAPI.Info.Title)
	v.SetDefault("openapi.info.version", d.OpenAPI.Info.Version)
	v.SetDefault("paths.include", []string{})
	v.SetDefault("paths.exclude", []string{})

	c := d.Conversion
	v.SetDefault("conversion.enableOperationId", c.EnableOperationID)
	v.SetDefault("conversion.enablePagination", c.EnablePagination)
	v.SetDefault("conversion.useSuccessStatusCodeRange", c.UseSuccessStatusCodeRange)
	v.SetDefault("conversion.showLinks", c.ShowLinks)
	v.SetDefault("conversion.enableDerivedTypesReferencesForResponses", c.EnableDerivedTypesReferencesForResponses)
	v.SetDefault("conversion.enableDerivedTypesReferencesForRequestBody", c.EnableDerivedTypesReferencesForRequestBody)
	v.SetDefault("conversion.showExternalDocs", c.ShowExternalDocs)
	v.SetDefault("conversion.customHttpMethodLinkRelMapping", c.CustomHTTPMethodLinkRelMapping)
	v.SetDefault("conversion.pageableOperationName", c.PageableOperationName)
	v.SetDefault("conversion.enableDeprecationInformation", c.EnableDeprecationInformation)
	v.SetDefault("conversion.keyAsSegment", c.KeyAsSegment)
	v.SetDefault("conversion.prefixEntityTypeNameBeforeKey", c.PrefixEntityTypeNameBeforeKey)
	v.SetDefault("conversion.enableDollarCountPath", c.EnableDollarCountPath)
	v.SetDefault("conversion.enableNavigationPropertyPath", c.EnableNavigationPropertyPath)
	v.SetDefault("conversion.enableOperationPath", c.EnableOperationPath)
	v.SetDefault("conversion.enableOperationImportPath", c.EnableOperationImportPath)
	v.SetDefault("conversion.enableTypeCastPath", c.EnableTypeCastPath)
	v.SetDefault("conversion.enableCount", c.EnableCount)
	v.SetDefault("conversion.topExample", c.TopExample)

	v.SetDefault("watch.enabled", d.Watch.Enabled)
	v.SetDefault("watch.debounce", d.Watch.Debounce)
}

// Validate reports every invalid field as ValidationErrors.
func (c *Config) Validate() error {
	var errs ValidationErrors
	add := func(field, format string, args ...interface{}) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.Model == "" {
		add("model", "model document path is required")
	}
	if c.Format != "" && !slices.Contains(supportedFormats, c.Format) {
		add("format", "unsupported format %q, must be one of: %s", c.Format, strings.Join(supportedFormats, ", "))
	}
	if c.OpenAPI.Version != "" && !slices.Contains(supportedOpenAPIVersions, c.OpenAPI.Version) {
		add("openapi.version", "unsupported OpenAPI version %q, must be one of: %s",
			c.OpenAPI.Version, strings.Join(supportedOpenAPIVersions, ", "))
	}
	for _, name := range c.OpenAPI.Security.Default {
		if _, ok := c.OpenAPI.Security.Schemes[name]; !ok {
			add("openapi.security.default", "unknown security scheme %q", name)
		}
	}
	for _, pattern := range slices.Concat(c.Paths.Include, c.Paths.Exclude) {
		if !ValidPathPattern(pattern) {
			add("paths", "invalid pattern %q", pattern)
		}
	}
	for _, key := range slices.Sorted(maps.Keys(c.Conversion.CustomHTTPMethodLinkRelMapping)) {
		if !slices.Contains(linkRelKeys, strings.ToLower(key)) {
			add("conversion.customHttpMethodLinkRelMapping", "unknown link relation key %q, must be one of: %s",
				key, strings.Join(linkRelKeys, ", "))
		}
	}
	if c.Conversion.TopExample < 0 {
		add("conversion.topExample", "topExample must be non-negative")
	}
	if c.Watch.Debounce < 0 {
		add("watch.debounce", "debounce must be non-negative")
	}
	if c.OpenAPI.Info.Title == "" {
		add("openapi.info.title", "title is required")
	}
	if c.OpenAPI.Info.Version == "" {
		add("openapi.info.version", "version is required")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
