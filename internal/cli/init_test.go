// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/odata2openapi/internal/config"
)

func TestInit(t *testing.T) {
	dir := setupProject(t)

	_, err := run(t, "init")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, "odata2openapi.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "model.yaml", cfg.Model)
	assert.Equal(t, "Trip Pin Service", cfg.OpenAPI.Info.Title)
	assert.Contains(t, cfg.OpenAPI.Info.Description, "TripPin")

	_, err = run(t, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = run(t, "init", "--force", "--title", "People API", "--version", "2.0.0")
	require.NoError(t, err)
	cfg, err = config.Load(filepath.Join(dir, "odata2openapi.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "People API", cfg.OpenAPI.Info.Title)
	assert.Equal(t, "2.0.0", cfg.OpenAPI.Info.Version)
}

func TestDetectModelFile(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		expected string
	}{
		{"default name", []string{"model.yaml", "svc/a.model.yaml"}, "model.yaml"},
		{"json", []string{"model.json"}, "model.json"},
		{"search", []string{"api/deep/b.odata.json", "api/trip.model.yaml"}, filepath.Join("api", "trip.model.yaml")},
		{"none", []string{"README.md", "go.mod"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				path := filepath.Join(dir, f)
				require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
				require.NoError(t, os.WriteFile(path, nil, 0o644))
			}
			assert.Equal(t, tt.expected, detectModelFile(dir))
		})
	}
}

func TestDetectProjectInfo(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cliModel), 0o644))

	info := detectProjectInfo(path)
	assert.Equal(t, "Trip Pin Service", info.Title)
	assert.Equal(t, "TripPin", info.Namespace)
	assert.Equal(t, "OData service TripPin with 2 entity sets and 1 singletons.", info.Description)

	assert.Equal(t, projectInfo{}, detectProjectInfo(filepath.Join(dir, "missing.yaml")))
}

func TestTitleFromIdentifier(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"TripPinService", "Trip Pin Service"},
		{"Container", "Container"},
		{"HTTPServer", "HTTP Server"},
		{"my-awesome_api", "My Awesome Api"},
		{"Demo.Service2Go", "Demo Service2 Go"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, titleFromIdentifier(tt.in))
		})
	}
}

func TestBuildConfigYAML(t *testing.T) {
	cfg := config.Default()
	cfg.Model = "svc/model.yaml"

	data, err := buildConfigYAML(cfg)
	require.NoError(t, err)

	assert.Contains(t, data, "# odata2openapi configuration file")
	assert.Contains(t, data, "model: svc/model.yaml")
	assert.Contains(t, data, "output: openapi.yaml")
	assert.Contains(t, data, "keyAsSegment:")
}
