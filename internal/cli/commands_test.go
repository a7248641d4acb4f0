// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/odata2openapi/internal/openapi"
)

const cliModel = `
namespace: TripPin
container: TripPinService
entityTypes:
  - name: Person
    key: [UserName]
    properties:
      - {name: UserName, type: Edm.String}
      - {name: FirstName, type: Edm.String}
    navigationProperties:
      - {name: Trips, type: Collection(Trip)}
  - name: Trip
    key: [TripId]
    properties:
      - {name: TripId, type: Edm.Int32}
entitySets:
  - {name: People, type: Person}
  - {name: Trips, type: Trip}
singletons:
  - {name: Me, type: Person}
`

// resetFlags restores every command flag variable to its default. Output
// printed with printInfo is silenced.
func resetFlags() {
	cfgFile, output, format, modelPath = "", "", "", ""
	verbose, quiet = false, true

	generateMerge, generateDryRun = false, false
	generateInclude, generateExclude = nil, nil

	checkStrict, checkBreaking, checkCI = true, false, false
	checkIgnore = nil

	diffFailOnBreaking = false
	diffIgnore = nil

	initForce, initInteractive = false, false
	initTitle, initVersion, initDescription = "", "", ""

	watchDebounce, watchOnChange = 0, ""
}

// setupProject writes the model into a fresh working directory.
func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.yaml"), []byte(cliModel), 0o644))
	t.Chdir(dir)
	resetFlags()
	t.Cleanup(resetFlags)
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	return executeCommand(rootCmd, args...)
}

func TestGenerate(t *testing.T) {
	dir := setupProject(t)

	_, err := run(t, "generate")
	require.NoError(t, err)

	doc, err := openapi.ReadFile(filepath.Join(dir, "openapi.yaml"))
	require.NoError(t, err)
	assert.Contains(t, doc.Paths, "/$metadata")
	assert.Contains(t, doc.Paths, "/People")
	assert.Contains(t, doc.Paths, "/Me")
	assert.NotNil(t, doc.Paths["/People"].Post)
}

func TestGenerate_Overrides(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		file  string
		check func(t *testing.T, path string)
	}{
		{
			name: "json output",
			args: []string{"generate", "-o", "out/api.json"},
			file: "out/api.json",
			check: func(t *testing.T, path string) {
				data, err := os.ReadFile(path)
				require.NoError(t, err)
				assert.Contains(t, string(data), `"openapi": "3.0.3"`)
			},
		},
		{
			name: "model argument",
			args: []string{"generate", "service.yaml"},
			file: "openapi.yaml",
		},
		{
			name: "exclude",
			args: []string{"generate", "--exclude", "/Me"},
			file: "openapi.yaml",
			check: func(t *testing.T, path string) {
				doc, err := openapi.ReadFile(path)
				require.NoError(t, err)
				assert.NotContains(t, doc.Paths, "/Me")
				assert.Contains(t, doc.Paths, "/People")
			},
		},
		{
			name: "include",
			args: []string{"generate", "--include", "/People*/**", "--include", "/People"},
			file: "openapi.yaml",
			check: func(t *testing.T, path string) {
				doc, err := openapi.ReadFile(path)
				require.NoError(t, err)
				assert.Contains(t, doc.Paths, "/People")
				assert.NotContains(t, doc.Paths, "/Trips")
				assert.NotContains(t, doc.Paths, "/$metadata")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := setupProject(t)
			require.NoError(t, os.WriteFile(filepath.Join(dir, "service.yaml"), []byte(cliModel), 0o644))

			_, err := run(t, tt.args...)
			require.NoError(t, err)

			path := filepath.Join(dir, tt.file)
			assert.FileExists(t, path)
			if tt.check != nil {
				tt.check(t, path)
			}
		})
	}
}

func TestGenerate_DryRun(t *testing.T) {
	dir := setupProject(t)

	out, err := run(t, "generate", "--dry-run", "-f", "json")
	require.NoError(t, err)

	assert.Contains(t, out, `"openapi": "3.0.3"`)
	assert.Contains(t, out, `"/People"`)
	assert.NoFileExists(t, filepath.Join(dir, "openapi.yaml"))
}

func TestGenerate_Merge(t *testing.T) {
	dir := setupProject(t)
	_, err := run(t, "generate")
	require.NoError(t, err)

	path := filepath.Join(dir, "openapi.yaml")
	existing, err := openapi.ReadFile(path)
	require.NoError(t, err)
	existing.Info.Title = "Hand Written"
	existing.Paths["/People"].Get.Description = "Lists everybody."
	require.NoError(t, openapi.NewWriter().WriteFile(existing, path, ""))

	_, err = run(t, "generate", "--merge")
	require.NoError(t, err)

	merged, err := openapi.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Hand Written", merged.Info.Title)
	assert.Equal(t, "Lists everybody.", merged.Paths["/People"].Get.Description)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing model", []string{"generate", "missing.yaml"}, "failed to load model"},
		{"bad format", []string{"generate", "-f", "xml"}, "invalid configuration"},
		{"bad pattern", []string{"generate", "--exclude", "/People["}, "invalid configuration"},
		{"too many args", []string{"generate", "a.yaml", "b.yaml"}, "accepts at most 1 arg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupProject(t)
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate(t *testing.T) {
	dir := setupProject(t)

	_, err := run(t, "validate")
	require.NoError(t, err)

	_, err = run(t, "generate")
	require.NoError(t, err)
	_, err = run(t, "validate", "openapi.yaml")
	require.NoError(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte(`openapi: 3.0.3
info:
  title: Broken
  version: "1"
paths:
  /x:
    get: {}
`), 0o644))
	_, err = run(t, "validate", invalid)
	require.Error(t, err)
	assert.ErrorIs(t, err, openapi.ErrInvalidDocument)
}

func TestCheck(t *testing.T) {
	dir := setupProject(t)
	path := filepath.Join(dir, "openapi.yaml")

	_, err := run(t, "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document not found")

	_, err = run(t, "generate")
	require.NoError(t, err)
	_, err = run(t, "check")
	require.NoError(t, err)

	doc, err := openapi.ReadFile(path)
	require.NoError(t, err)
	delete(doc.Paths, "/Me")
	require.NoError(t, openapi.NewWriter().WriteFile(doc, path, ""))

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"strict", []string{"check"}, true},
		{"not strict", []string{"check", "--strict=false"}, false},
		{"additions are not breaking", []string{"check", "--breaking-only"}, false},
		{"ignored", []string{"check", "--ignore", "/Me"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "document differs")
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestDiff(t *testing.T) {
	dir := setupProject(t)
	_, err := run(t, "generate")
	require.NoError(t, err)

	before := filepath.Join(dir, "openapi.yaml")
	after := filepath.Join(dir, "after.yaml")
	doc, err := openapi.ReadFile(before)
	require.NoError(t, err)
	item := doc.Paths["/People"]
	item.Post = nil
	doc.Paths["/People"] = item
	require.NoError(t, openapi.NewWriter().WriteFile(doc, after, ""))

	t.Run("against generated", func(t *testing.T) {
		out, err := run(t, "diff")
		require.NoError(t, err)
		assert.Contains(t, out, "No differences found.")
	})

	t.Run("two files", func(t *testing.T) {
		out, err := run(t, "diff", before, after)
		require.NoError(t, err)
		assert.Contains(t, out, "- POST /People (breaking)")
	})

	t.Run("fail on breaking", func(t *testing.T) {
		_, err := run(t, "diff", "--fail-on-breaking", before, after)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "breaking changes detected")
	})

	t.Run("ignored", func(t *testing.T) {
		_, err := run(t, "diff", "--fail-on-breaking", "--ignore", "/People", before, after)
		require.NoError(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, "diff", "nonexistent1.yaml", "nonexistent2.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read file")
	})
}

func TestPrint(t *testing.T) {
	dir := setupProject(t)
	specFile := filepath.Join(dir, "spec.yaml")
	require.NoError(t, os.WriteFile(specFile, []byte(`openapi: "3.0.3"
info:
  title: Test API
  version: "1.0.0"
paths: {}
`), 0o644))

	out, err := run(t, "print", "-f", "json", specFile)
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "Test API"`)

	out, err = run(t, "print")
	require.NoError(t, err)
	assert.Contains(t, out, "openapi: 3.0.3")
	assert.Contains(t, out, "/People:")
}

func TestApplyIgnorePatterns(t *testing.T) {
	result := &openapi.DiffResult{
		PathChanges: []openapi.PathChange{
			{Type: openapi.DiffTypeAdded, Path: "/People", Method: "GET"},
			{Type: openapi.DiffTypeRemoved, Path: "/People/{UserName}/Trips", Method: "POST", Breaking: true},
		},
		SchemaChanges: []openapi.SchemaChange{
			{Type: openapi.DiffTypeRemoved, Name: "TripPin.Trip"},
		},
		HasBreakingChanges: true,
	}

	tests := []struct {
		name             string
		patterns         []string
		expectedPaths    int
		expectedSchemas  int
		expectedBreaking bool
	}{
		{"no patterns", nil, 2, 1, true},
		{"exact path", []string{"/People"}, 1, 1, true},
		{"nested paths", []string{"/People/*/Trips"}, 1, 1, true},
		{"schema", []string{"TripPin.*"}, 2, 0, true},
		{"everything breaking", []string{"/People/*/Trips", "TripPin.*"}, 1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filtered, err := applyIgnorePatterns(result, tt.patterns)
			require.NoError(t, err)

			assert.Len(t, filtered.PathChanges, tt.expectedPaths)
			assert.Len(t, filtered.SchemaChanges, tt.expectedSchemas)
			assert.Equal(t, tt.expectedBreaking, filtered.HasBreakingChanges)
		})
	}

	_, err := applyIgnorePatterns(result, []string{"/People["})
	assert.Error(t, err)
}

func TestMatchesAnyPattern(t *testing.T) {
	tests := []struct {
		s        string
		patterns []string
		expected bool
	}{
		{"/People", []string{"/People"}, true},
		{"/People", []string{"/Peo*"}, true},
		{"/People/{UserName}", []string{"/People/*"}, true},
		{"/People/{UserName}/Trips/$count", []string{"/People/*"}, false},
		{"/People/{UserName}/Trips/$count", []string{"/People/**"}, true},
		{"/Trips", []string{"/People/**", "/Me"}, false},
		{"/Me", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.s, func(t *testing.T) {
			assert.Equal(t, tt.expected, matchesAnyPattern(tt.s, tt.patterns))
		})
	}
}

func TestWatchLoop(t *testing.T) {
	dir := t.TempDir()
	model := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(model, []byte(cliModel), 0o644))

	w, err := newFileWatcher([]string{model})
	require.NoError(t, err)
	defer w.Close()

	done := make(chan struct{}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = watchLoop(ctx, w, 20*time.Millisecond, func() error {
			select {
			case done <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(model, []byte(cliModel+"\n"), 0o644))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("regeneration not triggered")
	}
}

func TestRunOnChange(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "marker")

	require.NoError(t, runOnChange(context.Background(), ""))
	require.NoError(t, runOnChange(context.Background(), "touch "+marker))
	assert.FileExists(t, marker)

	err := runOnChange(context.Background(), "exit 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "on-change command failed")
}

func TestExitCodes(t *testing.T) {
	assert.Equal(t, 0, ExitCodeMatch)
	assert.Equal(t, 1, ExitCodeDifference)
	assert.Equal(t, 2, ExitCodeCheckError)
}
