// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/api2spec/odata2openapi/pkg/types"
)

// DiffType is the kind of a change.
type DiffType string

const (
	DiffTypeAdded    DiffType = "added"
	DiffTypeRemoved  DiffType = "removed"
	DiffTypeModified DiffType = "modified"
)

var diffTypes = []DiffType{DiffTypeAdded, DiffTypeRemoved, DiffTypeModified}

// methodOrder lists the methods a path item can hold.
var methodOrder = []string{"GET", "POST", "PATCH", "PUT", "DELETE"}

// PathChange is a change to one operation, identified by path and method.
type PathChange struct {
	Type        DiffType
	Path        string
	Method      string
	Description string

	// Breaking is set when clients built against the old document stop working.
	Breaking bool
}

// SchemaChange is a change to one component schema.
type SchemaChange struct {
	Type        DiffType
	Name        string
	Description string
}

// DiffResult lists the changes from an old to a new document. Changes are
// ordered by path, method and schema name.
type DiffResult struct {
	PathChanges   []PathChange
	SchemaChanges []SchemaChange

	// HasBreakingChanges and Summary are derived from the change lists.
	HasBreakingChanges bool
	Summary            string
}

// IsEmpty returns true if there are no differences.
func (r *DiffResult) IsEmpty() bool {
	return len(r.PathChanges) == 0 && len(r.SchemaChanges) == 0
}

// Refresh recomputes HasBreakingChanges and Summary from the change lists,
// e.g. after changes were filtered out.
func (r *DiffResult) Refresh() {
	r.HasBreakingChanges = slices.ContainsFunc(r.PathChanges, func(c PathChange) bool { return c.Breaking }) ||
		slices.ContainsFunc(r.SchemaChanges, func(c SchemaChange) bool { return c.Type == DiffTypeRemoved })
	r.Summary = r.summarize()
}

func (r *DiffResult) summarize() string {
	if r.IsEmpty() {
		return "No changes detected"
	}

	var parts []string
	count := func(noun string, kinds []DiffType) {
		for _, t := range diffTypes {
			if n := countOf(kinds, t); n > 0 {
				parts = append(parts, fmt.Sprintf("%d %s(s) %s", n, noun, t))
			}
		}
	}
	pathTypes := make([]DiffType, len(r.PathChanges))
	for i, c := range r.PathChanges {
		pathTypes[i] = c.Type
	}
	schemaTypes := make([]DiffType, len(r.SchemaChanges))
	for i, c := range r.SchemaChanges {
		schemaTypes[i] = c.Type
	}
	count("operation", pathTypes)
	count("schema", schemaTypes)

	summary := strings.Join(parts, ", ")
	if r.HasBreakingChanges {
		summary += " [BREAKING CHANGES DETECTED]"
	}
	return summary
}

func countOf(kinds []DiffType, t DiffType) int {
	n := 0
	for _, v := range kinds {
		if v == t {
			n++
		}
	}
	return n
}

// Differ compares two OpenAPI documents.
type Differ struct{}

// NewDiffer creates a new Differ.
func NewDiffer() *Differ {
	return &Differ{}
}

// Diff reports the changes from a to b. Either document may be nil.
func (d *Differ) Diff(a, b *types.OpenAPI) (*DiffResult, error) {
	result := &DiffResult{
		PathChanges:   []PathChange{},
		SchemaChanges: []SchemaChange{},
	}

	aPaths, bPaths := pathsOf(a), pathsOf(b)
	for _, path := range unionKeys(aPaths, bPaths) {
		result.PathChanges = append(result.PathChanges, d.diffPathItem(path, aPaths[path], bPaths[path])...)
	}

	aSchemas, bSchemas := schemasOf(a), schemasOf(b)
	for _, name := range unionKeys(aSchemas, bSchemas) {
		aSchema, inA := aSchemas[name]
		bSchema, inB := bSchemas[name]
		change := SchemaChange{Name: name}
		switch {
		case !inA:
			change.Type, change.Description = DiffTypeAdded, "Added schema: "+name
		case !inB:
			change.Type, change.Description = DiffTypeRemoved, "Removed schema: "+name
		case d.schemaModified(aSchema, bSchema):
			change.Type, change.Description = DiffTypeModified, "Modified schema: "+name
		default:
			continue
		}
		result.SchemaChanges = append(result.SchemaChanges, change)
	}

	result.Refresh()
	return result, nil
}

func pathsOf(doc *types.OpenAPI) map[string]types.PathItem {
	if doc == nil {
		return nil
	}
	return doc.Paths
}

func schemasOf(doc *types.OpenAPI) map[string]*types.Schema {
	if doc == nil || doc.Components == nil {
		return nil
	}
	return doc.Components.Schemas
}

// unionKeys returns the keys of a and b, sorted.
func unionKeys[V any](a, b map[string]V) []string {
	keys := slices.Collect(maps.Keys(a))
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// diffPathItem compares the operations of one path in both documents.
func (d *Differ) diffPathItem(path string, a, b types.PathItem) []PathChange {
	var changes []PathChange
	aOps, bOps := a.Operations(), b.Operations()
	for _, method := range methodOrder {
		aOp, bOp := aOps[method], bOps[method]
		change := PathChange{Path: path, Method: method}
		switch {
		case aOp == nil && bOp == nil:
			continue
		case aOp == nil:
			change.Type = DiffTypeAdded
			change.Description = fmt.Sprintf("Added %s %s", method, path)
		case bOp == nil:
			change.Type = DiffTypeRemoved
			change.Description = fmt.Sprintf("Removed %s %s", method, path)
			change.Breaking = true
		default:
			reasons, breaking := d.operationChanges(aOp, bOp)
			if len(reasons) == 0 {
				continue
			}
			change.Type = DiffTypeModified
			change.Description = fmt.Sprintf("Modified %s %s: %s", method, path, strings.Join(reasons, ", "))
			change.Breaking = breaking
		}
		changes = append(changes, change)
	}
	return changes
}

// operationChanges lists what differs between two versions of an operation.
// Renamed operation ids, newly required parameters or request bodies and
// dropped success responses break generated clients.
func (d *Differ) operationChanges(a, b *types.Operation) (reasons []string, breaking bool) {
	if a.OperationID != b.OperationID {
		reasons = append(reasons, fmt.Sprintf("operationId %q -> %q", a.OperationID, b.OperationID))
		breaking = true
	}
	if a.Summary != b.Summary || a.Description != b.Description {
		reasons = append(reasons, "documentation")
	}
	if a.Deprecated != b.Deprecated {
		reasons = append(reasons, "deprecation")
	}
	if !slices.Equal(a.Tags, b.Tags) {
		reasons = append(reasons, "tags")
	}

	aParams, bParams := parameterIndex(a.Parameters), parameterIndex(b.Parameters)
	if !slices.Equal(slices.Sorted(maps.Keys(aParams)), slices.Sorted(maps.Keys(bParams))) {
		reasons = append(reasons, "parameters")
	}
	for key, p := range bParams {
		if _, ok := aParams[key]; !ok && p.Required {
			breaking = true
		}
	}

	aCodes, bCodes := a.Responses.Codes(), b.Responses.Codes()
	if !slices.Equal(aCodes, bCodes) {
		reasons = append(reasons, "responses")
		for _, code := range aCodes {
			if strings.HasPrefix(code, "2") && !slices.Contains(bCodes, code) {
				breaking = true
			}
		}
	}

	if (a.RequestBody == nil) != (b.RequestBody == nil) {
		reasons = append(reasons, "request body")
		breaking = breaking || b.RequestBody != nil
	}

	return reasons, breaking
}

// parameterIndex keys parameters by $ref, or by location and name.
func parameterIndex(params []*types.Parameter) map[string]*types.Parameter {
	out := make(map[string]*types.Parameter, len(params))
	for _, p := range params {
		switch {
		case p == nil:
		case p.Ref != "":
			out[p.Ref] = p
		default:
			out[p.In+":"+p.Name] = p
		}
	}
	return out
}

// schemaFacets is the comparable part of a schema.
type schemaFacets struct {
	ref, typ, format, title, description, pattern string
	nullable, deprecated, uniqueItems             bool
	minimum, maximum, maxLength, defaultValue     string
	enum, discriminator                           string
}

func facetsOf(s *types.Schema) schemaFacets {
	f := schemaFacets{
		ref: s.Ref, typ: s.Type, format: s.Format, title: s.Title,
		description: s.Description, pattern: s.Pattern,
		nullable: s.Nullable, deprecated: s.Deprecated, uniqueItems: s.UniqueItems,
		enum: fmt.Sprint(s.Enum),
	}
	if s.Minimum != nil {
		f.minimum = fmt.Sprint(*s.Minimum)
	}
	if s.Maximum != nil {
		f.maximum = fmt.Sprint(*s.Maximum)
	}
	if s.MaxLength != nil {
		f.maxLength = fmt.Sprint(*s.MaxLength)
	}
	if s.Default != nil {
		f.defaultValue = fmt.Sprint(s.Default)
	}
	if s.Discriminator != nil {
		f.discriminator = s.Discriminator.PropertyName + fmt.Sprint(s.Discriminator.Mapping)
	}
	return f
}

// schemaModified reports whether two schemas differ, recursing into
// properties, allOf and anyOf members and array items.
func (d *Differ) schemaModified(a, b *types.Schema) bool {
	if a == nil || b == nil {
		return a != b
	}
	if facetsOf(a) != facetsOf(b) || !slices.Equal(a.Required, b.Required) {
		return true
	}

	if len(a.Properties) != len(b.Properties) {
		return true
	}
	for name, p := range a.Properties {
		if d.schemaModified(p, b.Properties[name]) {
			return true
		}
	}

	for _, pair := range [][2][]*types.Schema{{a.AllOf, b.AllOf}, {a.AnyOf, b.AnyOf}} {
		if len(pair[0]) != len(pair[1]) {
			return true
		}
		for i := range pair[0] {
			if d.schemaModified(pair[0][i], pair[1][i]) {
				return true
			}
		}
	}

	return d.schemaModified(a.Items, b.Items) || d.schemaModified(a.AdditionalProperties, b.AdditionalProperties)
}

var diffSymbols = map[DiffType]string{
	DiffTypeAdded:    "+ ",
	DiffTypeRemoved:  "- ",
	DiffTypeModified: "~ ",
}

// FormatDiff renders a result for terminal output.
func FormatDiff(result *DiffResult) string {
	if result.IsEmpty() {
		return "No differences found."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "=== OpenAPI Diff ===\n\n%s\n\n", result.Summary)

	if len(result.PathChanges) > 0 {
		sb.WriteString("--- Operation Changes ---\n")
		changes := slices.Clone(result.PathChanges)
		slices.SortStableFunc(changes, func(x, y PathChange) int {
			return cmp.Or(cmp.Compare(x.Path, y.Path), cmp.Compare(x.Method, y.Method))
		})
		for _, c := range changes {
			line := c.Method + " " + c.Path
			if c.Type == DiffTypeModified {
				line = strings.TrimPrefix(c.Description, "Modified ")
			}
			if c.Breaking {
				line += " (breaking)"
			}
			sb.WriteString(diffSymbols[c.Type] + line + "\n")
		}
		sb.WriteString("\n")
	}

	if len(result.SchemaChanges) > 0 {
		sb.WriteString("--- Schema Changes ---\n")
		changes := slices.Clone(result.SchemaChanges)
		slices.SortStableFunc(changes, func(x, y SchemaChange) int { return cmp.Compare(x.Name, y.Name) })
		for _, c := range changes {
			sb.WriteString(diffSymbols[c.Type] + c.Name + "\n")
		}
	}

	return sb.String()
}
