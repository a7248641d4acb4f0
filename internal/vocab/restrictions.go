// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package vocab

// Permission names a security scheme and the scopes it grants.
type Permission struct {
	// SchemeName refers to a security scheme component
	SchemeName string `yaml:"schemeName" json:"schemeName"`

	// Scopes lists the scopes required for the operation
	Scopes []Scope `yaml:"scopes,omitempty" json:"scopes,omitempty"`
}

// Scope is one scope of a permission.
type Scope struct {
	Scope                string `yaml:"scope" json:"scope"`
	RestrictedProperties string `yaml:"restrictedProperties,omitempty" json:"restrictedProperties,omitempty"`
}

// ScopeNames returns the scope strings, never nil.
func (p Permission) ScopeNames() []string {
	out := make([]string, 0, len(p.Scopes))
	for _, s := range p.Scopes {
		out = append(out, s.Scope)
	}
	return out
}

// CustomParameter is a header or query option a service accepts in addition
// to the standard ones.
type CustomParameter struct {
	Name             string         `yaml:"name" json:"name"`
	Description      *string        `yaml:"description,omitempty" json:"description,omitempty"`
	DocumentationURL *string        `yaml:"documentationUrl,omitempty" json:"documentationUrl,omitempty"`
	Required         *bool          `yaml:"required,omitempty" json:"required,omitempty"`
	ExampleValues    []ExampleValue `yaml:"exampleValues,omitempty" json:"exampleValues,omitempty"`
}

// ExampleValue is one example of a custom parameter value.
type ExampleValue struct {
	Value       interface{} `yaml:"value" json:"value"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
}

// RestrictionBase holds the fields shared by every restriction record.
// A nil field means "not specified here", never "disabled".
type RestrictionBase struct {
	Permissions          []Permission      `yaml:"permissions,omitempty" json:"permissions,omitempty"`
	CustomHeaders        []CustomParameter `yaml:"customHeaders,omitempty" json:"customHeaders,omitempty"`
	CustomQueryOptions   []CustomParameter `yaml:"customQueryOptions,omitempty" json:"customQueryOptions,omitempty"`
	Description          *string           `yaml:"description,omitempty" json:"description,omitempty"`
	LongDescription      *string           `yaml:"longDescription,omitempty" json:"longDescription,omitempty"`
	RequestContentTypes  []string          `yaml:"requestContentTypes,omitempty" json:"requestContentTypes,omitempty"`
	ResponseContentTypes []string          `yaml:"responseContentTypes,omitempty" json:"responseContentTypes,omitempty"`
}

// ReadRestrictions describes read capabilities.
type ReadRestrictions struct {
	Readable        *bool `yaml:"readable,omitempty" json:"readable,omitempty"`
	RestrictionBase `yaml:",inline"`

	// ReadByKeyRestrictions overrides fields for reads of a single entity by key
	ReadByKeyRestrictions *ReadByKeyRestrictions `yaml:"readByKeyRestrictions,omitempty" json:"readByKeyRestrictions,omitempty"`
}

// ReadByKeyRestrictions holds the by-key overrides of ReadRestrictions.
type ReadByKeyRestrictions struct {
	Readable        *bool `yaml:"readable,omitempty" json:"readable,omitempty"`
	RestrictionBase `yaml:",inline"`
}

// IsReadable reports whether reading is allowed. Unset means allowed.
func (r *ReadRestrictions) IsReadable() bool {
	return r == nil || r.Readable == nil || *r.Readable
}

// InsertRestrictions describes insert capabilities.
type InsertRestrictions struct {
	Insertable      *bool `yaml:"insertable,omitempty" json:"insertable,omitempty"`
	MaxLevels       *int  `yaml:"maxLevels,omitempty" json:"maxLevels,omitempty"`
	RestrictionBase `yaml:",inline"`
}

// IsInsertable reports whether inserting is allowed. Unset means allowed.
func (r *InsertRestrictions) IsInsertable() bool {
	return r == nil || r.Insertable == nil || *r.Insertable
}

// UpdateRestrictions describes update capabilities.
type UpdateRestrictions struct {
	Updatable  *bool `yaml:"updatable,omitempty" json:"updatable,omitempty"`
	Upsertable *bool `yaml:"upsertable,omitempty" json:"upsertable,omitempty"`

	// UpdateMethod is "PATCH" or "PUT"
	UpdateMethod    *string `yaml:"updateMethod,omitempty" json:"updateMethod,omitempty"`
	RestrictionBase `yaml:",inline"`
}

// IsUpdatable reports whether updating is allowed. Unset means allowed.
func (r *UpdateRestrictions) IsUpdatable() bool {
	return r == nil || r.Updatable == nil || *r.Updatable
}

// PrefersPut reports whether the service declared PUT as its update method.
func (r *UpdateRestrictions) PrefersPut() bool {
	return r != nil && r.UpdateMethod != nil && *r.UpdateMethod == "PUT"
}

// DeleteRestrictions describes delete capabilities.
type DeleteRestrictions struct {
	Deletable       *bool `yaml:"deletable,omitempty" json:"deletable,omitempty"`
	RestrictionBase `yaml:",inline"`
}

// IsDeletable reports whether deleting is allowed. Unset means allowed.
func (r *DeleteRestrictions) IsDeletable() bool {
	return r == nil || r.Deletable == nil || *r.Deletable
}

// OperationRestrictions describes restrictions on a function or action.
type OperationRestrictions struct {
	FilterSegmentSupported *bool `yaml:"filterSegmentSupported,omitempty" json:"filterSegmentSupported,omitempty"`
	RestrictionBase        `yaml:",inline"`
}

// Navigability values.
const (
	NavigabilityRecursive = "Recursive"
	NavigabilitySingle    = "Single"
	NavigabilityNone      = "None"
)

// NavigationRestrictions describes navigation capabilities of a container element.
type NavigationRestrictions struct {
	Navigability         *string                         `yaml:"navigability,omitempty" json:"navigability,omitempty"`
	RestrictedProperties []NavigationPropertyRestriction `yaml:"restrictedProperties,omitempty" json:"restrictedProperties,omitempty"`
}

// NavigationPropertyRestriction narrows the restrictions of one navigation property path.
type NavigationPropertyRestriction struct {
	// NavigationProperty is the navigation property path, e.g. "Orders/Items"
	NavigationProperty string  `yaml:"navigationProperty" json:"navigationProperty"`
	Navigability       *string `yaml:"navigability,omitempty" json:"navigability,omitempty"`

	ReadRestrictions   *ReadRestrictions   `yaml:"readRestrictions,omitempty" json:"readRestrictions,omitempty"`
	InsertRestrictions *InsertRestrictions `yaml:"insertRestrictions,omitempty" json:"insertRestrictions,omitempty"`
	UpdateRestrictions *UpdateRestrictions `yaml:"updateRestrictions,omitempty" json:"updateRestrictions,omitempty"`
	DeleteRestrictions *DeleteRestrictions `yaml:"deleteRestrictions,omitempty" json:"deleteRestrictions,omitempty"`
}

// Restricted returns the entry for the navigation property path, or nil.
func (r *NavigationRestrictions) Restricted(path string) *NavigationPropertyRestriction {
	if r == nil {
		return nil
	}
	for i := range r.RestrictedProperties {
		if r.RestrictedProperties[i].NavigationProperty == path {
			return &r.RestrictedProperties[i]
		}
	}
	return nil
}

// IsNavigable reports whether the navigation property path may be traversed.
func (r *NavigationRestrictions) IsNavigable(path string) bool {
	if entry := r.Restricted(path); entry != nil && entry.Navigability != nil {
		return *entry.Navigability != NavigabilityNone
	}
	return r == nil || r.Navigability == nil || *r.Navigability != NavigabilityNone
}

// QueryRestrictions groups the query-option capabilities that decide which
// system query options an operation advertises. Unset means supported.
type QueryRestrictions struct {
	TopSupported          *bool    `yaml:"topSupported,omitempty" json:"topSupported,omitempty"`
	SkipSupported         *bool    `yaml:"skipSupported,omitempty" json:"skipSupported,omitempty"`
	Countable             *bool    `yaml:"countable,omitempty" json:"countable,omitempty"`
	Filterable            *bool    `yaml:"filterable,omitempty" json:"filterable,omitempty"`
	Searchable            *bool    `yaml:"searchable,omitempty" json:"searchable,omitempty"`
	Sortable              *bool    `yaml:"sortable,omitempty" json:"sortable,omitempty"`
	SelectSupported       *bool    `yaml:"selectSupported,omitempty" json:"selectSupported,omitempty"`
	Expandable            *bool    `yaml:"expandable,omitempty" json:"expandable,omitempty"`
	NonSortableProperties []string `yaml:"nonSortableProperties,omitempty" json:"nonSortableProperties,omitempty"`
}

// Supports reports whether a *bool capability allows the feature.
func Supports(flag *bool) bool {
	return flag == nil || *flag
}
