// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package vocab

import "time"

// Link is a Core.Links entry.
type Link struct {
	Rel  string `yaml:"rel" json:"rel"`
	Href string `yaml:"href" json:"href"`
}

// FindLink returns the first link with the given relation, or nil.
func FindLink(links []Link, rel string) *Link {
	for i := range links {
		if links[i].Rel == rel {
			return &links[i]
		}
	}
	return nil
}

// RevisionDeprecated is the revision kind marking an element as deprecated.
const RevisionDeprecated = "Deprecated"

// dateLayout is the layout of revision dates.
const dateLayout = "2006-01-02"

// Revision is a Core.Revisions entry.
type Revision struct {
	Kind        string `yaml:"kind" json:"kind"`
	Version     string `yaml:"version,omitempty" json:"version,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Date        string `yaml:"date,omitempty" json:"date,omitempty"`
	RemovalDate string `yaml:"removalDate,omitempty" json:"removalDate,omitempty"`
}

// IsDeprecation reports whether the revision marks a deprecation.
func (r Revision) IsDeprecation() bool {
	return r.Kind == RevisionDeprecated
}

// ParsedDate returns the revision date, or the zero time if unset or malformed.
func (r Revision) ParsedDate() time.Time {
	return parseDate(r.Date)
}

// ParsedRemovalDate returns the removal date, or the zero time if unset or malformed.
func (r Revision) ParsedRemovalDate() time.Time {
	return parseDate(r.RemovalDate)
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
