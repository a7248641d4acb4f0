// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package vocab holds the capability and core annotation records the
// converter reads, together with their merge rules and an in-memory store.
package vocab

import (
	"sync"

	"github.com/mitchellh/copystructure"
)

// Term names an annotation term.
type Term string

// Capability and core terms.
const (
	TermReadRestrictions       Term = "Org.OData.Capabilities.V1.ReadRestrictions"
	TermInsertRestrictions     Term = "Org.OData.Capabilities.V1.InsertRestrictions"
	TermUpdateRestrictions     Term = "Org.OData.Capabilities.V1.UpdateRestrictions"
	TermDeleteRestrictions     Term = "Org.OData.Capabilities.V1.DeleteRestrictions"
	TermNavigationRestrictions Term = "Org.OData.Capabilities.V1.NavigationRestrictions"
	TermOperationRestrictions  Term = "Org.OData.Capabilities.V1.OperationRestrictions"
	TermQueryRestrictions      Term = "Org.OData.Capabilities.V1.QueryRestrictions"
)

// Store answers annotation lookups by target string.
type Store interface {
	// Record returns the restriction record of term on target, or nil.
	// The returned value is owned by the store and must not be modified.
	Record(target string, term Term) interface{}

	// Description returns the Core.Description of target.
	Description(target string) string

	// LongDescription returns the Core.LongDescription of target.
	LongDescription(target string) string

	// Links returns the Core.Links of target.
	Links(target string) []Link

	// Revisions returns the Core.Revisions of target.
	Revisions(target string) []Revision

	// AcceptableMediaTypes returns the Core.AcceptableMediaTypes of target.
	AcceptableMediaTypes(target string) []string
}

// Lookup returns a private copy of the record of term on target, or nil
// when the target carries no record of that type.
func Lookup[T any](s Store, target string, term Term) *T {
	if s == nil || target == "" {
		return nil
	}
	rec, ok := s.Record(target, term).(*T)
	if !ok || rec == nil {
		return nil
	}
	dup, err := copystructure.Copy(rec)
	if err != nil {
		return nil
	}
	return dup.(*T)
}

// TargetAnnotations is the set of annotations attached to one target.
type TargetAnnotations struct {
	Description            string                  `yaml:"description,omitempty" json:"description,omitempty"`
	LongDescription        string                  `yaml:"longDescription,omitempty" json:"longDescription,omitempty"`
	Links                  []Link                  `yaml:"links,omitempty" json:"links,omitempty"`
	Revisions              []Revision              `yaml:"revisions,omitempty" json:"revisions,omitempty"`
	AcceptableMediaTypes   []string                `yaml:"acceptableMediaTypes,omitempty" json:"acceptableMediaTypes,omitempty"`
	ReadRestrictions       *ReadRestrictions       `yaml:"readRestrictions,omitempty" json:"readRestrictions,omitempty"`
	InsertRestrictions     *InsertRestrictions     `yaml:"insertRestrictions,omitempty" json:"insertRestrictions,omitempty"`
	UpdateRestrictions     *UpdateRestrictions     `yaml:"updateRestrictions,omitempty" json:"updateRestrictions,omitempty"`
	DeleteRestrictions     *DeleteRestrictions     `yaml:"deleteRestrictions,omitempty" json:"deleteRestrictions,omitempty"`
	NavigationRestrictions *NavigationRestrictions `yaml:"navigationRestrictions,omitempty" json:"navigationRestrictions,omitempty"`
	OperationRestrictions  *OperationRestrictions  `yaml:"operationRestrictions,omitempty" json:"operationRestrictions,omitempty"`
	QueryRestrictions      *QueryRestrictions      `yaml:"queryRestrictions,omitempty" json:"queryRestrictions,omitempty"`
}

// MemoryStore is a Store backed by a map of targets.
type MemoryStore struct {
	mu      sync.RWMutex
	targets map[string]*TargetAnnotations
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store from annotations keyed by target.
func NewMemoryStore(targets map[string]*TargetAnnotations) *MemoryStore {
	s := &MemoryStore{targets: make(map[string]*TargetAnnotations, len(targets))}
	for target, a := range targets {
		s.targets[target] = a
	}
	return s
}

// Annotate replaces the annotations of target.
func (s *MemoryStore) Annotate(target string, a *TargetAnnotations) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.targets == nil {
		s.targets = make(map[string]*TargetAnnotations)
	}
	s.targets[target] = a
}

func (s *MemoryStore) get(target string) *TargetAnnotations {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.targets[target]
}

// Record returns the restriction record of term on target, or nil.
func (s *MemoryStore) Record(target string, term Term) interface{} {
	a := s.get(target)
	if a == nil {
		return nil
	}
	switch term {
	case TermReadRestrictions:
		return nonNil(a.ReadRestrictions)
	case TermInsertRestrictions:
		return nonNil(a.InsertRestrictions)
	case TermUpdateRestrictions:
		return nonNil(a.UpdateRestrictions)
	case TermDeleteRestrictions:
		return nonNil(a.DeleteRestrictions)
	case TermNavigationRestrictions:
		return nonNil(a.NavigationRestrictions)
	case TermOperationRestrictions:
		return nonNil(a.OperationRestrictions)
	case TermQueryRestrictions:
		return nonNil(a.QueryRestrictions)
	}
	return nil
}

// nonNil keeps a typed nil pointer from turning into a non-nil interface.
func nonNil[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return p
}

// Description returns the Core.Description of target.
func (s *MemoryStore) Description(target string) string {
	if a := s.get(target); a != nil {
		return a.Description
	}
	return ""
}

// LongDescription returns the Core.LongDescription of target.
func (s *MemoryStore) LongDescription(target string) string {
	if a := s.get(target); a != nil {
		return a.LongDescription
	}
	return ""
}

// Links returns the Core.Links of target.
func (s *MemoryStore) Links(target string) []Link {
	if a := s.get(target); a != nil {
		return a.Links
	}
	return nil
}

// Revisions returns the Core.Revisions of target.
func (s *MemoryStore) Revisions(target string) []Revision {
	if a := s.get(target); a != nil {
		return a.Revisions
	}
	return nil
}

// AcceptableMediaTypes returns the Core.AcceptableMediaTypes of target.
func (s *MemoryStore) AcceptableMediaTypes(target string) []string {
	if a := s.get(target); a != nil {
		return a.AcceptableMediaTypes
	}
	return nil
}
