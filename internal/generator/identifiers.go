// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package generator

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/api2spec/odata2openapi/internal/edm"
	"github.com/api2spec/odata2openapi/internal/odatapath"
	"github.com/api2spec/odata2openapi/internal/util"
)

// Tag grouping markers.
const (
	tocTypeKey       = "x-ms-docs-toc-type"
	tocPage          = "page"
	tocContainer     = "container"
	operationTypeKey = "x-ms-docs-operation-type"
)

// hashLength is the number of hex characters kept from a path hash.
const hashLength = 4

// pathHash returns the short hash of a string.
func pathHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:hashLength]
}

// OperationID builds the operation id of path by walking its segments.
// Key segments contribute the entity type name, or "By<Parts>" for a final
// alternate key. Overloaded operations add a short hash of their path item
// so that overloads stay distinct.
func OperationID(model edm.Model, path *odatapath.Path) string {
	return walkOperationID(model, path, path.Len())
}

// walkOperationID walks the first end segments of path.
func walkOperationID(model edm.Model, path *odatapath.Path, end int) string {
	var tokens []string
	hash := ""
	addHash := func(i int) {
		h := pathHash(path.SegmentPathItemName(i))
		if hash != "" {
			h = pathHash(hash + h)
		}
		hash = h
	}

	for i := 0; i < end; i++ {
		seg := path.Segment(i)
		switch s := seg.(type) {
		case *odatapath.KeySegment:
			switch {
			case !s.Alternate:
				tokens = append(tokens, s.Type.Name)
			case i == path.Len()-1:
				tokens = append(tokens, byParts(s.Identifier()))
			default:
				tokens = append(tokens, s.Identifier())
			}
		case *odatapath.OperationSegment:
			if s.Identifier() == "" {
				continue
			}
			if model != nil && model.IsOverloaded(s.Operation) {
				addHash(i)
			}
			tokens = append(tokens, s.Identifier())
		case *odatapath.OperationImportSegment:
			if s.Identifier() == "" {
				continue
			}
			if model != nil && s.Import.Operation != nil && model.IsOverloaded(s.Import.Operation) {
				addHash(i)
			}
			tokens = append(tokens, s.Identifier())
		default:
			if id := seg.Identifier(); id != "" {
				tokens = append(tokens, id)
			}
		}
	}

	id := strings.Join(tokens, ".")
	if hash != "" {
		id += "-" + hash
	}
	return id
}

// byParts renders a comma separated key identifier as By<Part1><Part2>.
func byParts(identifier string) string {
	var b strings.Builder
	b.WriteString("By")
	for _, part := range strings.Split(identifier, ",") {
		b.WriteString(util.UpperFirstChar(part))
	}
	return b.String()
}

// prefixOperationID appends name to the id of the first end segments of
// path, e.g. Customers.Customer + GetCount.
func prefixOperationID(model edm.Model, path *odatapath.Path, end int, name string) string {
	if prefix := walkOperationID(model, path, end); prefix != "" {
		return prefix + "." + name
	}
	return name
}

// elementOperationID renders <Source>.<Type>.<Verb><Type>.
func elementOperationID(source *edm.NavigationSource, verb string) string {
	t := source.EntityType.Name
	return source.Name + "." + t + "." + verb + t
}

// navigationChain returns the source name followed by the navigation
// property names of path, excluding the last one.
func navigationChain(path *odatapath.Path) []string {
	var chain []string
	if src := path.Source(); src != nil {
		chain = append(chain, src.Name)
	}
	last := path.LastIndexOf(odatapath.SegmentNavigationProperty)
	for i := 0; i < last; i++ {
		if n, ok := path.Segment(i).(*odatapath.NavigationPropertySegment); ok {
			chain = append(chain, n.Property.Name)
		}
	}
	return chain
}

// navigationOperationID renders <Source>[.<Nav>...].<Prefix><LastNav>.
func navigationOperationID(path *odatapath.Path, prefix string) string {
	nav := path.LastNavigationProperty()
	if nav == nil {
		return ""
	}
	chain := navigationChain(path)
	return strings.Join(append(chain, prefix+util.UpperFirstChar(nav.Property.Name)), ".")
}

// elementTag returns the <Source>.<Type> tag of a container element.
func elementTag(source *edm.NavigationSource) string {
	return source.Name + "." + source.EntityType.Name
}

// navigationTag returns <Source>[.<Nav>...].<TargetType> for the last
// navigation property of path.
func navigationTag(path *odatapath.Path) string {
	nav := path.LastNavigationProperty()
	if nav == nil {
		return ""
	}
	return strings.Join(append(navigationChain(path), nav.Target.Name), ".")
}

// ownerTag returns the tag of the resource the path hangs off: the
// navigation tag when the path follows a navigation property, the container
// element tag otherwise.
func ownerTag(path *odatapath.Path) string {
	if path.LastNavigationProperty() != nil {
		return navigationTag(path)
	}
	if src := path.Source(); src != nil {
		return elementTag(src)
	}
	return ""
}

// operationTag walks path backwards from the segment before the operation,
// skipping keys, casts, imports and other operations, to the owning source
// or navigation property. An owning navigation property contributes its
// navigation tag. Bound operations get a .Functions or .Actions suffix.
func operationTag(path *odatapath.Path, op *edm.Operation) string {
	for i := path.Len() - 2; i >= 0; i-- {
		switch s := path.Segment(i).(type) {
		case *odatapath.KeySegment, *odatapath.OperationImportSegment,
			*odatapath.TypeCastSegment, *odatapath.OperationSegment:
			continue
		case *odatapath.NavigationSourceSegment:
			return s.Source.Name + "." + s.Source.EntityType.Name + operationSuffix(op)
		case *odatapath.NavigationPropertySegment:
			return navigationTag(path) + operationSuffix(op)
		default:
			return s.Identifier() + operationSuffix(op)
		}
	}
	return ""
}

func operationSuffix(op *edm.Operation) string {
	if op == nil || !op.IsBound {
		return ""
	}
	if op.IsAction() {
		return ".Actions"
	}
	return ".Functions"
}
