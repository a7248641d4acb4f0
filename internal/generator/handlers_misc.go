// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package generator

import (
	"net/http"

	"github.com/api2spec/odata2openapi/internal/edm"
	"github.com/api2spec/odata2openapi/internal/odatapath"
	"github.com/api2spec/odata2openapi/internal/schema"
	"github.com/api2spec/odata2openapi/internal/util"
	"github.com/api2spec/odata2openapi/pkg/types"
)

// initOwned prepares a call on a path that hangs off an entity or
// collection and files it under the owner's tag.
func initOwned(c *call, rel string) error {
	if c.source == nil {
		return missingSegment(c, "navigation source")
	}
	c.linkRelKey = rel
	c.tag = ownerTag(c.path)
	c.tagExt = map[string]interface{}{tocTypeKey: tocPage}
	return nil
}

// ownerSubject renders "<Type> from <Source>" for summaries.
func ownerSubject(c *call) string {
	name := c.source.Name
	if t := c.path.EntityType(); t != nil {
		return t.Name + " from " + name
	}
	return name
}

// streamProperty returns the named stream the path ends with, or nil for
// the media stream of the entity.
func streamProperty(path *odatapath.Path) *edm.Property {
	if s, ok := path.Last().(*odatapath.StreamPropertySegment); ok {
		return s.Property
	}
	return nil
}

// mediaName is the operation id suffix of a media path.
func mediaName(path *odatapath.Path) string {
	if p := streamProperty(path); p != nil {
		return util.UpperFirstChar(p.Name)
	}
	return "Content"
}

// mediaContent returns the acceptable media types of the stream with a
// binary schema.
func mediaContent(c *call) map[string]*types.MediaType {
	var accepted []string
	if p := streamProperty(c.path); p != nil {
		accepted = c.ctx.mediaTypes(p.Target())
	} else if c.entityType != nil {
		accepted = c.ctx.mediaTypes(c.entityType.FullName())
	}
	if len(accepted) == 0 {
		accepted = []string{mediaBinary}
	}
	return content(accepted, &types.Schema{Type: "string", Format: "binary"})
}

func newMediaHandler(method string) *Handler {
	var name, verb, rel string
	switch method {
	case http.MethodGet:
		name, verb, rel = "MediaEntityGet", "Get", relGet
	case http.MethodPut:
		name, verb, rel = "MediaEntityPut", "Update", relUpdate
	default:
		name, verb, rel = "MediaEntityDelete", "Delete", relDelete
	}
	return &Handler{
		name:   name,
		kind:   odatapath.KindMediaEntity,
		method: method,
		init: func(c *call) error {
			if err := initOwned(c, rel); err != nil {
				return err
			}
			switch method {
			case http.MethodGet:
				c.restrictions = readBase(c.readRestrictions(true))
			case http.MethodPut:
				c.restrictions = updateBase(c.updateRestrictions())
			default:
				c.restrictions = deleteBase(c.deleteRestrictions())
			}
			return nil
		},
		steps: map[Step]stepFunc{
			StepBasicInfo: func(c *call) {
				what := "media content"
				if p := streamProperty(c.path); p != nil {
					what = p.Name
				}
				c.op.Summary = verb + " " + what + " for " + ownerSubject(c)
				c.op.OperationID = prefixOperationID(c.ctx.Model, c.path, c.path.Len()-1, verb+mediaName(c.path))
			},
			StepParameters: func(c *call) {
				if method == http.MethodDelete {
					c.addParameter(ifMatchParameter())
				}
			},
			StepResponses: func(c *call) {
				if method != http.MethodGet {
					noContent(c)
					return
				}
				c.op.Responses.Set(successCode(c, statusOK), &types.Response{
					Description: "Retrieved media content",
					Content:     mediaContent(c),
				})
			},
			StepRequestBody: func(c *call) {
				if method != http.MethodPut {
					return
				}
				c.op.RequestBody = &types.RequestBody{
					Description: "New media content.",
					Required:    true,
					Content:     mediaContent(c),
				}
			},
		},
	}
}

// castsCollection reports whether the type cast applies to a collection.
func castsCollection(path *odatapath.Path) bool {
	if path.Len() < 2 {
		return false
	}
	switch prev := path.Segment(path.Len() - 2).(type) {
	case *odatapath.NavigationSourceSegment:
		return !prev.Source.IsSingleton()
	case *odatapath.NavigationPropertySegment:
		return prev.Property.IsCollection()
	}
	return false
}

func newTypeCastGet() *Handler {
	return &Handler{
		name:   "TypeCastGet",
		kind:   odatapath.KindTypeCast,
		method: http.MethodGet,
		init: func(c *call) error {
			if _, ok := c.path.Last().(*odatapath.TypeCastSegment); !ok {
				return c.dispatchError("last segment is not a type cast")
			}
			rel := relGet
			if castsCollection(c.path) {
				rel = relList
			}
			if err := initOwned(c, rel); err != nil {
				return err
			}
			c.restrictions = readBase(c.readRestrictions(!castsCollection(c.path)))
			return nil
		},
		steps: map[Step]stepFunc{
			StepBasicInfo: func(c *call) {
				cast := c.path.Last().(*odatapath.TypeCastSegment).Type
				owner := c.path.Segment(c.path.Len() - 2).EntityType()
				if owner == nil {
					owner = cast
				}
				verb := "Get"
				if castsCollection(c.path) {
					verb = "List"
					c.op.Summary = "Get the items of type " + cast.FullName() + " in the " + owner.FullName() + " collection"
				} else {
					c.op.Summary = "Get the item of type " + owner.FullName() + " as " + cast.FullName()
				}
				c.op.OperationID = prefixOperationID(c.ctx.Model, c.path, c.path.Len()-1, verb+cast.Name)
			},
			StepParameters: func(c *call) {
				cast := c.path.Last().(*odatapath.TypeCastSegment).Type
				if castsCollection(c.path) {
					collectionQueryOptions(c, cast)
					return
				}
				singleQueryOptions(c, cast)
			},
			StepResponses: func(c *call) {
				cast := c.path.Last().(*odatapath.TypeCastSegment).Type
				if castsCollection(c.path) {
					entityCollectionResponse(c, cast)
					return
				}
				entityResponse(c, cast, "Result entities")
			},
		},
	}
}

func newDollarCountGet() *Handler {
	return &Handler{
		name:   "DollarCountGet",
		kind:   odatapath.KindDollarCount,
		method: http.MethodGet,
		init: func(c *call) error {
			if _, ok := c.path.Last().(*odatapath.DollarCountSegment); !ok {
				return missingSegment(c, "$count")
			}
			if err := initOwned(c, relList); err != nil {
				return err
			}
			c.restrictions = readBase(c.readRestrictions(false))
			return nil
		},
		steps: map[Step]stepFunc{
			StepBasicInfo: func(c *call) {
				c.op.Summary = "Get the number of the resource"
				c.op.OperationID = prefixOperationID(c.ctx.Model, c.path, c.path.Len()-1, "GetCount")
			},
			StepParameters: countQueryOptions,
			StepResponses: func(c *call) {
				c.op.Responses.Set(successCode(c, statusOK), &types.Response{
					Ref: schema.Ref(schema.KindResponses, schema.CountResponse),
				})
			},
		},
	}
}

func newMetadataGet() *Handler {
	return &Handler{
		name:   "MetadataGet",
		kind:   odatapath.KindMetadata,
		method: http.MethodGet,
		init: func(c *call) error {
			if _, ok := c.path.First().(*odatapath.MetadataSegment); !ok {
				return missingSegment(c, "$metadata")
			}
			return nil
		},
		steps: map[Step]stepFunc{
			StepBasicInfo: func(c *call) {
				c.op.Summary = "Get the service metadata document"
				c.op.OperationID = "Metadata.GetMetadata"
			},
			StepResponses: func(c *call) {
				c.op.Responses.Set(successCode(c, statusOK), &types.Response{
					Description: "Retrieved metadata document",
					Content:     content([]string{mediaXML}, &types.Schema{Type: "string"}),
				})
			},
		},
	}
}

// complexProperty returns the complex property segment the path ends with.
func complexProperty(path *odatapath.Path) *odatapath.ComplexPropertySegment {
	s, _ := path.Last().(*odatapath.ComplexPropertySegment)
	return s
}

func newComplexPropertyHandler(method string) *Handler {
	var name, verb, rel string
	switch method {
	case http.MethodGet:
		name, verb, rel = "ComplexPropertyGet", "Get", relGet
	case http.MethodPatch:
		name, verb, rel = "ComplexPropertyUpdate", "Update", relUpdate
	case http.MethodPut:
		name, verb, rel = "ComplexPropertySet", "Set", relUpdate
	default:
		name, verb, rel = "ComplexPropertyPost", "Post", relCreate
	}
	return &Handler{
		name:   name,
		kind:   odatapath.KindComplexProperty,
		method: method,
		init: func(c *call) error {
			prop := complexProperty(c.path)
			if prop == nil {
				return missingSegment(c, "complex property")
			}
			if method == http.MethodPost && !prop.Property.IsCollection() {
				return c.dispatchError(prop.Property.Name + " is not collection-valued")
			}
			if err := initOwned(c, rel); err != nil {
				return err
			}
			switch method {
			case http.MethodGet:
				c.restrictions = readBase(c.readRestrictions(false))
			case http.MethodPost:
				c.restrictions = insertBase(c.insertRestrictions())
			default:
				c.restrictions = updateBase(c.updateRestrictions())
			}
			return nil
		},
		steps: map[Step]stepFunc{
			StepBasicInfo: func(c *call) {
				prop := complexProperty(c.path).Property
				switch method {
				case http.MethodGet:
					c.op.Summary = "Get " + prop.Name + " property value"
				case http.MethodPost:
					c.op.Summary = "Sets a new value for the collection of " + util.LastQualifiedPart(prop.ElementType()) + "."
				default:
					c.op.Summary = "Update property " + prop.Name + " value."
				}
				c.op.OperationID = prefixOperationID(c.ctx.Model, c.path, c.path.Len()-1, verb+util.UpperFirstChar(prop.Name))
			},
			StepParameters: func(c *call) {
				if method == http.MethodGet && complexProperty(c.path).Property.IsCollection() {
					collectionQueryOptions(c, nil)
				}
			},
			StepResponses: func(c *call) {
				prop := complexProperty(c.path).Property
				switch {
				case method == http.MethodPost:
					c.op.Responses.Set(successCode(c, statusNoContent), &types.Response{Description: "Success"})
				case method != http.MethodGet:
					noContent(c)
				case prop.IsCollection():
					valueCollectionResponse(c, prop.ElementType())
				default:
					c.op.Responses.Set(successCode(c, statusOK), &types.Response{
						Description: "Result entities",
						Content:     responseContent(c, schema.ForProperty(c.ctx.Model, prop)),
					})
				}
			},
			StepRequestBody: func(c *call) {
				if method == http.MethodGet {
					return
				}
				prop := complexProperty(c.path).Property
				c.op.RequestBody = &types.RequestBody{
					Description: "New property values",
					Required:    true,
					Content:     requestContent(c, schema.ForType(c.ctx.Model, prop.Type)),
				}
			},
		},
	}
}
