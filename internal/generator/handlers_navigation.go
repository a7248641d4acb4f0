// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package generator

import (
	"net/http"

	"github.com/api2spec/odata2openapi/internal/odatapath"
	"github.com/api2spec/odata2openapi/internal/schema"
	"github.com/api2spec/odata2openapi/pkg/types"
)

// initNavigation prepares a call on a path that follows a navigation property.
func initNavigation(c *call, rel string) error {
	if c.source == nil {
		return missingSegment(c, "navigation source")
	}
	if c.nav == nil {
		return missingSegment(c, "navigation property")
	}
	c.linkRelKey = rel
	c.tag = navigationTag(c.path)
	c.tagExt = map[string]interface{}{tocTypeKey: tocPage}
	return nil
}

// keyedAfterNavigation reports whether a key follows the last navigation property.
func keyedAfterNavigation(path *odatapath.Path) bool {
	return path.LastIndexOf(odatapath.SegmentKey) > path.LastIndexOf(odatapath.SegmentNavigationProperty)
}

// navigatesToMany reports whether the path addresses the collection behind a
// collection-valued navigation property.
func navigatesToMany(c *call) bool {
	return c.nav.Property.IsCollection() && !keyedAfterNavigation(c.path)
}

// navigationSubject renders the summary fragment "<Nav> for <Source>".
func navigationSubject(c *call) string {
	return c.nav.Property.Name + " for " + c.source.Name
}

func newNavigationGet() *Handler {
	return &Handler{
		name:   "NavigationPropertyGet",
		kind:   odatapath.KindNavigationProperty,
		method: http.MethodGet,
		init: func(c *call) error {
			if err := initNavigation(c, relGet); err != nil {
				return err
			}
			if navigatesToMany(c) {
				c.linkRelKey = relList
			}
			c.restrictions = readBase(c.readRestrictions(c.path.EndsWithKey()))
			return nil
		},
		steps: map[Step]stepFunc{
			StepBasicInfo: func(c *call) {
				c.op.Summary = "Get " + c.nav.Property.Name + " from " + c.source.Name
				prefix := "Get"
				if navigatesToMany(c) {
					prefix = "List"
				}
				c.op.OperationID = navigationOperationID(c.path, prefix)
			},
			StepParameters: func(c *call) {
				if navigatesToMany(c) {
					collectionQueryOptions(c, c.nav.Target)
					return
				}
				singleQueryOptions(c, c.nav.Target)
			},
			StepResponses: func(c *call) {
				if navigatesToMany(c) {
					entityCollectionResponse(c, c.nav.Target)
					return
				}
				entityResponse(c, c.nav.Target, "Retrieved navigation property")
			},
		},
	}
}

func newNavigationPost() *Handler {
	return &Handler{
		name:   "NavigationPropertyPost",
		kind:   odatapath.KindNavigationProperty,
		method: http.MethodPost,
		init: func(c *call) error {
			if err := initNavigation(c, relCreate); err != nil {
				return err
			}
			if !navigatesToMany(c) {
				return c.dispatchError("navigation property does not address a collection")
			}
			c.restrictions = insertBase(c.insertRestrictions())
			return nil
		},
		steps: map[Step]stepFunc{
			StepBasicInfo: func(c *call) {
				c.op.Summary = "Create new navigation property to " + navigationSubject(c)
				c.op.OperationID = navigationOperationID(c.path, "Create")
			},
			StepResponses:   func(c *call) { createdResponse(c, "Created navigation property.") },
			StepRequestBody: func(c *call) { entityBody(c, c.nav.Target, "New navigation property") },
		},
	}
}

func newNavigationUpdate(method string) *Handler {
	verb, summary := "Update", "Update the navigation property "
	if method == http.MethodPut {
		verb, summary = "Set", "Replace the navigation property "
	}
	return &Handler{
		name:   "NavigationProperty" + verb,
		kind:   odatapath.KindNavigationProperty,
		method: method,
		init: func(c *call) error {
			if err := initNavigation(c, relUpdate); err != nil {
				return err
			}
			if navigatesToMany(c) {
				return c.dispatchError("navigation property addresses a collection")
			}
			c.restrictions = updateBase(c.updateRestrictions())
			return nil
		},
		steps: map[Step]stepFunc{
			StepBasicInfo: func(c *call) {
				c.op.Summary = summary + c.nav.Property.Name + " in " + c.source.Name
				c.op.OperationID = navigationOperationID(c.path, verb)
			},
			StepResponses:   noContent,
			StepRequestBody: func(c *call) { entityBody(c, c.nav.Target, "New navigation property values") },
		},
	}
}

func newNavigationDelete() *Handler {
	return &Handler{
		name:   "NavigationPropertyDelete",
		kind:   odatapath.KindNavigationProperty,
		method: http.MethodDelete,
		init: func(c *call) error {
			if err := initNavigation(c, relDelete); err != nil {
				return err
			}
			if navigatesToMany(c) {
				return c.dispatchError("navigation property addresses a collection")
			}
			c.restrictions = deleteBase(c.deleteRestrictions())
			return nil
		},
		steps: map[Step]stepFunc{
			StepBasicInfo: func(c *call) {
				c.op.Summary = "Delete navigation property " + navigationSubject(c)
				c.op.OperationID = navigationOperationID(c.path, "Delete")
			},
			StepParameters: func(c *call) { c.addParameter(ifMatchParameter()) },
			StepResponses:  noContent,
		},
	}
}

// refKeySuffix returns By<Keys> for a $ref path that addresses one member
// of a collection-valued navigation property.
func refKeySuffix(c *call) string {
	if !c.nav.Property.IsCollection() || !keyedAfterNavigation(c.path) {
		return ""
	}
	k := c.path.Segment(c.path.LastIndexOf(odatapath.SegmentKey)).(*odatapath.KeySegment)
	return byParts(k.Identifier())
}

func newRefGet() *Handler {
	return &Handler{
		name:   "RefGet",
		kind:   odatapath.KindRef,
		method: http.MethodGet,
		init: func(c *call) error {
			if err := initNavigation(c, relGet); err != nil {
				return err
			}
			if keyedAfterNavigation(c.path) {
				return c.dispatchError("keyed reference can only be deleted")
			}
			if navigatesToMany(c) {
				c.linkRelKey = relList
			}
			c.restrictions = readBase(c.readRestrictions(false))
			return nil
		},
		steps: map[Step]stepFunc{
			StepBasicInfo: func(c *call) {
				c.op.Summary = "Get ref of " + c.nav.Property.Name + " from " + c.source.Name
				prefix := "GetRef"
				if navigatesToMany(c) {
					prefix = "ListRef"
				}
				c.op.OperationID = navigationOperationID(c.path, prefix)
			},
			StepParameters: func(c *call) {
				if navigatesToMany(c) {
					collectionQueryOptions(c, nil)
				}
			},
			StepResponses: func(c *call) {
				if navigatesToMany(c) {
					c.op.Responses.Set(successCode(c, statusOK), &types.Response{
						Description: "Retrieved navigation property links",
						Content:     responseContent(c, types.SchemaRef(schema.StringCollection)),
					})
					c.pageable = true
					return
				}
				c.op.Responses.Set(successCode(c, statusOK), &types.Response{
					Description: "Retrieved navigation property link",
					Content:     responseContent(c, &types.Schema{Type: "string"}),
				})
			},
		},
	}
}

func newRefPost() *Handler {
	return &Handler{
		name:   "RefPost",
		kind:   odatapath.KindRef,
		method: http.MethodPost,
		init: func(c *call) error {
			if err := initNavigation(c, relCreate); err != nil {
				return err
			}
			if !navigatesToMany(c) {
				return c.dispatchError("reference does not address a collection")
			}
			c.restrictions = insertBase(c.insertRestrictions())
			return nil
		},
		steps: map[Step]stepFunc{
			StepBasicInfo: func(c *call) {
				c.op.Summary = "Create new navigation property ref to " + navigationSubject(c)
				c.op.OperationID = navigationOperationID(c.path, "CreateRef")
			},
			StepResponses: func(c *call) {
				c.op.Responses.Set(successCode(c, statusNoContent), &types.Response{Description: "Success"})
			},
			StepRequestBody: func(c *call) {
				c.op.RequestBody = &types.RequestBody{Ref: schema.Ref(schema.KindRequestBodies, schema.RefPostBody)}
			},
		},
	}
}

func newRefPut() *Handler {
	return &Handler{
		name:   "RefPut",
		kind:   odatapath.KindRef,
		method: http.MethodPut,
		init: func(c *call) error {
			if err := initNavigation(c, relUpdate); err != nil {
				return err
			}
			if c.nav.Property.IsCollection() {
				return c.dispatchError("collection-valued references are added with POST")
			}
			c.restrictions = updateBase(c.updateRestrictions())
			return nil
		},
		steps: map[Step]stepFunc{
			StepBasicInfo: func(c *call) {
				c.op.Summary = "Update the ref of navigation property " + c.nav.Property.Name + " in " + c.source.Name
				c.op.OperationID = navigationOperationID(c.path, "UpdateRef")
			},
			StepResponses: noContent,
			StepRequestBody: func(c *call) {
				c.op.RequestBody = &types.RequestBody{Ref: schema.Ref(schema.KindRequestBodies, schema.RefPutBody)}
			},
		},
	}
}

func newRefDelete() *Handler {
	return &Handler{
		name:   "RefDelete",
		kind:   odatapath.KindRef,
		method: http.MethodDelete,
		init: func(c *call) error {
			if err := initNavigation(c, relDelete); err != nil {
				return err
			}
			c.restrictions = deleteBase(c.deleteRestrictions())
			return nil
		},
		steps: map[Step]stepFunc{
			StepBasicInfo: func(c *call) {
				c.op.Summary = "Delete ref of navigation property " + navigationSubject(c)
				c.op.OperationID = navigationOperationID(c.path, "DeleteRef") + refKeySuffix(c)
			},
			StepParameters: func(c *call) {
				c.addParameter(ifMatchParameter())
				if navigatesToMany(c) {
					c.addParameter(&types.Parameter{
						Name:        "@id",
						In:          "query",
						Description: "The delete Uri",
						Required:    true,
						Schema:      &types.Schema{Type: "string"},
					})
				}
			},
			StepResponses: noContent,
		},
	}
}
