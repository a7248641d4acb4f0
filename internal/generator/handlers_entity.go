// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package generator

import (
	"fmt"
	"net/http"

	"github.com/api2spec/odata2openapi/internal/odatapath"
	"github.com/api2spec/odata2openapi/internal/vocab"
	"github.com/api2spec/odata2openapi/pkg/types"
)

// Link relation keys of the custom link relation mapping.
const (
	relList     = "list"
	relGet      = "get"
	relCreate   = "create"
	relUpdate   = "update"
	relDelete   = "delete"
	relAction   = "action"
	relFunction = "function"
)

func missingSegment(c *call, what string) error {
	return fmt.Errorf("%w: %s in %s", ErrMissingSegment, what, c.path)
}

func (c *call) dispatchError(reason string) error {
	name := ""
	if c.handler != nil {
		name = c.handler.name
	}
	return &DispatchError{Handler: name, Path: c.path.String(), Reason: reason}
}

// initElement prepares a call on a container element path and files it
// under the element tag.
func initElement(c *call, rel string) error {
	if c.source == nil {
		return missingSegment(c, "navigation source")
	}
	c.linkRelKey = rel
	c.tag = elementTag(c.source)
	c.tagExt = map[string]interface{}{tocTypeKey: tocPage}
	return nil
}

func readBase(r *vocab.ReadRestrictions) *vocab.RestrictionBase {
	if r == nil {
		return nil
	}
	return &r.RestrictionBase
}

func insertBase(r *vocab.InsertRestrictions) *vocab.RestrictionBase {
	if r == nil {
		return nil
	}
	return &r.RestrictionBase
}

func updateBase(r *vocab.UpdateRestrictions) *vocab.RestrictionBase {
	if r == nil {
		return nil
	}
	return &r.RestrictionBase
}

func deleteBase(r *vocab.DeleteRestrictions) *vocab.RestrictionBase {
	if r == nil {
		return nil
	}
	return &r.RestrictionBase
}

func operationBase(r *vocab.OperationRestrictions) *vocab.RestrictionBase {
	if r == nil {
		return nil
	}
	return &r.RestrictionBase
}

// keySuffix returns By<Parts> when the path ends with an alternate key.
func keySuffix(path *odatapath.Path) string {
	if k, ok := path.Last().(*odatapath.KeySegment); ok && k.Alternate {
		return byParts(k.Identifier())
	}
	return ""
}

func newEntitySetGet() *Handler {
	return &Handler{
		name:   "EntitySetGet",
		kind:   odatapath.KindEntitySet,
		method: http.MethodGet,
		init: func(c *call) error {
			if err := initElement(c, relList); err != nil {
				return err
			}
			c.restrictions = readBase(c.readRestrictions(false))
			return nil
		},
		steps: map[Step]stepFunc{
			StepBasicInfo: func(c *call) {
				c.op.Summary = "Get entities from " + c.source.Name
				c.op.OperationID = elementOperationID(c.source, "List")
			},
			StepParameters: func(c *call) { collectionQueryOptions(c, c.source.EntityType) },
			StepResponses:  func(c *call) { entityCollectionResponse(c, c.source.EntityType) },
		},
	}
}

func newEntitySetPost() *Handler {
	return &Handler{
		name:   "EntitySetPost",
		kind:   odatapath.KindEntitySet,
		method: http.MethodPost,
		init: func(c *call) error {
			if err := initElement(c, relCreate); err != nil {
				return err
			}
			c.restrictions = insertBase(c.insertRestrictions())
			return nil
		},
		steps: map[Step]stepFunc{
			StepBasicInfo: func(c *call) {
				c.op.Summary = "Add new entity to " + c.source.Name
				c.op.OperationID = elementOperationID(c.source, "Create")
			},
			StepResponses:   func(c *call) { createdResponse(c, "Created entity") },
			StepRequestBody: func(c *call) { entityBody(c, c.source.EntityType, "New entity") },
		},
	}
}

// createdResponse sets the 201 response carrying the created entity.
func createdResponse(c *call, description string) {
	c.op.Responses.Set(successCode(c, statusCreated), &types.Response{
		Description: description,
		Content:     responseContent(c, entitySchema(c, c.entityType, c.ctx.Settings.EnableDerivedTypesReferencesForResponses)),
	})
}

func initEntity(c *call, rel string) error {
	if err := initElement(c, rel); err != nil {
		return err
	}
	if !c.path.EndsWithKey() {
		return missingSegment(c, "key")
	}
	return nil
}

func newEntityGet() *Handler {
	return &Handler{
		name:   "EntityGet",
		kind:   odatapath.KindEntity,
		method: http.MethodGet,
		init: func(c *call) error {
			if err := initEntity(c, relGet); err != nil {
				return err
			}
			c.restrictions = readBase(c.readRestrictions(true))
			return nil
		},
		steps: map[Step]stepFunc{
			StepBasicInfo: func(c *call) {
				c.op.Summary = "Get entity from " + c.source.Name + " by key"
				c.op.OperationID = elementOperationID(c.source, "Get") + keySuffix(c.path)
			},
			StepParameters: func(c *call) { singleQueryOptions(c, c.entityType) },
			StepResponses: func(c *call) {
				resp := entityResponse(c, c.entityType, "Retrieved entity")
				addNavigationLinks(c, resp, c.entityType)
			},
		},
	}
}

func newEntityUpdate(method string) *Handler {
	verb, summary := "Update", "Update entity in "
	if method == http.MethodPut {
		verb, summary = "Set", "Replace entity in "
	}
	return &Handler{
		name:   "Entity" + verb,
		kind:   odatapath.KindEntity,
		method: method,
		init: func(c *call) error {
			if err := initEntity(c, relUpdate); err != nil {
				return err
			}
			c.restrictions = updateBase(c.updateRestrictions())
			return nil
		},
		steps: map[Step]stepFunc{
			StepBasicInfo: func(c *call) {
				c.op.Summary = summary + c.source.Name
				c.op.OperationID = elementOperationID(c.source, verb) + keySuffix(c.path)
			},
			StepResponses:   noContent,
			StepRequestBody: func(c *call) { entityBody(c, c.entityType, "New property values") },
		},
	}
}

func newEntityDelete() *Handler {
	return &Handler{
		name:   "EntityDelete",
		kind:   odatapath.KindEntity,
		method: http.MethodDelete,
		init: func(c *call) error {
			if err := initEntity(c, relDelete); err != nil {
				return err
			}
			c.restrictions = deleteBase(c.deleteRestrictions())
			return nil
		},
		steps: map[Step]stepFunc{
			StepBasicInfo: func(c *call) {
				c.op.Summary = "Delete entity from " + c.source.Name
				c.op.OperationID = elementOperationID(c.source, "Delete") + keySuffix(c.path)
			},
			StepParameters: func(c *call) { c.addParameter(ifMatchParameter()) },
			StepResponses:  noContent,
		},
	}
}

func initSingleton(c *call, rel string) error {
	if err := initElement(c, rel); err != nil {
		return err
	}
	if !c.source.IsSingleton() {
		return c.dispatchError("navigation source is not a singleton")
	}
	return nil
}

func newSingletonGet() *Handler {
	return &Handler{
		name:   "SingletonGet",
		kind:   odatapath.KindSingleton,
		method: http.MethodGet,
		init: func(c *call) error {
			if err := initSingleton(c, relGet); err != nil {
				return err
			}
			c.restrictions = readBase(c.readRestrictions(false))
			return nil
		},
		steps: map[Step]stepFunc{
			StepBasicInfo: func(c *call) {
				c.op.Summary = "Get " + c.source.Name
				c.op.OperationID = elementOperationID(c.source, "Get")
			},
			StepParameters: func(c *call) { singleQueryOptions(c, c.entityType) },
			StepResponses: func(c *call) {
				resp := entityResponse(c, c.entityType, "Retrieved entity")
				addNavigationLinks(c, resp, c.entityType)
			},
		},
	}
}

func newSingletonUpdate(method string) *Handler {
	verb, summary := "Update", "Update "
	if method == http.MethodPut {
		verb, summary = "Set", "Replace "
	}
	return &Handler{
		name:   "Singleton" + verb,
		kind:   odatapath.KindSingleton,
		method: method,
		init: func(c *call) error {
			if err := initSingleton(c, relUpdate); err != nil {
				return err
			}
			c.restrictions = updateBase(c.updateRestrictions())
			return nil
		},
		steps: map[Step]stepFunc{
			StepBasicInfo: func(c *call) {
				c.op.Summary = summary + c.source.Name
				c.op.OperationID = elementOperationID(c.source, verb)
			},
			StepResponses:   noContent,
			StepRequestBody: func(c *call) { entityBody(c, c.entityType, "New property values") },
		},
	}
}
