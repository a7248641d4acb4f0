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

// Operation kind markers.
const (
	operationTypeFunction  = "function"
	operationTypeAction    = "action"
	operationTypeOperation = "operation"
)

// invoked returns the operation the path ends with, bound or imported.
func invoked(path *odatapath.Path) *edm.Operation {
	switch s := path.Last().(type) {
	case *odatapath.OperationSegment:
		return s.Operation
	case *odatapath.OperationImportSegment:
		return s.Import.Operation
	}
	return nil
}

// initInvocation checks that the operation the path ends with matches the
// method: functions are invoked with GET, actions with POST.
func initInvocation(c *call, method string) (*edm.Operation, error) {
	op := invoked(c.path)
	if op == nil {
		return nil, missingSegment(c, "operation")
	}
	if op.IsAction() != (method == http.MethodPost) {
		return nil, c.dispatchError(op.FullName() + " cannot be invoked with " + method)
	}
	c.linkRelKey = relFunction
	if op.IsAction() {
		c.linkRelKey = relAction
	}
	c.restrictions = operationBase(c.operationRestrictions())
	return op, nil
}

func invocationSummary(op *edm.Operation) string {
	if op.IsAction() {
		return "Invoke action " + op.Name
	}
	return "Invoke function " + op.Name
}

func newOperationHandler(method string) *Handler {
	name := "FunctionGet"
	if method == http.MethodPost {
		name = "ActionPost"
	}
	return &Handler{
		name:   name,
		kind:   odatapath.KindOperation,
		method: method,
		init: func(c *call) error {
			op, err := initInvocation(c, method)
			if err != nil {
				return err
			}
			if !op.IsBound {
				return c.dispatchError(op.FullName() + " is not bound")
			}
			c.tag = operationTag(c.path, op)
			c.tagExt = map[string]interface{}{tocTypeKey: tocContainer}
			return nil
		},
		steps: map[Step]stepFunc{
			StepBasicInfo: func(c *call) {
				op := invoked(c.path)
				c.op.Summary = invocationSummary(op)
				c.op.OperationID = OperationID(c.ctx.Model, c.path)
			},
			StepResponses:   func(c *call) { operationResponse(c, invoked(c.path)) },
			StepRequestBody: func(c *call) { actionBody(c, invoked(c.path)) },
			StepExtensions: func(c *call) {
				if invoked(c.path).IsAction() {
					c.op.Extensions[operationTypeKey] = operationTypeAction
				} else {
					c.op.Extensions[operationTypeKey] = operationTypeFunction
				}
			},
		},
	}
}

func newOperationImportHandler(method string) *Handler {
	name, prefix := "FunctionImportGet", "FunctionImport."
	if method == http.MethodPost {
		name, prefix = "ActionImportPost", "ActionImport."
	}
	return &Handler{
		name:   name,
		kind:   odatapath.KindOperationImport,
		method: method,
		init: func(c *call) error {
			if _, err := initInvocation(c, method); err != nil {
				return err
			}
			seg, ok := c.path.Last().(*odatapath.OperationImportSegment)
			if !ok {
				return c.dispatchError("last segment is not an operation import")
			}
			imp := seg.Import
			c.tag = imp.Name
			if imp.EntitySet != "" {
				c.tag = imp.EntitySet
			}
			c.tagExt = map[string]interface{}{tocTypeKey: tocContainer}
			return nil
		},
		steps: map[Step]stepFunc{
			StepBasicInfo: func(c *call) {
				c.op.Summary = invocationSummary(invoked(c.path))
				c.op.OperationID = prefix + OperationID(c.ctx.Model, c.path)
			},
			StepResponses:   func(c *call) { operationResponse(c, invoked(c.path)) },
			StepRequestBody: func(c *call) { actionBody(c, invoked(c.path)) },
			StepExtensions:  func(c *call) { c.op.Extensions[operationTypeKey] = operationTypeOperation },
		},
	}
}

// operationResponse sets the success response of an invocation. An
// operation without a return type answers 204.
func operationResponse(c *call, op *edm.Operation) {
	if op.ReturnType == "" {
		c.op.Responses.Set(successCode(c, statusNoContent), &types.Response{Description: "Success"})
		return
	}
	elem, many := util.CollectionElementType(op.ReturnType)
	t := c.ctx.Model.FindEntityType(elem)
	switch {
	case many && t != nil:
		entityCollectionResponse(c, t)
	case many:
		valueCollectionResponse(c, elem)
	case t != nil:
		entityResponse(c, t, "Success")
	default:
		c.op.Responses.Set(successCode(c, statusOK), &types.Response{
			Description: "Success",
			Content:     responseContent(c, schema.ForType(c.ctx.Model, op.ReturnType)),
		})
	}
}

// actionBody sets the request body of an action from its non-binding
// parameters. Functions take their parameters in the path.
func actionBody(c *call, op *edm.Operation) {
	if !op.IsAction() {
		return
	}
	params := op.NonBindingParameters()
	if len(params) == 0 {
		return
	}
	body := &types.Schema{Type: "object", Properties: make(map[string]*types.Schema, len(params))}
	for _, p := range params {
		s := schema.ForType(c.ctx.Model, p.Type)
		if p.Nullable && s.Ref == "" && s.Type != "array" {
			s.Nullable = true
		}
		body.Properties[p.Name] = s
		if !p.Nullable && !p.Optional {
			body.Required = append(body.Required, p.Name)
		}
	}
	c.op.RequestBody = &types.RequestBody{
		Description: "Action parameters",
		Required:    true,
		Content:     requestContent(c, body),
	}
}
