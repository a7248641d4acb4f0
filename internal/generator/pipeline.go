// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package generator

import (
	"fmt"
	"slices"

	"github.com/api2spec/odata2openapi/internal/edm"
	"github.com/api2spec/odata2openapi/internal/odatapath"
	"github.com/api2spec/odata2openapi/internal/vocab"
	"github.com/api2spec/odata2openapi/pkg/types"
)

// Step names one stage of the operation pipeline.
type Step int

// Pipeline steps.
const (
	StepBasicInfo Step = iota
	StepDeprecation
	StepExternalDocs
	StepSecurity
	StepParameters
	StepResponses
	StepRequestBody
	StepTags
	StepExtensions
)

var stepNames = [...]string{
	"BasicInfo", "Deprecation", "ExternalDocs", "Security", "Parameters",
	"Responses", "RequestBody", "Tags", "Extensions",
}

func (s Step) String() string {
	if int(s) < len(stepNames) {
		return stepNames[s]
	}
	return "Unknown"
}

// pipelineOrder is the order steps run in. Parameters must precede
// Responses: response links are built from the assembled path parameters.
var pipelineOrder = []Step{
	StepBasicInfo,
	StepDeprecation,
	StepExternalDocs,
	StepSecurity,
	StepParameters,
	StepResponses,
	StepRequestBody,
	StepTags,
	StepExtensions,
}

type stepFunc func(c *call)

// baseSteps hold the behavior shared by every handler.
var baseSteps = map[Step]stepFunc{
	StepBasicInfo:    baseBasicInfo,
	StepDeprecation:  setDeprecation,
	StepExternalDocs: setExternalDocs,
	StepSecurity:     setSecurity,
	StepParameters:   baseParameters,
	StepResponses:    baseResponses,
	StepTags:         baseTags,
	StepExtensions:   setPagination,
}

// Handler builds the operation for one path kind and HTTP method.
// Handlers are immutable; all per-call state lives in a call value.
type Handler struct {
	name   string
	kind   odatapath.Kind
	method string
	init   func(c *call) error
	steps  map[Step]stepFunc
}

// Name returns the handler name, e.g. "EntitySetGet".
func (h *Handler) Name() string { return h.name }

// Kind returns the path kind the handler serves.
func (h *Handler) Kind() odatapath.Kind { return h.kind }

// Method returns the HTTP method the handler serves.
func (h *Handler) Method() string { return h.method }

// CreateOperation builds the operation for path.
func (h *Handler) CreateOperation(ctx *Context, path *odatapath.Path) (*types.Operation, error) {
	if ctx == nil || ctx.Model == nil {
		return nil, ErrNilContext
	}
	if path == nil || path.Len() == 0 {
		return nil, ErrNilPath
	}
	if err := checkSegments(path); err != nil {
		return nil, err
	}

	c := newCall(ctx, path, h)
	if h.init != nil {
		if err := h.init(c); err != nil {
			return nil, err
		}
	}
	for _, step := range pipelineOrder {
		h.run(step, c)
	}
	return c.op, nil
}

// checkSegments rejects segments whose model element is missing.
func checkSegments(path *odatapath.Path) error {
	for i, s := range path.Segments() {
		if !hasElement(s) {
			return fmt.Errorf("%w: %s segment at %d has no model element", ErrMissingSegment, s.Kind(), i)
		}
	}
	return nil
}

func hasElement(s odatapath.Segment) bool {
	switch seg := s.(type) {
	case *odatapath.NavigationSourceSegment:
		return seg != nil && seg.Source != nil && seg.Source.EntityType != nil
	case *odatapath.KeySegment:
		return seg != nil && seg.Type != nil && len(seg.Keys) > 0 && !slices.Contains(seg.Keys, nil)
	case *odatapath.NavigationPropertySegment:
		return seg != nil && seg.Property != nil && seg.Target != nil
	case *odatapath.OperationSegment:
		return seg != nil && seg.Operation != nil
	case *odatapath.OperationImportSegment:
		return seg != nil && seg.Import != nil && seg.Import.Operation != nil
	case *odatapath.TypeCastSegment:
		return seg != nil && seg.Type != nil
	case *odatapath.ComplexPropertySegment:
		return seg != nil && seg.Property != nil && seg.Type != nil
	case *odatapath.StreamPropertySegment:
		return seg != nil && seg.Property != nil
	}
	return s != nil
}

// run executes one step. The shape-specific function runs before the shared
// one, except for parameters where shape query options follow the path and
// custom parameters.
func (h *Handler) run(step Step, c *call) {
	shape, base := h.steps[step], baseSteps[step]
	if step == StepParameters {
		if base != nil {
			base(c)
		}
		if shape != nil {
			shape(c)
		}
		return
	}
	if shape != nil {
		shape(c)
	}
	if base != nil {
		base(c)
	}
}

// call is the state of one CreateOperation invocation.
type call struct {
	ctx     *Context
	path    *odatapath.Path
	handler *Handler
	op      *types.Operation

	// targetPath is the annotation target of the exact path
	targetPath string

	// linkRelKey selects the custom link relation for external docs
	linkRelKey string

	source     *edm.NavigationSource
	entityType *edm.EntityType
	nav        *odatapath.NavigationPropertySegment

	// targets are broader annotation targets, most specific first
	targets []string

	// restrictions is the resolved record whose shared fields feed
	// descriptions, security and custom parameters
	restrictions *vocab.RestrictionBase

	// tag is the tag name the operation is filed under
	tag    string
	tagExt map[string]interface{}

	// pageable marks a collection-valued success payload
	pageable bool
}

func newCall(ctx *Context, path *odatapath.Path, h *Handler) *call {
	c := &call{
		ctx:        ctx,
		path:       path,
		handler:    h,
		op:         types.NewOperation(),
		targetPath: path.TargetPath(ctx.Model.ContainerName()),
		source:     path.Source(),
		entityType: path.EntityType(),
		nav:        path.LastNavigationProperty(),
	}
	c.targets = scopes(path)
	return c
}

// baseBasicInfo applies restriction descriptions and the operation id switch.
func baseBasicInfo(c *call) {
	if r := c.restrictions; r != nil {
		if r.Description != nil {
			c.op.Summary = *r.Description
		}
		if r.LongDescription != nil {
			c.op.Description = *r.LongDescription
		}
	}
	if c.op.Description == "" {
		for _, target := range c.targets {
			if d := c.ctx.longDescription(target); d != "" {
				c.op.Description = d
				break
			}
			if d := c.ctx.description(target); d != "" {
				c.op.Description = d
				break
			}
		}
	}
	if !c.ctx.Settings.EnableOperationID {
		c.op.OperationID = ""
	}
}

// baseResponses appends the shared error response, always last.
func baseResponses(c *call) {
	c.op.Responses.Set("default", &types.Response{Ref: errorResponseRef()})
}

// baseTags files the operation under the tag chosen by the handler.
func baseTags(c *call) {
	if c.tag == "" {
		return
	}
	c.op.AddTag(c.tag)
	c.ctx.registerTag(c.tag, c.tagExt)
}
