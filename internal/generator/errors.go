// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package generator

import (
	"errors"
	"fmt"
)

// Caller contract violations.
var (
	// ErrNilContext is returned when the context or its model is nil.
	ErrNilContext = errors.New("generator: nil context")

	// ErrNilPath is returned when the path is nil or empty.
	ErrNilPath = errors.New("generator: nil path")

	// ErrMissingSegment is returned when a path lacks a segment the handler requires.
	ErrMissingSegment = errors.New("generator: required segment missing")

	// ErrInvalidDispatch matches every DispatchError.
	ErrInvalidDispatch = errors.New("generator: invalid dispatch")
)

// DispatchError reports a handler invoked on a path shape it cannot serve.
// It indicates a bug in the caller's dispatch, not bad input.
type DispatchError struct {
	Handler string
	Path    string
	Reason  string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("handler %s cannot serve %s: %s", e.Handler, e.Path, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidDispatch) match.
func (e *DispatchError) Is(target error) bool {
	return target == ErrInvalidDispatch
}
