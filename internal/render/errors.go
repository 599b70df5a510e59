package render

import (
	"errors"
	"fmt"
)

var (
	ErrNilDocument = errors.New("nil_document")
	ErrEmptyOutput = errors.New("empty_output")
)

// InvariantViolationError is fatal: the layout cursor moved backward or a
// measurement came back non-finite. The render aborts rather than guessing a
// fallback height, which would return a visually broken document as success.
type InvariantViolationError struct {
	Section string
	StartY  float64
	EndY    float64
	Reason  string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("layout_invariant_violation: section %s (%s): startY=%.2f endY=%.2f",
		e.Section, e.Reason, e.StartY, e.EndY)
}

// FinalizeError is fatal: the rendering surface could not produce output.
type FinalizeError struct {
	Err error
}

func (e *FinalizeError) Error() string {
	return fmt.Sprintf("finalize_failed: %v", e.Err)
}

func (e *FinalizeError) Unwrap() error { return e.Err }
