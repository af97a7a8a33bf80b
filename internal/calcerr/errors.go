// Package calcerr defines the failure taxonomy shared by every stage of the
// calculation pipeline.
package calcerr

import (
	"errors"
	"fmt"
)

// Kind identifies the pipeline stage that failed.
type Kind string

const (
	Classification Kind = "classification"
	Extraction     Kind = "extraction"
	Evaluation     Kind = "evaluation"
	IO             Kind = "io"
)

// Error is a pipeline failure with a human-readable reason.
type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Reason
	}
	if e.Reason == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns a failure of the given kind with a formatted reason.
func New(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and reason to err. A nil err yields nil.
func Wrap(kind Kind, err error, reason string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Reason: reason, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain, or "" when err
// is not a pipeline failure.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}
