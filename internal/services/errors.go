package services

import (
	"errors"
	"fmt"
)

// Error kinds raised by the intake pipeline. Match them with errors.Is.
var (
	ErrMethodNotAllowed  = errors.New("method not allowed")
	ErrBadRequest        = errors.New("bad request")
	ErrExtraction        = errors.New("extraction error")
	ErrEmbedding         = errors.New("embedding error")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrUpstream          = errors.New("upstream error")
)

// IntakeError carries the user-visible message of a failed pipeline step.
type IntakeError struct {
	Kind    error
	Message string
	Err     error
}

func (e *IntakeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *IntakeError) Is(target error) bool {
	return e.Kind == target
}

func (e *IntakeError) Unwrap() error {
	return e.Err
}

func NewIntakeError(kind error, message string, err error) *IntakeError {
	return &IntakeError{Kind: kind, Message: message, Err: err}
}

// UserMessage returns the message shown to API callers for err.
func UserMessage(err error) string {
	var intakeErr *IntakeError
	if errors.As(err, &intakeErr) {
		return intakeErr.Message
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return "Internal Server Error"
}
