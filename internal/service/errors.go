package service

import (
	"fmt"

	"github.com/skrapbuk/skrapbuk/pkg/validator"
)

// ValidationError carries per-field messages for a rejected payload. No
// mutation has happened when one of these is returned.
type ValidationError struct {
	Fields validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// AlreadyStartedError reports a pairing trigger against an event that has
// already been started, naming who started it.
type AlreadyStartedError struct {
	By string
}

func (e *AlreadyStartedError) Error() string {
	return fmt.Sprintf("event already started by %s", e.By)
}
