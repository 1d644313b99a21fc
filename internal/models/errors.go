package models

import (
	"errors"
	"fmt"
)

// ErrCredentialsMissing means one or both API keys are unset. No network
// call is attempted; the caller should route the user to settings.
var ErrCredentialsMissing = errors.New("api keys not configured")

// CollaboratorError wraps a failure from an external collaborator (search,
// refinement, or generation). The core never retries these.
type CollaboratorError struct {
	Collaborator string
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Collaborator, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }
