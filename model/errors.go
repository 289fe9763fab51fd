package model

import (
	"errors"
	"fmt"
	"strings"
)

// Typed failures surfaced by the contract engine. Handlers map these to HTTP
// status codes; none are swallowed internally.
var (
	ErrTemplateNotFound    = errors.New("template not found")
	ErrDuplicateTemplate   = errors.New("template already registered")
	ErrInvalidVariableKey  = errors.New("variable key not substitutable")
	ErrPropertyNotFound    = errors.New("property not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrContractNotFound    = errors.New("contract not found")
	ErrPartyNotFound       = errors.New("party not found")
	ErrDuplicateContractID = errors.New("contract id already exists")
	ErrResignNotAllowed    = errors.New("party has already signed")
)

// MissingVariablesError reports required template variables that are absent or
// empty in a generation request. Keys follow template declaration order.
type MissingVariablesError struct {
	Keys []string
}

func (e *MissingVariablesError) Error() string {
	return fmt.Sprintf("missing required variables: %s", strings.Join(e.Keys, ", "))
}

// RenderError wraps a failure of the external renderer so callers can tell it
// apart from validation failures.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render failed: %v", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
