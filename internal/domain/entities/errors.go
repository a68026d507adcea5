package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds reported by property sources. Callers match them with errors.Is to
// decide between falling back to another source and failing hard.
var (
	ErrRepositoryUnreachable = errors.New("repository unreachable")
	ErrAuthenticationFailed  = errors.New("authentication failed")
	ErrRefNotFound           = errors.New("ref not found")
	ErrFileNotFound          = errors.New("file not found")
	ErrParse                 = errors.New("malformed property file")
	ErrKeyNotFound           = errors.New("property not found")
	ErrVariableExpansion     = errors.New("variable expansion failed")
	ErrInvalidReference      = errors.New("invalid repository reference")
	ErrProcessing            = errors.New("value processing failed")
)

// SourceError ties an error kind to the source that raised it and the cause.
type SourceError struct {
	Source string
	Kind   error
	Err    error
}

// NewSourceError builds a SourceError. A nil cause is allowed.
func NewSourceError(source string, kind, err error) *SourceError {
	return &SourceError{Source: source, Kind: kind, Err: err}
}

func (e *SourceError) Error() string {
	switch {
	case e.Err == nil:
		return fmt.Sprintf("source %q: %v", e.Source, e.Kind)
	case e.Kind == nil || errors.Is(e.Err, e.Kind):
		return fmt.Sprintf("source %q: %v", e.Source, e.Err)
	default:
		return fmt.Sprintf("source %q: %v: %v", e.Source, e.Kind, e.Err)
	}
}

// Unwrap exposes both the kind and the cause.
func (e *SourceError) Unwrap() []error {
	errs := make([]error, 0, 2) //nolint:mnd // kind and cause
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// UnresolvedError is returned by strict resolution when some keys have no value.
type UnresolvedError struct {
	Keys []string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("%v: %s", ErrKeyNotFound, strings.Join(e.Keys, ", "))
}

func (e *UnresolvedError) Unwrap() error { return ErrKeyNotFound }

// KindOf returns the error kind err carries, or nil if it carries none.
func KindOf(err error) error {
	for _, kind := range []error{
		ErrAuthenticationFailed,
		ErrRepositoryUnreachable,
		ErrRefNotFound,
		ErrFileNotFound,
		ErrParse,
		ErrKeyNotFound,
		ErrVariableExpansion,
		ErrInvalidReference,
		ErrProcessing,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
