package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
)

// classifyTransportError maps a clone/fetch/list failure onto an error kind.
// The returned bool tells whether retrying may help.
func classifyTransportError(location string, err error) (error, bool) {
	switch {
	case errors.Is(err, transport.ErrAuthenticationRequired),
		errors.Is(err, transport.ErrAuthorizationFailed),
		errors.Is(err, transport.ErrInvalidAuthMethod),
		strings.Contains(err.Error(), "unable to authenticate"):
		return fmt.Errorf("%w: %q: %w", entities.ErrAuthenticationFailed, location, err), false

	case errors.Is(err, transport.ErrEmptyRemoteRepository):
		return fmt.Errorf("%w: %q has no commits: %w", entities.ErrRefNotFound, location, err), false

	case errors.Is(err, transport.ErrRepositoryNotFound),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %q: %w", entities.ErrRepositoryUnreachable, location, err), false

	default:
		return fmt.Errorf("%w: %q: %w", entities.ErrRepositoryUnreachable, location, err), true
	}
}
