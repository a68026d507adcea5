package entities

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// RefKind tells how the ref of a RepositoryReference is interpreted.
type RefKind string

const (
	// RefKindAuto lets the revision parser decide (refs/<ref>, tags, heads, hashes).
	RefKindAuto RefKind = "auto"

	// RefKindBranch reads refs/heads/<ref>.
	RefKindBranch RefKind = "branch"

	// RefKindTag reads refs/tags/<ref>, peeling annotated tags.
	RefKindTag RefKind = "tag"

	// RefKindCommit reads the commit with the given hash.
	RefKindCommit RefKind = "commit"

	// RefKindLatestTag reads the highest semantic-version tag. A non-empty ref is
	// used as a tag name prefix filter.
	RefKindLatestTag RefKind = "latest-tag"
)

// RepositoryReference identifies where properties are read from. It is immutable
// once constructed; use NewRepositoryReference to get a validated value.
type RepositoryReference struct {
	location string
	ref      string
	kind     RefKind
	auth     AuthConfig
}

// NewRepositoryReference validates and builds a RepositoryReference.
func NewRepositoryReference(
	location, ref string,
	kind RefKind,
	auth AuthConfig,
) (RepositoryReference, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return RepositoryReference{}, fmt.Errorf("%w: location is required", ErrInvalidReference)
	}
	if _, err := transport.NewEndpoint(location); err != nil {
		return RepositoryReference{}, fmt.Errorf("%w: location %q: %w", ErrInvalidReference, location, err)
	}

	if kind == "" {
		kind = RefKindAuto
	}
	switch kind {
	case RefKindAuto, RefKindLatestTag:
	case RefKindBranch, RefKindTag:
		if ref == "" {
			return RepositoryReference{}, fmt.Errorf("%w: %s ref requires a name", ErrInvalidReference, kind)
		}
	case RefKindCommit:
		if !plumbing.IsHash(ref) {
			return RepositoryReference{}, fmt.Errorf(
				"%w: %q is not a full commit hash", ErrInvalidReference, ref,
			)
		}
	default:
		return RepositoryReference{}, fmt.Errorf("%w: unknown ref kind %q", ErrInvalidReference, kind)
	}

	if auth.Type == "" {
		auth.Type = AuthTypeNone
	}
	if err := auth.Validate(); err != nil {
		return RepositoryReference{}, errors.Join(ErrInvalidReference, err)
	}

	return RepositoryReference{
		location: location,
		ref:      ref,
		kind:     kind,
		auth:     auth,
	}, nil
}

func (r RepositoryReference) Location() string { return r.location }
func (r RepositoryReference) Ref() string      { return r.ref }
func (r RepositoryReference) Kind() RefKind    { return r.kind }
func (r RepositoryReference) Auth() AuthConfig { return r.auth }

// IsLocalPath reports whether the location is a plain filesystem path, which is
// opened in place instead of being cloned. file:// URLs are cloned.
func (r RepositoryReference) IsLocalPath() bool {
	endpoint, err := transport.NewEndpoint(r.location)
	if err != nil {
		return false
	}
	return endpoint.Protocol == "file" && !strings.HasPrefix(r.location, "file://")
}

// Revision returns the revision expression handed to the revision parser.
// It is empty for RefKindLatestTag, which needs a tag scan instead.
func (r RepositoryReference) Revision() string {
	switch r.kind {
	case RefKindBranch:
		return plumbing.NewBranchReferenceName(r.ref).String()
	case RefKindTag:
		return plumbing.NewTagReferenceName(r.ref).String()
	case RefKindLatestTag:
		return ""
	default:
		if r.ref == "" {
			return plumbing.HEAD.String()
		}
		return r.ref
	}
}

func (r RepositoryReference) String() string {
	if r.ref == "" {
		return fmt.Sprintf("%s@%s", r.location, r.kind)
	}
	return fmt.Sprintf("%s@%s:%s", r.location, r.kind, r.ref)
}
