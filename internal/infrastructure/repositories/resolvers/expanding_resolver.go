package resolvers

import (
	"context"
	"fmt"
	"strings"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
	"github.com/rios0rios0/gitprops/internal/domain/repositories"
)

const (
	variablePrefix = "${"
	variableSuffix = "}"
	maxExpansions  = 32
)

// ExpandingResolver expands ${name} variables inside values resolved by the
// decorated resolver, looking the variables up through the same resolver.
// Unterminated or empty variables ("${name", "${}") are left as they are.
type ExpandingResolver struct {
	decorated repositories.Resolver
}

var _ repositories.Resolver = (*ExpandingResolver)(nil)

// NewExpandingResolver creates an ExpandingResolver.
func NewExpandingResolver(decorated repositories.Resolver) *ExpandingResolver {
	return &ExpandingResolver{decorated: decorated}
}

func (e *ExpandingResolver) Name() string { return e.decorated.Name() }

func (e *ExpandingResolver) Resolve(ctx context.Context, key string) (string, bool, error) {
	value, found, err := e.decorated.Resolve(ctx, key)
	if err != nil || !found {
		return value, found, err
	}

	expanded, err := e.expand(ctx, value, []string{key})
	if err != nil {
		return "", false, err
	}
	return expanded, true, nil
}

// expand replaces variables left to right; each variable value is expanded
// recursively with chain tracking the keys being expanded.
func (e *ExpandingResolver) expand(ctx context.Context, value string, chain []string) (string, error) {
	if len(chain) > maxExpansions {
		return "", fmt.Errorf("%w: nesting deeper than %d at %q", entities.ErrVariableExpansion, maxExpansions, chain[0])
	}

	var b strings.Builder
	rest := value
	for {
		start := strings.Index(rest, variablePrefix)
		if start < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		nameStart := start + len(variablePrefix)
		end := strings.Index(rest[nameStart:], variableSuffix)
		if end <= 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		name := rest[nameStart : nameStart+end]

		for _, seen := range chain {
			if seen == name {
				return "", fmt.Errorf("%w: cycle %s -> %s",
					entities.ErrVariableExpansion, strings.Join(chain, " -> "), name)
			}
		}

		resolved, found, err := e.decorated.Resolve(ctx, name)
		if err != nil {
			return "", fmt.Errorf("%w: %q: %w", entities.ErrVariableExpansion, name, err)
		}
		if !found {
			return "", fmt.Errorf("%w: variable %q cannot be resolved", entities.ErrVariableExpansion, name)
		}

		nested, err := e.expand(ctx, resolved, append(chain[:len(chain):len(chain)], name))
		if err != nil {
			return "", err
		}

		b.WriteString(rest[:start])
		b.WriteString(nested)
		rest = rest[nameStart+end+len(variableSuffix):]
	}
}
