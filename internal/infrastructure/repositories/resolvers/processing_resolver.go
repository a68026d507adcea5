package resolvers

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/rios0rios0/gitprops/internal/domain/entities"
	"github.com/rios0rios0/gitprops/internal/domain/repositories"
)

type processFunc func(value string) (string, error)

//nolint:gochecknoglobals // fixed processor table
var processFuncs = map[entities.Processor]processFunc{
	entities.ProcessorBase64Decode:    decodeWith(base64.StdEncoding),
	entities.ProcessorBase64URLDecode: decodeWith(base64.URLEncoding),
	entities.ProcessorTrim: func(value string) (string, error) {
		return strings.TrimSpace(value), nil
	},
}

func decodeWith(encoding *base64.Encoding) processFunc {
	return func(value string) (string, error) {
		decoded, err := encoding.DecodeString(strings.TrimSpace(value))
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	}
}

// ProcessingResolver runs the configured processors over every value of the
// decorated source. Listing and refreshing are passed through to the source.
type ProcessingResolver struct {
	decorated  repositories.Resolver
	processors []entities.Processor
}

var (
	_ repositories.Resolver       = (*ProcessingResolver)(nil)
	_ repositories.PropertyLister = (*ProcessingResolver)(nil)
	_ repositories.Refresher      = (*ProcessingResolver)(nil)
)

// NewProcessingResolver creates a ProcessingResolver. Unknown processors are
// rejected here rather than on the first lookup.
func NewProcessingResolver(
	decorated repositories.Resolver,
	processors []entities.Processor,
) (*ProcessingResolver, error) {
	for _, processor := range processors {
		if _, ok := processFuncs[processor]; !ok {
			return nil, fmt.Errorf("source %q: unsupported processor %q", decorated.Name(), processor)
		}
	}
	return &ProcessingResolver{decorated: decorated, processors: processors}, nil
}

func (p *ProcessingResolver) Name() string { return p.decorated.Name() }

func (p *ProcessingResolver) Resolve(ctx context.Context, key string) (string, bool, error) {
	value, found, err := p.decorated.Resolve(ctx, key)
	if err != nil || !found {
		return value, found, err
	}
	processed, err := p.process(key, value)
	if err != nil {
		return "", false, err
	}
	return processed, true, nil
}

func (p *ProcessingResolver) Properties(ctx context.Context) ([]entities.Property, error) {
	lister, ok := p.decorated.(repositories.PropertyLister)
	if !ok {
		return nil, fmt.Errorf("source %q cannot list its properties", p.Name())
	}
	properties, err := lister.Properties(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]entities.Property, len(properties))
	for i, property := range properties {
		value, processErr := p.process(property.Key, property.Value)
		if processErr != nil {
			return nil, processErr
		}
		property.Value = value
		result[i] = property
	}
	return result, nil
}

func (p *ProcessingResolver) Refresh(ctx context.Context) (entities.Revision, error) {
	refresher, ok := p.decorated.(repositories.Refresher)
	if !ok {
		return entities.Revision{}, fmt.Errorf("source %q cannot be refreshed", p.Name())
	}
	return refresher.Refresh(ctx)
}

func (p *ProcessingResolver) process(key, value string) (string, error) {
	for _, processor := range p.processors {
		processed, err := processFuncs[processor](value)
		if err != nil {
			return "", entities.NewSourceError(
				p.Name(), entities.ErrProcessing, fmt.Errorf("%s of %q: %w", processor, key, err),
			)
		}
		value = processed
	}
	return value, nil
}
