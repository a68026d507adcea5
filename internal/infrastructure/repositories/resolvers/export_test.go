package resolvers

import "time"

// NewEnvironmentResolverWithLookup builds an EnvironmentResolver over a fake environment.
func NewEnvironmentResolverWithLookup(lookup func(string) (string, bool)) *EnvironmentResolver {
	return &EnvironmentResolver{lookup: lookup}
}

// SetNow replaces the clock of a CachingResolver.
func SetNow(c *CachingResolver, now func() time.Time) {
	c.now = now
}

// ToEnvName exports toEnvName for testing.
var ToEnvName = toEnvName //nolint:gochecknoglobals // test export
