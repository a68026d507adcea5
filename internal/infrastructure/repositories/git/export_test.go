package git

import "time"

// SetNow replaces the clock of a PropertySource.
func SetNow(s *PropertySource, now func() time.Time) {
	s.now = now
}

// SetFetchAttempts changes how often a Client tries to fetch.
func SetFetchAttempts(c *Client, attempts uint) {
	c.fetchAttempts = attempts
}

// ClonePath returns the clone directory of location.
func ClonePath(c *CloneCache, location string) string {
	return c.path(location)
}

//nolint:gochecknoglobals // test exports
var (
	ClassifyTransportError = classifyTransportError
	CacheKey               = cacheKey
)
