package entities

// ResolveSecret exports resolveSecret for testing.
var ResolveSecret = resolveSecret //nolint:gochecknoglobals // test export
