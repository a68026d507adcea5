package commands

// ResolveKeys exports resolveKeys for testing.
var ResolveKeys = resolveKeys //nolint:gochecknoglobals // test export
