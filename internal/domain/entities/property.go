package entities

import "time"

// Property is a resolved key/value pair.
type Property struct {
	Key    string
	Value  string
	Source string // Name of the source that resolved it
	Commit string // Commit hash, empty for non-git sources
}

// Revision is the commit a git source is currently materialized at.
type Revision struct {
	Source    string
	Commit    string
	FetchedAt time.Time
}
