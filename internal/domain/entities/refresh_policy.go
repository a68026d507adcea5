package entities

import (
	"fmt"
	"time"
)

// RefreshMode controls when a git source fetches again.
type RefreshMode string

const (
	// RefreshOnce materializes lazily on first lookup and afterwards only on an
	// explicit refresh.
	RefreshOnce RefreshMode = "once"

	// RefreshInterval refreshes on lookup once the snapshot is older than Interval.
	RefreshInterval RefreshMode = "interval"

	// RefreshAlways fetches before every lookup.
	RefreshAlways RefreshMode = "always"
)

// RefreshPolicy is the caching policy of a git source.
type RefreshPolicy struct {
	Mode     RefreshMode   `yaml:"mode"`
	Interval time.Duration `yaml:"interval"`
}

// Validate checks the mode and that interval mode carries a positive interval.
func (p RefreshPolicy) Validate() error {
	switch p.Mode {
	case "", RefreshOnce, RefreshAlways:
		return nil
	case RefreshInterval:
		if p.Interval <= 0 {
			return fmt.Errorf("refresh interval must be positive, got %s", p.Interval)
		}
		return nil
	default:
		return fmt.Errorf("unknown refresh mode %q", p.Mode)
	}
}

// Stale reports whether a snapshot fetched at fetchedAt must be refreshed at now.
func (p RefreshPolicy) Stale(fetchedAt, now time.Time) bool {
	switch p.Mode {
	case RefreshAlways:
		return true
	case RefreshInterval:
		return now.Sub(fetchedAt) >= p.Interval
	default:
		return false
	}
}
