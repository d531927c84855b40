package scrobbler

import (
	"time"
)

// Last.fm scrobbling rules constants
const (
	// MinimumTrackDuration is the minimum track length required for scrobbling (30 seconds)
	MinimumTrackDuration = 30 * time.Second
)

// IsEligible checks if a track is eligible for scrobbling based on its
// duration alone. Shorter tracks are still submitted - the service's
// verdict is authoritative - but the planner warns about them up front
// so an ignored result is no surprise.
func IsEligible(trackDuration time.Duration) bool {
	return trackDuration >= MinimumTrackDuration
}
