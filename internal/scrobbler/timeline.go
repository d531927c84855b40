package scrobbler

import (
	"time"

	"github.com/rs/zerolog"
)

// DefaultTrackDuration is substituted when a track's length is unknown
// or unparseable. Last.fm only needs a plausible play-start sequence
// for retroactive scrobbles, not exact lengths, so an average track
// length is good enough and never aborts a batch.
const DefaultTrackDuration = 3 * time.Minute

// Track is one entry of a playback batch. Order is meaningful: the
// first track is the one played earliest.
type Track struct {
	Artist   string
	Title    string
	Album    string        // empty when unknown
	Duration time.Duration // 0 when unknown
}

// PlanTimeline reconstructs play-start timestamps for a batch of tracks
// played back to back.
//
// Playback is treated as contiguous, starting at now-offset: the i-th
// track starts when all earlier tracks have finished, so its timestamp
// is the start instant plus the sum of the preceding durations. If the
// requested start would make playback run past now, the whole timeline
// shifts back so the final track finishes exactly at now; the last
// assigned timestamp therefore never lies in the future.
//
// The single time sample is taken by the caller: for a fixed now the
// result is fully deterministic, and timestamps are non-decreasing in
// playback order.
func PlanTimeline(now time.Time, offset time.Duration, tracks []Track, logger zerolog.Logger) []Scrobble {
	durations := make([]time.Duration, len(tracks))
	var total time.Duration
	for i, t := range tracks {
		d := t.Duration
		if d <= 0 {
			logger.Debug().
				Str("artist", t.Artist).
				Str("track", t.Title).
				Dur("default", DefaultTrackDuration).
				Msg("Unknown track duration, substituting default")
			d = DefaultTrackDuration
		}
		durations[i] = d
		total += d
	}

	start := now.Add(-offset)
	if end := start.Add(total); end.After(now) {
		// Keep playback entirely in the past.
		start = now.Add(-total)
	}

	scrobbles := make([]Scrobble, len(tracks))
	elapsed := time.Duration(0)
	for i, t := range tracks {
		if !IsEligible(durations[i]) {
			logger.Warn().
				Str("artist", t.Artist).
				Str("track", t.Title).
				Dur("duration", durations[i]).
				Msg("Track is shorter than the scrobble minimum; Last.fm will likely ignore it")
		}

		scrobbles[i] = Scrobble{
			Artist:    t.Artist,
			Track:     t.Title,
			Album:     t.Album,
			Duration:  durations[i],
			Timestamp: start.Add(elapsed),
		}
		elapsed += durations[i]
	}

	return scrobbles
}
