package lastfm

import (
	"time"
)

// Track represents a music track for scrobbling.
type Track struct {
	Artist      string // Required: Artist name
	Track       string // Required: Track name
	Album       string // Optional: Album name
	AlbumArtist string // Optional: Album artist (if different from track artist)
	Duration    int    // Optional: Track duration in seconds
	TrackNumber int    // Optional: Track number on album
	MBTrackID   string // Optional: MusicBrainz track ID
}

// Scrobble represents a single scrobble with timestamp.
//
// The timestamp marks the moment the track started playing, per the
// Last.fm protocol.
type Scrobble struct {
	Track     Track     // The track being scrobbled
	Timestamp time.Time // When the track started playing
}

// Token represents an authentication token from auth.getToken.
type Token struct {
	Token string // The authentication token
}

// Session represents an authenticated session from auth.getSession.
type Session struct {
	Key        string // Session key for authenticated requests
	Username   string // Last.fm username
	Subscriber bool   // Whether user is a subscriber
}

// ScrobbleResult is the service's verdict for one submitted track.
//
// IgnoredCode zero means the track was accepted; any other code means
// the service recorded nothing and IgnoredText explains why (track too
// short, timestamp too old, and so on).
type ScrobbleResult struct {
	Artist      string
	Track       string
	Album       string
	Timestamp   int64
	IgnoredCode int
	IgnoredText string
}

// Accepted reports whether the service accepted the scrobble.
func (r ScrobbleResult) Accepted() bool {
	return r.IgnoredCode == 0
}

// ScrobbleResponse represents the response from track.scrobble.
type ScrobbleResponse struct {
	Accepted int // Number of scrobbles accepted
	Ignored  int // Number of scrobbles ignored
	Results  []ScrobbleResult
}

// AlbumTrack is one track of an album from album.getInfo.
type AlbumTrack struct {
	Rank     int    // 1-based position on the album
	Title    string // Track title
	Duration int    // Track length in seconds, 0 if unknown
}

// AlbumInfo represents the response from album.getInfo.
type AlbumInfo struct {
	Artist string
	Title  string
	Tracks []AlbumTrack
}
