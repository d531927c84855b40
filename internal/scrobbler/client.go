// Package scrobbler plans and submits retroactive scrobbles.
//
// It sits between the CLI and the Last.fm SDK: the timeline planner
// assigns play-start timestamps to a batch of tracks, and the client
// submits the batch and folds the service's per-track verdicts into a
// report the CLI can print.
package scrobbler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/omniverse/offline-scrobbler/pkg/lastfm"
)

// ErrNoneAccepted is returned by Submit when the service ignored every
// track in the batch. The run fails in that case; a partially ignored
// batch does not.
var ErrNoneAccepted = errors.New("no tracks were accepted")

// Scrobble is one planned submission: a track plus its assigned
// play-start timestamp.
type Scrobble struct {
	Artist    string
	Track     string
	Album     string
	Timestamp time.Time
	Duration  time.Duration
}

// Outcome is the service's verdict for one submitted track.
type Outcome struct {
	Artist    string
	Track     string
	Timestamp time.Time
	Accepted  bool
	Reason    string // ignore reason when not accepted
}

// Report aggregates the per-track outcomes of one submission batch.
type Report struct {
	Accepted int
	Ignored  int
	Outcomes []Outcome
}

// Client wraps the Last.fm API client.
type Client struct {
	client *lastfm.Client
	logger zerolog.Logger
}

// zerologAdapter lets the SDK's debug output flow into zerolog.
type zerologAdapter struct {
	logger zerolog.Logger
}

func (a zerologAdapter) Debugf(format string, args ...interface{}) {
	a.logger.Debug().Msgf(format, args...)
}

// New creates a new Last.fm client without a session key. Only the
// auth flow and unauthenticated reads work on it.
func New(apiKey, apiSecret string, logger zerolog.Logger) (*Client, error) {
	return newClient(apiKey, apiSecret, "", logger)
}

// NewWithSession creates a new Last.fm client with an existing session key.
func NewWithSession(apiKey, apiSecret, sessionKey string, logger zerolog.Logger) (*Client, error) {
	return newClient(apiKey, apiSecret, sessionKey, logger)
}

// newClient rejects incomplete credentials up front. A config file can
// carry a session key without the API key pair (hand-edited, or a
// single env override), so this is an expected configuration error,
// not a programming error.
func newClient(apiKey, apiSecret, sessionKey string, logger zerolog.Logger) (*Client, error) {
	client, err := lastfm.NewClient(lastfm.Config{
		APIKey:     apiKey,
		APISecret:  apiSecret,
		SessionKey: sessionKey,
		Logger:     zerologAdapter{logger: logger},
	})
	if err != nil {
		return nil, fmt.Errorf("invalid Last.fm credentials: %w", err)
	}
	return &Client{
		client: client,
		logger: logger,
	}, nil
}

// AuthenticateWithToken initiates the authentication flow.
// Returns the token and the auth URL that the user should visit.
func (c *Client) AuthenticateWithToken(ctx context.Context) (token string, authURL string, err error) {
	tokenResp, err := c.client.Auth().GetToken(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to get auth token: %w", err)
	}

	authURL = c.client.Auth().GetAuthURL(tokenResp.Token)
	return tokenResp.Token, authURL, nil
}

// GetSession completes the authentication flow after user authorization.
// Returns the session key that should be stored for future use.
func (c *Client) GetSession(ctx context.Context, token string) (sessionKey string, err error) {
	session, err := c.client.Auth().GetSession(ctx, token)
	if err != nil {
		return "", fmt.Errorf("failed to login with token: %w", err)
	}

	if session.Key == "" {
		return "", fmt.Errorf("received empty session key")
	}

	c.client.SetSessionKey(session.Key)
	c.logger.Info().Str("user", session.Username).Msg("Authenticated with Last.fm")

	return session.Key, nil
}

// AlbumTracks resolves an album's ordered track list from Last.fm.
// Durations are zero where the service does not know them; the planner
// substitutes a default later.
func (c *Client) AlbumTracks(ctx context.Context, artist, album string) ([]Track, error) {
	info, err := c.client.Album().GetInfo(ctx, artist, album)
	if err != nil {
		return nil, fmt.Errorf("failed to look up album: %w", err)
	}
	if len(info.Tracks) == 0 {
		return nil, fmt.Errorf("album %q by %q has no track listing", album, artist)
	}

	tracks := make([]Track, len(info.Tracks))
	for i, t := range info.Tracks {
		tracks[i] = Track{
			Artist:   artist,
			Title:    t.Title,
			Album:    info.Title,
			Duration: time.Duration(t.Duration) * time.Second,
		}
	}
	return tracks, nil
}

// Submit sends one batch of planned scrobbles in a single signed call
// and classifies the per-track verdicts.
//
// Individual ignored tracks are expected (too short, too old) and do
// not fail the run; only a batch where nothing was accepted returns
// ErrNoneAccepted alongside the report. A response whose per-track
// entries do not line up with the submitted batch is a protocol error.
func (c *Client) Submit(ctx context.Context, scrobbles []Scrobble) (*Report, error) {
	if len(scrobbles) == 0 {
		return nil, fmt.Errorf("nothing to scrobble")
	}

	lfmScrobbles := make([]lastfm.Scrobble, len(scrobbles))
	for i, s := range scrobbles {
		lfmScrobbles[i] = lastfm.Scrobble{
			Track: lastfm.Track{
				Artist:   s.Artist,
				Track:    s.Track,
				Album:    s.Album,
				Duration: int(s.Duration.Seconds()),
			},
			Timestamp: s.Timestamp,
		}
	}

	resp, err := c.client.Scrobble().ScrobbleBatch(ctx, lfmScrobbles)
	if err != nil {
		return nil, fmt.Errorf("failed to scrobble batch: %w", err)
	}

	if len(resp.Results) != len(scrobbles) {
		return nil, fmt.Errorf("malformed scrobble response: submitted %d tracks, got %d verdicts",
			len(scrobbles), len(resp.Results))
	}

	report := &Report{
		Accepted: resp.Accepted,
		Ignored:  resp.Ignored,
		Outcomes: make([]Outcome, len(scrobbles)),
	}

	for i, result := range resp.Results {
		outcome := Outcome{
			Artist:    scrobbles[i].Artist,
			Track:     scrobbles[i].Track,
			Timestamp: scrobbles[i].Timestamp,
			Accepted:  result.Accepted(),
		}
		if !result.Accepted() {
			outcome.Reason = result.IgnoredText
			if outcome.Reason == "" {
				outcome.Reason = fmt.Sprintf("ignored with code %d", result.IgnoredCode)
			}
			c.logger.Warn().
				Str("artist", outcome.Artist).
				Str("track", outcome.Track).
				Str("reason", outcome.Reason).
				Msg("Scrobble ignored")
		}
		report.Outcomes[i] = outcome
	}

	if report.Accepted == 0 {
		return report, ErrNoneAccepted
	}

	return report, nil
}
