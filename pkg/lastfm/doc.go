// Package lastfm provides a client library for the Last.fm API 2.0.
//
// # Overview
//
// This package implements the subset of the Last.fm API needed for
// retroactive scrobbling: the token-based authentication flow, batch
// track submission, and album lookups. It provides a type-safe API
// with context support and structured error handling.
//
// # Quick Start
//
// First, create a client with your API credentials:
//
//	import "github.com/omniverse/offline-scrobbler/pkg/lastfm"
//
//	client, err := lastfm.NewClient(lastfm.Config{
//	    APIKey:    "your-api-key",
//	    APISecret: "your-api-secret",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Authentication
//
// Last.fm uses a token-based authentication flow:
//
//  1. Get a token from Last.fm
//  2. Direct the user to authorize the token
//  3. Exchange the token for a session key
//  4. Store and reuse the session key
//
// Example:
//
//	token, err := client.Auth().GetToken(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Please visit:", client.Auth().GetAuthURL(token.Token))
//	fmt.Print("Press enter after authorizing...")
//	fmt.Scanln()
//
//	session, err := client.Auth().GetSession(ctx, token.Token)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client.SetSessionKey(session.Key)
//	// Store session.Key for future use
//
// # Scrobbling
//
// Once authenticated, tracks are submitted in batches of up to 50:
//
//	scrobbles := []lastfm.Scrobble{
//	    {Track: track1, Timestamp: time1},
//	    {Track: track2, Timestamp: time2},
//	}
//	resp, err := client.Scrobble().ScrobbleBatch(ctx, scrobbles)
//
// The response carries a per-track verdict: each submitted track is
// either accepted or ignored with a reason code. An ignored track is
// not an error at this layer; callers decide how to report it.
//
// # Error Handling
//
// Service-reported failures are returned as *lastfm.Error with the
// Last.fm error code and message:
//
//	resp, err := client.Scrobble().ScrobbleBatch(ctx, scrobbles)
//	if err != nil {
//	    var lastfmErr *lastfm.Error
//	    if errors.As(err, &lastfmErr) {
//	        fmt.Println("service error", lastfmErr.Code)
//	    }
//	}
//
// The client performs exactly one HTTP round trip per call. Transport
// failures are surfaced immediately; there is no retry logic.
//
// # API Coverage
//
// Currently implemented:
//   - Authentication (auth.getToken, auth.getSession)
//   - Scrobbling (track.scrobble)
//   - Album lookup (album.getInfo)
//
// # Last.fm API Documentation
//
// For more information about the Last.fm API:
// https://www.last.fm/api/scrobbling
package lastfm
