// Package bandcamp turns a Bandcamp album page into an ordered track
// list suitable for scrobbling.
//
// Bandcamp embeds the full album data as JSON in a data-tralbum
// attribute on the page, so no HTML parsing beyond locating and
// unescaping that attribute is needed.
package bandcamp

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/omniverse/offline-scrobbler/internal/scrobbler"
)

// Client fetches and parses Bandcamp album pages.
type Client struct {
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a Bandcamp page client with a bounded timeout.
func NewClient(logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// FetchAlbum downloads an album page and returns its track list in
// album order.
func (c *Client) FetchAlbum(ctx context.Context, pageURL string) ([]scrobbler.Track, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "offline-scrobbler/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch album page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching album page", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read album page: %w", err)
	}

	tracks, err := ParseAlbumPage(string(body))
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Int("tracks", len(tracks)).Str("url", pageURL).Msg("Parsed album page")
	return tracks, nil
}

// jsonAlbum represents the deserialized data-tralbum JSON.
type jsonAlbum struct {
	Artist  string `json:"artist"`
	Current struct {
		Title string `json:"title"`
	} `json:"current"`
	Tracks []jsonTrack `json:"trackinfo"`
}

// jsonTrack represents one trackinfo entry.
type jsonTrack struct {
	Title    string  `json:"title"`
	Duration float64 `json:"duration"` // seconds, may be 0 or absent
}

// ParseAlbumPage extracts the track list from a Bandcamp album or
// track page's HTML.
//
// Returns an error if the data-tralbum attribute cannot be found or
// its JSON cannot be parsed.
func ParseAlbumPage(htmlContent string) ([]scrobbler.Track, error) {
	albumData, err := extractAlbumData(htmlContent)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve album data: %w", err)
	}

	albumData = fixJSON(albumData)

	var album jsonAlbum
	if err := json.Unmarshal([]byte(albumData), &album); err != nil {
		return nil, fmt.Errorf("failed to parse album JSON: %w", err)
	}

	if album.Artist == "" {
		return nil, fmt.Errorf("album data missing artist")
	}
	if len(album.Tracks) == 0 {
		return nil, fmt.Errorf("album data contains no tracks")
	}

	tracks := make([]scrobbler.Track, 0, len(album.Tracks))
	for _, t := range album.Tracks {
		if t.Title == "" {
			continue
		}
		tracks = append(tracks, scrobbler.Track{
			Artist:   album.Artist,
			Title:    t.Title,
			Album:    album.Current.Title,
			Duration: time.Duration(t.Duration * float64(time.Second)),
		})
	}

	if len(tracks) == 0 {
		return nil, fmt.Errorf("album data contains no usable tracks")
	}

	return tracks, nil
}

// extractAlbumData extracts the data-tralbum JSON string from HTML.
//
// Bandcamp embeds album data in the HTML like this:
//
//	<script ... data-tralbum="{...JSON...}">
//
// This function finds and extracts that JSON, then HTML-unescapes it
// (since the JSON is embedded in an HTML attribute, characters like
// quotes are escaped as &quot;).
func extractAlbumData(htmlContent string) (string, error) {
	const startString = `data-tralbum="{`
	const stopString = `}"`

	startIndex := strings.Index(htmlContent, startString)
	if startIndex == -1 {
		return "", fmt.Errorf("could not find album data in HTML")
	}

	startIndex += len(startString) - 1 // Include the opening brace
	remaining := htmlContent[startIndex:]

	endIndex := strings.Index(remaining, stopString)
	if endIndex == -1 {
		return "", fmt.Errorf("could not find end of album data")
	}

	albumData := remaining[:endIndex+1]
	return html.UnescapeString(albumData), nil
}

// fixJSON fixes malformed JSON from Bandcamp pages.
//
// Some Bandcamp pages have JavaScript-style URL concatenation in the JSON:
//
//	url: "http://example.bandcamp.com" + "/album/name",
//
// This is not valid JSON, so we fix it by removing the concatenation.
func fixJSON(albumData string) string {
	re := regexp.MustCompile(`(url: ".+)" \+ "(.+",)`)
	return re.ReplaceAllString(albumData, "${1}${2}")
}
