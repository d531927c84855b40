package lastfm

import (
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
)

// ScrobbleService provides scrobbling operations for the Last.fm API.
type ScrobbleService struct {
	client *Client
}

const (
	// MaxBatchSize is the maximum number of scrobbles allowed in a single batch.
	MaxBatchSize = 50
)

// ScrobbleBatch submits multiple scrobbles to Last.fm in a single request.
//
// Up to 50 scrobbles can be submitted at once; larger batches are
// rejected so the caller never silently loses tracks. The batch is sent
// as one form-encoded POST with indexed parameters (artist[0],
// track[0], timestamp[0], ...) signed over the full parameter set.
//
// The returned response carries one ScrobbleResult per submitted track.
// An ignored track (for example one the service considers too short, or
// with a timestamp too far in the past) is reported in its result, not
// as an error.
//
// Requires authentication (session key must be set via SetSessionKey).
//
// Example:
//
//	resp, err := client.Scrobble().ScrobbleBatch(ctx, scrobbles)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Accepted: %d, Ignored: %d\n", resp.Accepted, resp.Ignored)
func (s *ScrobbleService) ScrobbleBatch(ctx context.Context, scrobbles []Scrobble) (*ScrobbleResponse, error) {
	if s.client.sessionKey == "" {
		return nil, fmt.Errorf("lastfm: session key required for scrobbling")
	}
	if len(scrobbles) == 0 {
		return &ScrobbleResponse{}, nil
	}
	if len(scrobbles) > MaxBatchSize {
		return nil, fmt.Errorf("lastfm: batch of %d exceeds maximum of %d scrobbles", len(scrobbles), MaxBatchSize)
	}

	params := make(map[string]string)

	// Add batch parameters with indexed keys
	for i, scrobble := range scrobbles {
		idx := fmt.Sprintf("[%d]", i)
		params["artist"+idx] = scrobble.Track.Artist
		params["track"+idx] = scrobble.Track.Track
		params["timestamp"+idx] = fmt.Sprintf("%d", scrobble.Timestamp.Unix())

		// Add optional parameters
		if scrobble.Track.Album != "" {
			params["album"+idx] = scrobble.Track.Album
		}
		if scrobble.Track.AlbumArtist != "" {
			params["albumArtist"+idx] = scrobble.Track.AlbumArtist
		}
		if scrobble.Track.Duration > 0 {
			params["duration"+idx] = fmt.Sprintf("%d", scrobble.Track.Duration)
		}
		if scrobble.Track.TrackNumber > 0 {
			params["trackNumber"+idx] = fmt.Sprintf("%d", scrobble.Track.TrackNumber)
		}
		if scrobble.Track.MBTrackID != "" {
			params["mbid"+idx] = scrobble.Track.MBTrackID
		}
	}

	resp, err := s.client.call(ctx, "track.scrobble", params, true, true)
	if err != nil {
		return nil, err
	}

	scrobbleResp, err := unmarshalScrobbles(resp)
	if err != nil {
		return nil, fmt.Errorf("lastfm: failed to parse scrobble response: %w", err)
	}

	return scrobbleResp, nil
}

// scrobbleResponse represents the XML response from track.scrobble.
type scrobbleResponse struct {
	Scrobbles struct {
		Accepted  string `xml:"accepted,attr"`
		Ignored   string `xml:"ignored,attr"`
		Scrobbles []struct {
			Artist         string `xml:"artist"`
			Track          string `xml:"track"`
			Album          string `xml:"album"`
			Timestamp      string `xml:"timestamp"`
			IgnoredMessage struct {
				Code int    `xml:"code,attr"`
				Text string `xml:",chardata"`
			} `xml:"ignoredMessage"`
		} `xml:"scrobble"`
	} `xml:"scrobbles"`
}

// unmarshalScrobbles parses the XML response from track.scrobble.
func unmarshalScrobbles(data []byte) (*ScrobbleResponse, error) {
	// Wrap inner XML in root element for proper unmarshaling
	wrapped := []byte("<root>" + string(data) + "</root>")

	var resp scrobbleResponse
	if err := xml.Unmarshal(wrapped, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scrobble response: %w", err)
	}

	if resp.Scrobbles.Accepted == "" && resp.Scrobbles.Ignored == "" {
		return nil, fmt.Errorf("response missing scrobbles element")
	}

	accepted, err := parseCount(resp.Scrobbles.Accepted)
	if err != nil {
		return nil, fmt.Errorf("invalid accepted count %q", resp.Scrobbles.Accepted)
	}
	ignored, err := parseCount(resp.Scrobbles.Ignored)
	if err != nil {
		return nil, fmt.Errorf("invalid ignored count %q", resp.Scrobbles.Ignored)
	}

	result := &ScrobbleResponse{
		Accepted: accepted,
		Ignored:  ignored,
		Results:  make([]ScrobbleResult, len(resp.Scrobbles.Scrobbles)),
	}

	for i, s := range resp.Scrobbles.Scrobbles {
		var timestamp int64
		if s.Timestamp != "" {
			timestamp, err = strconv.ParseInt(s.Timestamp, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid scrobble timestamp %q", s.Timestamp)
			}
		}

		result.Results[i] = ScrobbleResult{
			Artist:      s.Artist,
			Track:       s.Track,
			Album:       s.Album,
			Timestamp:   timestamp,
			IgnoredCode: s.IgnoredMessage.Code,
			IgnoredText: s.IgnoredMessage.Text,
		}
	}

	return result, nil
}

// parseCount parses a scrobbles count attribute. An absent attribute
// counts as zero; a present but non-numeric one is a protocol error
// rather than a silent zero.
func parseCount(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
