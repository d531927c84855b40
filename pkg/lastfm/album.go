package lastfm

import (
	"context"
	"encoding/xml"
	"fmt"
)

// AlbumService provides album lookup operations for the Last.fm API.
type AlbumService struct {
	client *Client
}

// GetInfo fetches the track listing for an album by artist and album name.
//
// This is an unauthenticated read method; it needs neither a session
// key nor a signature. The returned tracks are in album order with
// durations in seconds where Last.fm knows them (a duration of 0 means
// unknown).
//
// Example:
//
//	info, err := client.Album().GetInfo(ctx, "The Beatles", "Help!")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, t := range info.Tracks {
//	    fmt.Printf("%2d. %s (%ds)\n", t.Rank, t.Title, t.Duration)
//	}
func (a *AlbumService) GetInfo(ctx context.Context, artist, album string) (*AlbumInfo, error) {
	params := map[string]string{
		"artist": artist,
		"album":  album,
	}

	resp, err := a.client.call(ctx, "album.getInfo", params, false, false)
	if err != nil {
		return nil, err
	}

	info, err := unmarshalAlbumInfo(resp)
	if err != nil {
		return nil, fmt.Errorf("lastfm: failed to parse album response: %w", err)
	}

	return info, nil
}

// albumInfoResponse represents the XML response from album.getInfo.
type albumInfoResponse struct {
	Album struct {
		Name   string `xml:"name"`
		Artist string `xml:"artist"`
		Tracks struct {
			Tracks []struct {
				Rank     string `xml:"rank,attr"`
				Name     string `xml:"name"`
				Duration string `xml:"duration"`
			} `xml:"track"`
		} `xml:"tracks"`
	} `xml:"album"`
}

// unmarshalAlbumInfo parses the XML response from album.getInfo.
func unmarshalAlbumInfo(data []byte) (*AlbumInfo, error) {
	// Wrap inner XML in root element for proper unmarshaling
	wrapped := []byte("<root>" + string(data) + "</root>")

	var resp albumInfoResponse
	if err := xml.Unmarshal(wrapped, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal album response: %w", err)
	}

	if resp.Album.Name == "" {
		return nil, fmt.Errorf("response missing album element")
	}

	info := &AlbumInfo{
		Artist: resp.Album.Artist,
		Title:  resp.Album.Name,
		Tracks: make([]AlbumTrack, 0, len(resp.Album.Tracks.Tracks)),
	}

	for i, t := range resp.Album.Tracks.Tracks {
		track := AlbumTrack{
			Rank:  i + 1,
			Title: t.Name,
		}
		if t.Rank != "" {
			fmt.Sscanf(t.Rank, "%d", &track.Rank)
		}
		if t.Duration != "" {
			// Missing or unparseable durations stay 0; the planner
			// substitutes a default later.
			fmt.Sscanf(t.Duration, "%d", &track.Duration)
		}
		info.Tracks = append(info.Tracks, track)
	}

	return info, nil
}
