package scrobbler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/omniverse/offline-scrobbler/pkg/lastfm"
)

// newTestClient builds a Client pointed at a local test server.
func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	lfm, err := lastfm.NewClient(lastfm.Config{
		APIKey:     "test-api-key",
		APISecret:  "test-secret",
		SessionKey: "test-session-key",
		BaseURL:    baseURL,
	})
	if err != nil {
		t.Fatalf("failed to create lastfm client: %v", err)
	}
	return &Client{client: lfm, logger: zerolog.Nop()}
}

// TestNew_IncompleteCredentials covers configs that carry a session key
// without the API key pair (hand-edited file, or a lone env override):
// construction must fail with a plain error, never panic.
func TestNew_IncompleteCredentials(t *testing.T) {
	if _, err := NewWithSession("", "", "some-session-key", zerolog.Nop()); err == nil {
		t.Fatal("expected error for missing API key, got nil")
	}
	if _, err := New("api-key", "", zerolog.Nop()); err == nil {
		t.Fatal("expected error for missing API secret, got nil")
	}
	if _, err := NewWithSession("api-key", "secret", "session-key", zerolog.Nop()); err != nil {
		t.Fatalf("unexpected error for complete credentials: %v", err)
	}
}

func TestClient_Submit_MixedVerdicts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := `<?xml version="1.0" encoding="utf-8"?>
<lfm status="ok">
	<scrobbles accepted="1" ignored="1">
		<scrobble>
			<artist corrected="0">The Beatles</artist>
			<track corrected="0">Yesterday</track>
			<timestamp>1234567890</timestamp>
			<ignoredMessage code="0"></ignoredMessage>
		</scrobble>
		<scrobble>
			<artist corrected="0">The Beatles</artist>
			<track corrected="0">Her Majesty</track>
			<timestamp>1234568000</timestamp>
			<ignoredMessage code="5">Track too short</ignoredMessage>
		</scrobble>
	</scrobbles>
</lfm>`
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(response)); err != nil {
			t.Fatalf("failed to write response body: %v", err)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	scrobbles := []Scrobble{
		{Artist: "The Beatles", Track: "Yesterday", Timestamp: time.Unix(1234567890, 0), Duration: 125 * time.Second},
		{Artist: "The Beatles", Track: "Her Majesty", Timestamp: time.Unix(1234568000, 0), Duration: 23 * time.Second},
	}

	report, err := client.Submit(context.Background(), scrobbles)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Accepted != 1 || report.Ignored != 1 {
		t.Errorf("expected 1 accepted / 1 ignored, got %d / %d", report.Accepted, report.Ignored)
	}

	if !report.Outcomes[0].Accepted {
		t.Error("expected track 0 to be accepted")
	}
	if report.Outcomes[1].Accepted {
		t.Error("expected track 1 to be ignored")
	}
	if report.Outcomes[1].Reason != "Track too short" {
		t.Errorf("expected ignore reason 'Track too short', got %q", report.Outcomes[1].Reason)
	}
}

func TestClient_Submit_AllIgnoredFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := `<?xml version="1.0" encoding="utf-8"?>
<lfm status="ok">
	<scrobbles accepted="0" ignored="1">
		<scrobble>
			<artist corrected="0">The Beatles</artist>
			<track corrected="0">Her Majesty</track>
			<timestamp>1234568000</timestamp>
			<ignoredMessage code="5">Track too short</ignoredMessage>
		</scrobble>
	</scrobbles>
</lfm>`
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(response)); err != nil {
			t.Fatalf("failed to write response body: %v", err)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	scrobbles := []Scrobble{
		{Artist: "The Beatles", Track: "Her Majesty", Timestamp: time.Unix(1234568000, 0)},
	}

	report, err := client.Submit(context.Background(), scrobbles)
	if !errors.Is(err, ErrNoneAccepted) {
		t.Fatalf("expected ErrNoneAccepted, got %v", err)
	}

	// The report still carries the per-track outcomes for display.
	if report == nil || len(report.Outcomes) != 1 {
		t.Fatal("expected report with one outcome alongside the error")
	}
	if report.Outcomes[0].Reason != "Track too short" {
		t.Errorf("expected reason 'Track too short', got %q", report.Outcomes[0].Reason)
	}
}

func TestClient_Submit_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verdict count does not match the submitted batch.
		response := `<?xml version="1.0" encoding="utf-8"?>
<lfm status="ok">
	<scrobbles accepted="1" ignored="0">
	</scrobbles>
</lfm>`
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(response)); err != nil {
			t.Fatalf("failed to write response body: %v", err)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	scrobbles := []Scrobble{
		{Artist: "The Beatles", Track: "Yesterday", Timestamp: time.Unix(1234567890, 0)},
	}

	_, err := client.Submit(context.Background(), scrobbles)
	if err == nil {
		t.Fatal("expected error for malformed response, got nil")
	}
	if !strings.Contains(err.Error(), "malformed") {
		t.Errorf("expected malformed response error, got %v", err)
	}
}

func TestClient_Submit_EmptyBatch(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:0")

	_, err := client.Submit(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error for empty batch, got nil")
	}
}

func TestClient_Submit_NetworkErrorIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := newTestClient(t, server.URL)

	scrobbles := []Scrobble{
		{Artist: "The Beatles", Track: "Yesterday", Timestamp: time.Unix(1234567890, 0)},
	}

	_, err := client.Submit(context.Background(), scrobbles)
	if err == nil {
		t.Fatal("expected network error, got nil")
	}
}

func TestClient_AlbumTracks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := `<?xml version="1.0" encoding="utf-8"?>
<lfm status="ok">
	<album>
		<name>Help!</name>
		<artist>The Beatles</artist>
		<tracks>
			<track rank="1">
				<name>Help!</name>
				<duration>138</duration>
			</track>
			<track rank="2">
				<name>The Night Before</name>
			</track>
		</tracks>
	</album>
</lfm>`
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(response)); err != nil {
			t.Fatalf("failed to write response body: %v", err)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	tracks, err := client.AlbumTracks(context.Background(), "The Beatles", "Help!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(tracks))
	}
	if tracks[0].Title != "Help!" || tracks[0].Duration != 138*time.Second {
		t.Errorf("unexpected first track: %+v", tracks[0])
	}
	if tracks[1].Duration != 0 {
		t.Errorf("expected unknown duration to be 0, got %v", tracks[1].Duration)
	}
	if tracks[1].Album != "Help!" {
		t.Errorf("expected album name on track, got %q", tracks[1].Album)
	}
}

func TestClient_AlbumTracks_EmptyListing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := `<?xml version="1.0" encoding="utf-8"?>
<lfm status="ok">
	<album>
		<name>Ghost Album</name>
		<artist>Nobody</artist>
		<tracks>
		</tracks>
	</album>
</lfm>`
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(response)); err != nil {
			t.Fatalf("failed to write response body: %v", err)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.AlbumTracks(context.Background(), "Nobody", "Ghost Album")
	if err == nil {
		t.Fatal("expected error for empty track listing, got nil")
	}
	if !strings.Contains(err.Error(), "no track listing") {
		t.Errorf("expected track listing error, got %v", err)
	}
}
