package lastfm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestAlbumService_GetInfo tests the GetInfo method.
func TestAlbumService_GetInfo(t *testing.T) {
	tests := []struct {
		name        string
		response    string
		wantTracks  []AlbumTrack
		wantErr     bool
		errContains string
	}{
		{
			name: "success - tracks with durations",
			response: `<?xml version="1.0" encoding="utf-8"?>
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
				<duration>153</duration>
			</track>
		</tracks>
	</album>
</lfm>`,
			wantTracks: []AlbumTrack{
				{Rank: 1, Title: "Help!", Duration: 138},
				{Rank: 2, Title: "The Night Before", Duration: 153},
			},
		},
		{
			name: "missing durations are zero",
			response: `<?xml version="1.0" encoding="utf-8"?>
<lfm status="ok">
	<album>
		<name>Bootleg</name>
		<artist>Unknown</artist>
		<tracks>
			<track rank="1">
				<name>Untitled</name>
			</track>
		</tracks>
	</album>
</lfm>`,
			wantTracks: []AlbumTrack{
				{Rank: 1, Title: "Untitled", Duration: 0},
			},
		},
		{
			name: "api error - album not found",
			response: `<?xml version="1.0" encoding="utf-8"?>
<lfm status="failed">
	<error code="6">Album not found</error>
</lfm>`,
			wantErr:     true,
			errContains: "error 6",
		},
		{
			name: "protocol error - missing album element",
			response: `<?xml version="1.0" encoding="utf-8"?>
<lfm status="ok">
	<unexpected/>
</lfm>`,
			wantErr:     true,
			errContains: "missing album",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if err := r.ParseForm(); err != nil {
					t.Fatalf("failed to parse form: %v", err)
				}

				if method := r.FormValue("method"); method != "album.getInfo" {
					t.Errorf("expected method album.getInfo, got %s", method)
				}
				if artist := r.FormValue("artist"); artist != "The Beatles" {
					t.Errorf("expected artist The Beatles, got %s", artist)
				}
				if album := r.FormValue("album"); album != "Help!" {
					t.Errorf("expected album Help!, got %s", album)
				}
				// Read method: no session key, no signature
				if sk := r.FormValue("sk"); sk != "" {
					t.Errorf("expected no sk on album.getInfo, got %s", sk)
				}
				if sig := r.FormValue("api_sig"); sig != "" {
					t.Errorf("expected no api_sig on album.getInfo, got %s", sig)
				}

				w.WriteHeader(http.StatusOK)
				if _, err := w.Write([]byte(tt.response)); err != nil {
					t.Fatalf("failed to write response body: %v", err)
				}
			}))
			defer server.Close()

			client, err := NewClient(Config{
				APIKey:    "test-api-key",
				APISecret: "test-secret",
				BaseURL:   server.URL,
			})
			if err != nil {
				t.Fatalf("failed to create client: %v", err)
			}

			ctx := context.Background()
			info, err := client.Album().GetInfo(ctx, "The Beatles", "Help!")

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error to contain %q, got %v", tt.errContains, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(info.Tracks) != len(tt.wantTracks) {
				t.Fatalf("expected %d tracks, got %d", len(tt.wantTracks), len(info.Tracks))
			}
			for i, want := range tt.wantTracks {
				if info.Tracks[i] != want {
					t.Errorf("track %d: expected %+v, got %+v", i, want, info.Tracks[i])
				}
			}
		})
	}
}
