package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/omniverse/offline-scrobbler/internal/config"
	"github.com/omniverse/offline-scrobbler/internal/scrobbler"
)

var scrobbleCmd = &cobra.Command{
	Use:   "scrobble",
	Short: "Scrobble a track or an album you played offline",
	Long: `Scrobble a single track or a whole album to Last.fm.

With --track, one scrobble is submitted. With --album, the album's
track listing is resolved through Last.fm and every track is scrobbled
in album order, with timestamps spaced by track length as if the album
had been played back to back.

Use --ago to say how long ago playback started (e.g. --ago 1h30m).
Without it the timeline is placed so playback finished just now.`,
	Example: `  offline-scrobbler scrobble --artist "Stereolab" --track "French Disko"
  offline-scrobbler scrobble --artist "Stereolab" --album "Dots and Loops" --ago 2h
  offline-scrobbler scrobble --artist "Stereolab" --album "Dots and Loops" --dryrun`,
	RunE: runScrobble,
}

func init() {
	rootCmd.AddCommand(scrobbleCmd)

	scrobbleCmd.Flags().String("artist", "", "Artist name")
	scrobbleCmd.Flags().String("track", "", "Track title (single-track mode)")
	scrobbleCmd.Flags().String("album", "", "Album title (whole-album mode)")
	scrobbleCmd.Flags().Duration("ago", 0, "How long ago playback started")
	scrobbleCmd.Flags().Bool("dryrun", false, "Plan the scrobbles and print them without submitting")
	_ = scrobbleCmd.MarkFlagRequired("artist")
	scrobbleCmd.MarkFlagsMutuallyExclusive("track", "album")
	scrobbleCmd.MarkFlagsOneRequired("track", "album")
}

func runScrobble(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	artist, _ := cmd.Flags().GetString("artist")
	track, _ := cmd.Flags().GetString("track")
	album, _ := cmd.Flags().GetString("album")
	ago, _ := cmd.Flags().GetDuration("ago")
	dryrun, _ := cmd.Flags().GetBool("dryrun")

	client, err := authenticatedClient()
	if err != nil {
		return err
	}

	var tracks []scrobbler.Track
	if track != "" {
		tracks = []scrobbler.Track{{Artist: artist, Title: track}}
	} else {
		logger.Info().Str("artist", artist).Str("album", album).Msg("Resolving album track listing")
		tracks, err = client.AlbumTracks(ctx, artist, album)
		if err != nil {
			return err
		}
	}

	return submitTimeline(ctx, client, tracks, ago, dryrun)
}

// authenticatedClient loads the saved configuration and builds a
// session-backed client, failing with a pointer to 'auth' when the
// tool has never been authorized.
func authenticatedClient() (*scrobbler.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.Authenticated() {
		return nil, fmt.Errorf("not authenticated with Last.fm; run 'offline-scrobbler auth' first")
	}

	client, err := scrobbler.NewWithSession(cfg.LastFM.APIKey, cfg.LastFM.APISecret, cfg.LastFM.SessionKey, logger)
	if err != nil {
		return nil, fmt.Errorf("%w; run 'offline-scrobbler auth' to restore them", err)
	}
	return client, nil
}

// submitTimeline plans timestamps for the batch and either prints the
// plan (dry run) or submits it and prints the per-track verdicts.
func submitTimeline(ctx context.Context, client *scrobbler.Client, tracks []scrobbler.Track, ago time.Duration, dryrun bool) error {
	plan := scrobbler.PlanTimeline(time.Now(), ago, tracks, logger)

	if dryrun {
		printPlan(plan)
		return nil
	}

	report, err := client.Submit(ctx, plan)
	if report != nil {
		printReport(report)
	}
	return err
}
