package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/omniverse/offline-scrobbler/internal/bandcamp"
)

var scrobbleURLCmd = &cobra.Command{
	Use:   "scrobble-url <album-page-url>",
	Short: "Scrobble every track of a Bandcamp album page",
	Long: `Scrobble every track of a Bandcamp album or track page.

The page is fetched and its embedded track listing (titles and
durations) is used to plan the timeline, so no album lookup on
Last.fm is needed.`,
	Example: `  offline-scrobbler scrobble-url https://artist.bandcamp.com/album/name --ago 45m`,
	Args:    cobra.ExactArgs(1),
	RunE:    runScrobbleURL,
}

func init() {
	rootCmd.AddCommand(scrobbleURLCmd)

	scrobbleURLCmd.Flags().Duration("ago", 0, "How long ago playback started")
	scrobbleURLCmd.Flags().Bool("dryrun", false, "Plan the scrobbles and print them without submitting")
}

func runScrobbleURL(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	ago, _ := cmd.Flags().GetDuration("ago")
	dryrun, _ := cmd.Flags().GetBool("dryrun")

	client, err := authenticatedClient()
	if err != nil {
		return err
	}

	logger.Info().Str("url", args[0]).Msg("Fetching album page")
	tracks, err := bandcamp.NewClient(logger).FetchAlbum(ctx, args[0])
	if err != nil {
		return err
	}

	return submitTimeline(ctx, client, tracks, ago, dryrun)
}
