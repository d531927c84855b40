package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/omniverse/offline-scrobbler/internal/config"
	"github.com/omniverse/offline-scrobbler/internal/scrobbler"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authenticate with Last.fm",
	Long: `Authenticate with Last.fm to enable scrobbling.

This command will guide you through the Last.fm authentication process:
1. A browser URL will be printed for you to authorize the application
2. After authorization, a session key will be saved to your config file

Subsequent runs load the saved session key and skip this flow entirely.
You can get API credentials from: https://www.last.fm/api/account/create`,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)

	authCmd.Flags().String("api-key", "", "Last.fm API key")
	authCmd.Flags().String("secret-key", "", "Last.fm shared secret")
	_ = authCmd.MarkFlagRequired("api-key")
	_ = authCmd.MarkFlagRequired("secret-key")
}

func runAuth(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	apiKey, _ := cmd.Flags().GetString("api-key")
	secretKey, _ := cmd.Flags().GetString("secret-key")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Required flags can still be passed as empty strings.
	client, err := scrobbler.New(apiKey, secretKey, logger)
	if err != nil {
		return err
	}

	logger.Info().Msg("Requesting authentication token")
	token, authURL, err := client.AuthenticateWithToken(ctx)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	fmt.Println("\nPlease visit this URL to authorize offline-scrobbler:")
	fmt.Printf("\n  %s\n\n", authURL)
	fmt.Println("After authorizing, press Enter to continue...")
	reader := bufio.NewReader(os.Stdin)
	_, _ = reader.ReadString('\n')

	logger.Info().Msg("Exchanging token for session key")
	sessionKey, err := client.GetSession(ctx, token)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	// Persist credentials and session key together; nothing was
	// written before this point, so a failed exchange leaves no
	// partial state behind.
	cfg.LastFM.APIKey = apiKey
	cfg.LastFM.APISecret = secretKey
	cfg.LastFM.SessionKey = sessionKey
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("\n✓ Authentication successful!\n")
	fmt.Printf("✓ Session key saved to %s\n", cfg.Path())
	fmt.Println("\nYou can now scrobble with 'offline-scrobbler scrobble'.")

	return nil
}
