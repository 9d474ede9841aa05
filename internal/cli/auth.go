package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/artistgraph/pkg/cache"
	"github.com/matzehuels/artistgraph/pkg/integrations/spotify"
)

// verifyTimeout bounds the credential check.
const verifyTimeout = 30 * time.Second

// authCommand creates the auth command, which checks the Spotify
// client credentials without fetching any artists.
func (c *CLI) authCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Verify Spotify client credentials",
		Long: `Request a Spotify access token with the configured client credentials.

Credentials come from the [spotify] section of the config file or the
SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), verifyTimeout)
			defer cancel()

			client := spotify.NewClient(cache.NewNullCache(), 0, spotify.Credentials{
				ClientID:     cfg.Spotify.ClientID,
				ClientSecret: cfg.Spotify.ClientSecret,
			})
			return c.runAuth(ctx, client, cfg)
		},
	}
}

// tokenVerifier is satisfied by *spotify.Client.
type tokenVerifier interface {
	Verify(ctx context.Context) (time.Time, error)
}

func (c *CLI) runAuth(ctx context.Context, v tokenVerifier, cfg Config) error {
	spinner := newSpinnerWithContext(ctx, "Verifying Spotify credentials...")
	spinner.Start()

	expires, err := v.Verify(ctx)
	if errors.Is(err, spotify.ErrMissingCredentials) {
		spinner.StopWithError("No Spotify credentials configured")
		printDetail("Set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET or add a [spotify] section to the config")
		return err
	}
	if err != nil {
		spinner.StopWithError("Credentials rejected")
		return fmt.Errorf("verify credentials: %w", err)
	}
	spinner.Stop()

	printSuccess("Spotify credentials valid")
	printKeyValue("Client ID", maskSecret(cfg.Spotify.ClientID))
	printKeyValue("Expires", expires.Format("15:04:05"))
	return nil
}

// maskSecret keeps the last four characters of s.
func maskSecret(s string) string {
	const visible = 4
	if len(s) <= visible {
		return "****"
	}
	return "****" + s[len(s)-visible:]
}
