// Package config persists the Last.fm credentials and session key.
//
// The on-disk config file is the only shared mutable state in the
// program. It is read once at startup and written only by the auth
// flow, so the store exposes exactly two operations: Load and Save.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	// Last.fm API credentials and session key
	LastFM LastFMConfig

	// Directory the config was loaded from; Save writes back here.
	dir string
}

// LastFMConfig holds Last.fm specific configuration.
type LastFMConfig struct {
	APIKey     string
	APISecret  string
	SessionKey string
}

// Load reads configuration from the default user-scoped location and
// the environment.
func Load() (*Config, error) {
	return LoadFrom(defaultConfigDir())
}

// LoadFrom reads configuration from the given directory and the
// environment. A missing config file is not an error; it yields an
// unauthenticated Config.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	// Read config file (optional - don't fail if missing)
	_ = v.ReadInConfig()

	// Read from environment variables, e.g. OFFSCROBBLER_LASTFM_SESSION_KEY
	v.SetEnvPrefix("OFFSCROBBLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		LastFM: LastFMConfig{
			APIKey:     v.GetString("lastfm.api_key"),
			APISecret:  v.GetString("lastfm.api_secret"),
			SessionKey: v.GetString("lastfm.session_key"),
		},
		dir: dir,
	}

	return cfg, nil
}

// Authenticated reports whether a session key has been persisted.
func (c *Config) Authenticated() bool {
	return c.LastFM.SessionKey != ""
}

// Path returns the location of the config file.
func (c *Config) Path() string {
	return filepath.Join(c.dir, "config.yaml")
}

// Save writes configuration back to the directory it was loaded from.
//
// The write is atomic: viper marshals to a temporary file in the same
// directory which is then renamed over config.yaml, so an interrupted
// save never leaves a torn file behind. Either the full session key is
// persisted or nothing changes.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	v := viper.New()
	v.Set("lastfm.api_key", c.LastFM.APIKey)
	v.Set("lastfm.api_secret", c.LastFM.APISecret)
	v.Set("lastfm.session_key", c.LastFM.SessionKey)

	// The temp name keeps a .yaml extension so viper picks the format.
	tmpFile := filepath.Join(c.dir, "config.tmp.yaml")
	if err := v.WriteConfigAs(tmpFile); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := os.Rename(tmpFile, c.Path()); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to replace config: %w", err)
	}

	return nil
}

// defaultConfigDir returns the user-scoped configuration directory.
func defaultConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".config", "offline-scrobbler")
}
