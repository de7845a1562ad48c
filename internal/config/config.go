// Package config loads crawler settings from defaults, an optional TOML file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultBaseURL        = "http://www.iranproud.com"
	DefaultListingPath    = "/livetv"
	DefaultUserAgent      = "Mozilla/5.0 (Windows; U; Windows NT 5.1; en-GB; rv:1.9.0.3) Gecko/2015092817 Firefox/3.0.3"
	DefaultTimeoutSeconds = 10
	DefaultPlaylistPath   = "tvlist.m3u"
	DefaultIconsDir       = "icons/"
)

type Config struct {
	BaseURL        string `toml:"base_url" env:"TVCRAWL_BASE_URL"`
	ListingPath    string `toml:"listing_path" env:"TVCRAWL_LISTING_PATH"`
	UserAgent      string `toml:"user_agent" env:"TVCRAWL_USER_AGENT"`
	TimeoutSeconds int    `toml:"timeout_seconds" env:"TVCRAWL_TIMEOUT_SECONDS"`
	PlaylistPath   string `toml:"playlist_path" env:"TVCRAWL_PLAYLIST"`
	IconsDir       string `toml:"icons_dir" env:"TVCRAWL_ICONS_DIR"`
}

func Default() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		ListingPath:    DefaultListingPath,
		UserAgent:      DefaultUserAgent,
		TimeoutSeconds: DefaultTimeoutSeconds,
		PlaylistPath:   DefaultPlaylistPath,
		IconsDir:       DefaultIconsDir,
	}
}

// Load applies the TOML file at path (if any) and then the environment on top
// of the defaults. The result is not validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}

		if err := Decode(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

// Decode merges TOML data into cfg. Keys absent from data keep their value.
func Decode(data []byte, cfg *Config) error {
	return toml.Unmarshal(data, cfg)
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ListingURL is the page that enumerates every channel.
func (c *Config) ListingURL() string {
	return c.BaseURL + c.ListingPath
}

// ChannelURL joins a path found on the listing page to the base URL.
func (c *Config) ChannelURL(channelPath string) string {
	return c.BaseURL + channelPath
}

func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.BaseURL)
	switch {
	case c.BaseURL == "":
		errs = append(errs, errors.New("base_url is required"))
	case err != nil:
		errs = append(errs, fmt.Errorf("base_url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("base_url %q must use http or https", c.BaseURL))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("base_url %q has no host", c.BaseURL))
	case strings.HasSuffix(c.BaseURL, "/"):
		errs = append(errs, fmt.Errorf("base_url %q must not end with /", c.BaseURL))
	}

	if !strings.HasPrefix(c.ListingPath, "/") {
		errs = append(errs, fmt.Errorf("listing_path %q must start with /", c.ListingPath))
	}

	if c.TimeoutSeconds <= 0 {
		errs = append(errs, fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds))
	}

	if c.PlaylistPath == "" {
		errs = append(errs, errors.New("playlist_path is required"))
	}

	if c.IconsDir == "" {
		errs = append(errs, errors.New("icons_dir is required"))
	}

	return errors.Join(errs...)
}
