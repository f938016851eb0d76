package homepage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// Run modes. The feed is only generated in development and prerender mode.
const (
	ModeDevelopment = "development"
	ModePrerender   = "prerender"
	ModeProduction  = "production"
)

// SiteConfig holds all configuration for the site.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name (default "Blog")
	URL         string `yaml:"url"`         // Canonical origin (default "http://localhost:3000")
	Description string `yaml:"description"` // Site description for RSS and the blog index
	Author      string `yaml:"author"`      // Author name for the feed copyright
	Language    string `yaml:"language"`    // Feed language (default "en")

	Addr         string `yaml:"addr"`     // Listen address (default ":3000")
	DatabasePath string `yaml:"database"` // Content artifact path (default "data/content.db")
	Mode         string `yaml:"mode"`     // development, prerender or production (default production)

	BlogTitle      string `yaml:"blogTitle"`      // Title of the blog listing (default "Blog")
	CopyrightStart int    `yaml:"copyrightStart"` // First year of the feed copyright range
	OGImagePath    string `yaml:"ogImagePath"`    // Path segment of per-post OG images

	Highlight bool `yaml:"highlight"` // Mark up fenced code blocks with chroma classes

	// Timezone names the IANA zone used for canonical dates. Empty means
	// the machine's local zone.
	Timezone string `yaml:"timezone"`
	// Location supplies calendar fields for canonical dates (default time.Local).
	Location *time.Location `yaml:"-"`
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/content.db"
	}
	if c.Mode == "" {
		c.Mode = ModeProduction
	}
	if c.BlogTitle == "" {
		c.BlogTitle = "Blog"
	}
	if c.CopyrightStart == 0 {
		c.CopyrightStart = 2019
	}
	if c.OGImagePath == "" {
		c.OGImagePath = "__og-image__/image/blog"
	}
	if c.Location == nil {
		c.Location = time.Local
	}
}

// LoadConfig reads a YAML config file. A missing file yields an empty config.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("homepage: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("homepage: parse config %s: %w", path, err)
	}
	if cfg.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return cfg, fmt.Errorf("homepage: config timezone: %w", err)
		}
		cfg.Location = loc
	}
	return cfg, nil
}

// ApplyEnv overrides config fields from SITE_* environment variables.
func (c SiteConfig) ApplyEnv() SiteConfig {
	c.Name = EnvOr("SITE_NAME", c.Name)
	c.URL = EnvOr("SITE_URL", c.URL)
	c.Description = EnvOr("SITE_DESCRIPTION", c.Description)
	c.Author = EnvOr("SITE_AUTHOR", c.Author)
	c.Mode = EnvOr("SITE_MODE", c.Mode)
	c.DatabasePath = EnvOr("SITE_DATABASE", c.DatabasePath)
	return c
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithClock replaces the clock used for the feed copyright year.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}
