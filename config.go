package devlogs

import "time"

// SiteConfig holds all configuration for a devlogs site. Values are populated
// by the caller (cmd/devlogs reads environment variables); nothing in the
// library reads the environment at render time.
type SiteConfig struct {
	Name        string // Site name (default "Devlogs")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr          string // Listen address (default ":3000")
	PageStorePath string // SQLite path for the generated-page store (default "data/pages.db")

	ProjectID    string // Required: content store project identifier
	Dataset      string // Required: content store dataset name
	APIToken     string // Required for comment writes
	StoreBaseURL string // Override store API origin (tests)
	AssetBaseURL string // Override asset CDN origin (tests)

	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	// RevalidateWindow bounds how stale a generated detail page may be
	// before the next request triggers a background refresh (default 60s).
	RevalidateWindow time.Duration
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Devlogs"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.PageStorePath == "" {
		c.PageStorePath = "data/pages.db"
	}
	if c.RevalidateWindow == 0 {
		c.RevalidateWindow = 60 * time.Second
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
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

// WithContentSource overrides the content store client, mainly for tests.
func WithContentSource(src ContentSource) Option {
	return func(a *App) {
		a.Content = src
	}
}
