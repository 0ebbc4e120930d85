// Package devlogs renders a blog over a hosted content store: a listing page
// of post cards, statically-revalidated detail pages with approved comments,
// and a comment submission endpoint that writes unapproved comment records
// for out-of-band moderation.
//
// Users provide templ components via the ViewFuncs struct; the package
// handles queries, caching, handlers, and middleware.
package devlogs

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/devlogs/sanity"
)

// CommentFormState is everything the detail view needs to draw the comment
// section: either the acknowledgment (Submitted) or the form with any
// field errors and the values to re-fill.
type CommentFormState struct {
	Submitted bool
	Values    CommentInput
	Errors    FieldErrors
}

// ViewFuncs holds the templ components the handlers render. This keeps the
// package independent of any particular template set; the views package
// provides the real ones.
type ViewFuncs struct {
	Home        func(cfg SiteConfig, posts []Post) templ.Component
	Post        func(cfg SiteConfig, post Post, form CommentFormState) templ.Component
	NotFound    func(cfg SiteConfig) templ.Component
	ServerError func(cfg SiteConfig) templ.Component
}

// App wires together the content client, page cache, handlers, middleware,
// and views.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Content ContentSource
	Views   ViewFuncs

	cache         *pageCache
	pages         *pageStore
	submitLimiter *SubmitLimiter
	assets        *http.Client
	customRoutes  []func(*App)
	staticDir     string
}

// New creates an App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup validates config and initializes the content client, page store,
// cache, limiter, middleware, and routes. Start calls it; tests call it
// directly and drive a.Echo without a listener.
func (a *App) Setup() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("devlogs: SessionSecret is required")
	}
	if a.Content == nil {
		client, err := NewContentClient(a.storeConfig())
		if err != nil {
			return fmt.Errorf("devlogs: init content client: %w", err)
		}
		a.Content = client
	}

	pages, err := newPageStore(a.Config.PageStorePath)
	if err != nil {
		return fmt.Errorf("devlogs: init page store: %w", err)
	}
	a.pages = pages
	a.cache = newPageCache(a.Content, a.Config.RevalidateWindow, pages)
	a.submitLimiter = NewSubmitLimiter(5, time.Minute)
	a.assets = &http.Client{Timeout: 15 * time.Second}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and serves until the listener fails or is closed.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/public/comment.js", a.handleCommentScript)
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/image/:ref", a.handleImage)

	e.GET("/", a.handleHome)
	e.GET("/post/:slug/", a.handlePost)
	e.POST("/api/createComment", a.handleCreateComment)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.pages != nil {
		return a.pages.Close()
	}
	return nil
}

// storeConfig maps the site configuration onto the content store client's.
func (a *App) storeConfig() sanity.Config {
	return sanity.Config{
		ProjectID:  a.Config.ProjectID,
		Dataset:    a.Config.Dataset,
		Token:      a.Config.APIToken,
		BaseURL:    a.Config.StoreBaseURL,
		CDNBaseURL: a.Config.AssetBaseURL,
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("devlogs: required environment variable %s is not set", key)
	}
	return v
}
