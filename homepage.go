// Package homepage serves a personal website from an extracted content
// manifest: HTML pages through user-provided templ views, markdown variants
// for agents, an RSS feed, a sitemap, and Accept-based negotiation between
// the HTML and markdown representations.
//
// The manifest and the negotiable path set are built once by the build
// step and injected here; handlers only read them.
package homepage

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/eringen/homepage/content"
	"github.com/eringen/homepage/negotiate"
)

// App is the central application. It wires together the manifest,
// responder, feed, handlers, middleware, and user-provided templates.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Manifest *content.Manifest
	Paths    negotiate.Paths
	Views    ViewFuncs

	responder    *Responder
	feed         *Feed
	now          func() time.Time
	customRoutes []func(*App)
	staticDir    string
}

// New creates an App over an extracted manifest and its negotiable paths,
// with middleware and routes registered.
func New(cfg SiteConfig, m *content.Manifest, paths negotiate.Paths, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Manifest:  m,
		Paths:     paths,
		Views:     views.withDefaults(),
		now:       time.Now,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	a.Echo.HideBanner = true
	if cfg.Mode == ModeDevelopment {
		a.Echo.Debug = true
		a.Echo.Logger.SetLevel(log.DEBUG)
	} else {
		a.Echo.Logger.SetLevel(log.INFO)
	}

	a.responder = NewResponder(m, cfg)
	a.feed = NewFeed(m, cfg, a.now)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return a
}

// Open loads the content artifact at cfg.DatabasePath and creates an App.
func Open(cfg SiteConfig, views ViewFuncs, opts ...Option) (*App, error) {
	cfg.setDefaults()
	if _, err := os.Stat(cfg.DatabasePath); err != nil {
		return nil, fmt.Errorf("homepage: content artifact missing, run the build first: %w", err)
	}
	store, err := content.NewStore(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("homepage: open content: %w", err)
	}
	defer store.Close()

	m, paths, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("homepage: load content: %w", err)
	}
	return New(cfg, m, paths, views, opts...), nil
}

// Start starts the HTTP server on Config.Addr.
func (a *App) Start() error {
	a.Echo.Logger.Infof("serving %d records, %d negotiable paths on %s", a.Manifest.Len(), len(a.Paths), a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// ServeHTTP lets the App be mounted as a plain http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.Echo.ServeHTTP(w, r)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET(FeedPath, a.handleFeed)

	e.GET("/", a.handleHome)
	e.GET("/blog", a.handleBlog)
	e.GET("/blog"+negotiate.Suffix, a.handleVariant)
	e.GET("/blog/:slug", a.handlePost)
	e.GET("/:page", a.handlePage)
}
