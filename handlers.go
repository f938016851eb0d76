package homepage

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/homepage/content"
	"github.com/eringen/homepage/negotiate"
)

func (a *App) meta(title, description, path, ogType string) PageMeta {
	return PageMeta{
		Title:       title,
		Description: description,
		URL:         AbsURL(a.Config.URL, path),
		OGType:      ogType,
		Markdown:    AbsURL(a.Config.URL, negotiate.VariantPath(path)),
	}
}

func (a *App) handleHome(c echo.Context) error {
	index, err := a.Manifest.Page(content.IndexSlug)
	if err != nil {
		return notFound(err)
	}
	title := index.Title
	if title == "" {
		title = a.Config.Name
	}
	return Render(c, a.Views.Home(index, a.Manifest.Posts(), a.meta(title, a.Config.Description, "/", "website")))
}

func (a *App) handlePage(c echo.Context) error {
	if negotiate.IsVariant(c.Request().URL.Path) {
		return a.handleVariant(c)
	}
	slug := c.Param("page")
	if slug == content.IndexSlug {
		return echo.ErrNotFound
	}
	page, err := a.Manifest.Page(slug)
	if err != nil {
		return notFound(err)
	}
	return Render(c, a.Views.Page(page, a.meta(page.Title, page.Description, page.Path(), "website")))
}

func (a *App) handleBlog(c echo.Context) error {
	return Render(c, a.Views.Blog(a.Manifest.Posts(), a.meta(a.Config.BlogTitle, a.Config.Description, content.BlogPath, "website")))
}

func (a *App) handlePost(c echo.Context) error {
	if negotiate.IsVariant(c.Request().URL.Path) {
		return a.handleVariant(c)
	}
	post, err := a.Manifest.Post(c.Param("slug"))
	if err != nil {
		return notFound(err)
	}
	return Render(c, a.Views.Post(post, a.Manifest.Posts(), a.meta(post.Title, post.Description, post.Path(), "article")))
}

// handleVariant serves the markdown variant addressed by the request path.
func (a *App) handleVariant(c echo.Context) error {
	doc, err := a.responder.Respond(negotiate.CanonicalPath(c.Request().URL.Path))
	if err != nil {
		return notFound(err)
	}
	return c.Blob(http.StatusOK, MIMETextMarkdown, doc)
}

func (a *App) handleFeed(c echo.Context) error {
	doc, err := a.feed.Generate()
	if err != nil {
		return err
	}
	if doc == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", doc)
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c)
}

// handleRobots generates robots.txt pointing at the sitemap.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s\n", AbsURL(a.Config.URL, "/sitemap.xml"))
	return c.String(http.StatusOK, body)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

// notFound maps a manifest miss to a 404 and passes other errors through.
func notFound(err error) error {
	if errors.Is(err, content.ErrNotFound) {
		return echo.ErrNotFound
	}
	return err
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		if negotiate.IsVariant(c.Request().URL.Path) {
			_ = c.Blob(http.StatusNotFound, MIMETextMarkdown, []byte("# Not Found\n"))
			return
		}
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
