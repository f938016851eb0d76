package homepage

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/homepage/content"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (a *App) renderSitemap(c echo.Context) error {
	base := a.Config.URL
	var urls []sitemapURL
	for _, p := range a.Manifest.Pages() {
		urls = append(urls, sitemapURL{Loc: AbsURL(base, p.Path()), LastMod: p.SourceDate})
	}
	urls = append(urls, sitemapURL{Loc: AbsURL(base, content.BlogPath)})
	for _, p := range a.Manifest.Posts() {
		urls = append(urls, sitemapURL{
			Loc:     AbsURL(base, p.Path()),
			LastMod: p.SourceDate,
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
