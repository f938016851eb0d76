package homepage

import (
	"github.com/a-h/templ"

	"github.com/eringen/homepage/content"
)

// ViewFuncs holds user-provided templ components that render the HTML
// representation of each page. Nil entries fall back to DefaultViews.
type ViewFuncs struct {
	Home        func(index content.Record, posts []content.Record, meta PageMeta) templ.Component
	Page        func(page content.Record, meta PageMeta) templ.Component
	Blog        func(posts []content.Record, meta PageMeta) templ.Component
	Post        func(post content.Record, posts []content.Record, meta PageMeta) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Markdown    string // URL of the markdown variant, for <link rel="alternate">
}
