package homepage

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/homepage/content"
	"github.com/eringen/homepage/markdown"
)

// DefaultViews renders bare documents around the pre-rendered record HTML.
// Sites are expected to supply their own templates.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home: func(index content.Record, _ []content.Record, meta PageMeta) templ.Component {
			return document(meta, markdown.HTML(index.HTML))
		},
		Page: func(page content.Record, meta PageMeta) templ.Component {
			return document(meta, markdown.HTML(page.HTML))
		},
		Blog: func(posts []content.Record, meta PageMeta) templ.Component {
			return document(meta, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
				if _, err := io.WriteString(w, "<ul>"); err != nil {
					return err
				}
				for _, p := range posts {
					if _, err := io.WriteString(w, `<li><a href="`+html.EscapeString(p.Path())+`">`+html.EscapeString(p.Title)+"</a></li>"); err != nil {
						return err
					}
				}
				_, err := io.WriteString(w, "</ul>")
				return err
			}))
		},
		Post: func(post content.Record, _ []content.Record, meta PageMeta) templ.Component {
			return document(meta, markdown.HTML("<h1>"+html.EscapeString(post.Title)+"</h1>"+post.HTML))
		},
		NotFound: func() templ.Component {
			return document(PageMeta{Title: "Not Found"}, templ.Raw("<h1>Not Found</h1>"))
		},
		ServerError: func() templ.Component {
			return document(PageMeta{Title: "Server Error"}, templ.Raw("<h1>Something went wrong</h1>"))
		},
	}
}

func (v ViewFuncs) withDefaults() ViewFuncs {
	d := DefaultViews()
	if v.Home == nil {
		v.Home = d.Home
	}
	if v.Page == nil {
		v.Page = d.Page
	}
	if v.Blog == nil {
		v.Blog = d.Blog
	}
	if v.Post == nil {
		v.Post = d.Post
	}
	if v.NotFound == nil {
		v.NotFound = d.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = d.ServerError
	}
	return v
}

func document(meta PageMeta, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		head := "<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>" + html.EscapeString(meta.Title) + "</title>"
		if meta.Description != "" {
			head += `<meta name="description" content="` + html.EscapeString(meta.Description) + `">`
		}
		if meta.URL != "" {
			head += `<link rel="canonical" href="` + html.EscapeString(meta.URL) + `">`
		}
		if meta.Markdown != "" {
			head += `<link rel="alternate" type="text/markdown" href="` + html.EscapeString(meta.Markdown) + `">`
		}
		if _, err := io.WriteString(w, head+"</head><body>"); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}
