package homepage

import (
	"regexp"
	"strings"

	"github.com/eringen/homepage/content"
	"github.com/eringen/homepage/negotiate"
)

// MIMETextMarkdown is the content type of every markdown variant.
const MIMETextMarkdown = "text/markdown; charset=utf-8"

var (
	// [text](dest "title") and ![alt](dest)
	reMarkdownLink = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]+)((?:\s+"[^"]*")?)\)`)
	reHrefAttr     = regexp.MustCompile(`href="([^"]*)"`)

	yamlEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
)

// Responder synthesizes markdown variants from the content manifest.
type Responder struct {
	manifest    *content.Manifest
	siteURL     string
	blogTitle   string
	description string
}

// NewResponder creates a Responder over m.
func NewResponder(m *content.Manifest, cfg SiteConfig) *Responder {
	cfg.setDefaults()
	return &Responder{
		manifest:    m,
		siteURL:     strings.TrimRight(cfg.URL, "/"),
		blogTitle:   cfg.BlogTitle,
		description: cfg.Description,
	}
}

// Respond returns the markdown variant of a canonical path: the blog listing
// for /blog, a post for /blog/<slug>, otherwise a page. Unknown paths yield
// content.ErrNotFound.
func (r *Responder) Respond(path string) ([]byte, error) {
	switch {
	case path == content.BlogPath:
		return r.Index(), nil
	case strings.HasPrefix(path, content.BlogPath+"/"):
		post, err := r.manifest.Post(strings.TrimPrefix(path, content.BlogPath+"/"))
		if err != nil {
			return nil, err
		}
		return r.Single(post), nil
	case path == "/":
		page, err := r.manifest.Page(content.IndexSlug)
		if err != nil {
			return nil, err
		}
		return r.Single(page), nil
	default:
		slug := strings.TrimPrefix(path, "/")
		if slug == "" || slug == content.IndexSlug || strings.Contains(slug, "/") {
			return nil, content.ErrNotFound
		}
		page, err := r.manifest.Page(slug)
		if err != nil {
			return nil, err
		}
		return r.Single(page), nil
	}
}

// Single renders one record as frontmatter followed by its markdown body.
// Root-relative links in post bodies become absolute site URLs.
func (r *Responder) Single(rec content.Record) []byte {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString(`title: "` + EscapeYAML(rec.Title) + "\"\n")
	if rec.SourceDate != "" {
		b.WriteString("date: " + rec.SourceDate + "\n")
	}
	b.WriteString("tags: [" + strings.Join(rec.Tags, ", ") + "]\n")
	b.WriteString(`description: "` + EscapeYAML(rec.Description) + "\"\n")
	b.WriteString("url: " + AbsURL(r.siteURL, rec.Path()) + "\n")
	b.WriteString("---\n\n")

	body := strings.TrimLeft(rec.Body, "\r\n")
	if rec.Kind == content.KindPost {
		body = r.rewriteLinks(body)
	}
	b.WriteString(body)
	return []byte(b.String())
}

// Index renders the blog listing: one bullet per post in manifest order,
// with the description on an indented second line.
func (r *Responder) Index() []byte {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString(`title: "` + EscapeYAML(r.blogTitle) + "\"\n")
	b.WriteString(`description: "` + EscapeYAML(r.description) + "\"\n")
	b.WriteString("url: " + AbsURL(r.siteURL, content.BlogPath) + "\n")
	b.WriteString("---\n\n")

	for _, p := range r.manifest.Posts() {
		b.WriteString("- [" + p.Title + "](" + AbsURL(r.siteURL, negotiate.VariantPath(p.Path())) + ")")
		if p.Date != "" {
			b.WriteString(" - " + p.Date)
		}
		b.WriteString("\n")
		if p.Description != "" {
			b.WriteString("  " + p.Description + "\n")
		}
	}
	return []byte(b.String())
}

func (r *Responder) rewriteLinks(body string) string {
	body = reMarkdownLink.ReplaceAllStringFunc(body, func(m string) string {
		sub := reMarkdownLink.FindStringSubmatch(m)
		if !isInternal(sub[2]) {
			return m
		}
		return "[" + sub[1] + "](" + r.siteURL + sub[2] + sub[3] + ")"
	})
	return reHrefAttr.ReplaceAllStringFunc(body, func(m string) string {
		href := reHrefAttr.FindStringSubmatch(m)[1]
		if !isInternal(href) {
			return m
		}
		return `href="` + r.siteURL + href + `"`
	})
}

// isInternal reports whether dest is root-relative (not protocol-relative).
func isInternal(dest string) bool {
	return strings.HasPrefix(dest, "/") && !strings.HasPrefix(dest, "//")
}

// EscapeYAML escapes a value for a double-quoted YAML scalar. Backslashes and
// quotes are replaced in a single left-to-right pass.
func EscapeYAML(s string) string {
	return yamlEscaper.Replace(s)
}
