// Package markdown renders Markdown to HTML with goldmark and exposes the
// result as templ components.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts Markdown source to an HTML fragment. It keeps no
// per-call state, so one instance can be shared by every caller.
type Renderer struct {
	md goldmark.Markdown
}

type options struct {
	highlight bool
}

// Option configures a Renderer.
type Option func(*options)

// WithHighlighting marks up fenced code blocks with chroma CSS classes.
// The stylesheet is left to the site.
func WithHighlighting() Option {
	return func(o *options) { o.highlight = true }
}

// NewRenderer creates a Renderer with GitHub-flavoured defaults and raw HTML
// passed through unchanged. No custom syntax is registered.
func NewRenderer(opts ...Option) *Renderer {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	exts := []goldmark.Extender{extension.GFM}
	if o.highlight {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
		))
	}
	return &Renderer{md: goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)}
}

// Render converts md to an HTML fragment.
func (r *Renderer) Render(md []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(md, &buf); err != nil {
		return "", fmt.Errorf("markdown: render: %w", err)
	}
	return buf.String(), nil
}

var defaultRenderer = NewRenderer()

// RenderMarkdown writes the HTML representation of md to buf.
func RenderMarkdown(buf *bytes.Buffer, md string) error {
	return defaultRenderer.md.Convert([]byte(md), buf)
}

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := RenderMarkdown(&buf, content); err != nil {
			return err
		}
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// HTML returns a templ.Component that writes pre-rendered HTML verbatim.
// Use it for content records, whose HTML is produced once at build time.
func HTML(rendered string) templ.Component {
	return templ.Raw(rendered)
}
