package homepage

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/eringen/homepage/content"
)

type rssXML struct {
	XMLName      xml.Name   `xml:"rss"`
	Version      string     `xml:"version,attr"`
	XMLNSContent string     `xml:"xmlns:content,attr"`
	XMLNSAtom    string     `xml:"xmlns:atom,attr"`
	Channel      rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Language    string    `xml:"language,omitempty"`
	Copyright   string    `xml:"copyright"`
	Generator   string    `xml:"generator"`
	AtomLink    atomLink  `xml:"atom:link"`
	Items       []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string       `xml:"title"`
	Link        string       `xml:"link"`
	GUID        string       `xml:"guid"`
	Description string       `xml:"description"`
	Content     rssContent   `xml:"content:encoded"`
	Categories  []string     `xml:"category"`
	PubDate     string       `xml:"pubDate"`
	Enclosure   rssEnclosure `xml:"enclosure"`
}

type rssContent struct {
	Body string `xml:",cdata"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Type   string `xml:"type,attr"`
	Length int    `xml:"length,attr"`
}

// FeedPath is where the feed is served and materialized.
const FeedPath = "/rss.xml"

// Feed builds the RSS 2.0 document for the blog.
type Feed struct {
	manifest *content.Manifest
	cfg      SiteConfig
	now      func() time.Time
}

// NewFeed creates a Feed over m. A nil now uses time.Now.
func NewFeed(m *content.Manifest, cfg SiteConfig, now func() time.Time) *Feed {
	cfg.setDefaults()
	if now == nil {
		now = time.Now
	}
	return &Feed{manifest: m, cfg: cfg, now: now}
}

// Enabled reports whether the feed is produced in the configured mode.
// Live production servers serve the copy materialized at build time.
func (f *Feed) Enabled() bool {
	return f.cfg.Mode == ModeDevelopment || f.cfg.Mode == ModePrerender
}

// Generate renders the feed. Posts appear in manifest order, which is
// expected to be newest first. Outside development and prerender mode it
// returns nil without error.
func (f *Feed) Generate() ([]byte, error) {
	if !f.Enabled() {
		return nil, nil
	}
	base := strings.TrimRight(f.cfg.URL, "/")
	posts := f.manifest.Posts()
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		published, err := content.ParseCanonicalDate(p.Date, f.cfg.Location)
		if err != nil {
			return nil, fmt.Errorf("homepage: feed entry %s: %w", p.Slug, err)
		}
		body, err := absolutizeImages(p.HTML, base)
		if err != nil {
			return nil, fmt.Errorf("homepage: feed entry %s: %w", p.Slug, err)
		}
		postURL := AbsURL(base, p.Path())
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			GUID:        postURL,
			Description: p.Description,
			Content:     rssContent{Body: body},
			Categories:  p.Tags,
			PubDate:     published.Format(time.RFC1123Z),
			Enclosure: rssEnclosure{
				URL:  AbsURL(base, strings.Trim(f.cfg.OGImagePath, "/")+"/"+p.Slug+"/og.jpg"),
				Type: "image/jpeg",
			},
		})
	}

	feed := rssXML{
		Version:      "2.0",
		XMLNSContent: "http://purl.org/rss/1.0/modules/content/",
		XMLNSAtom:    "http://www.w3.org/2005/Atom",
		Channel: rssChannel{
			Title:       f.cfg.Name,
			Link:        AbsURL(base, "/"),
			Description: f.cfg.Description,
			Language:    f.cfg.Language,
			Copyright:   f.copyright(),
			Generator:   "homepage",
			AtomLink:    atomLink{Href: AbsURL(base, FeedPath), Rel: "self", Type: "application/rss+xml"},
			Items:       items,
		},
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(feed); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (f *Feed) copyright() string {
	text := fmt.Sprintf("All rights reserved %d-%d", f.cfg.CopyrightStart, f.now().Year())
	if f.cfg.Author != "" {
		text += ", " + f.cfg.Author
	}
	return text
}

// absolutizeImages rewrites root-relative img src attributes to absolute URLs.
func absolutizeImages(fragment, base string) (string, error) {
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	for _, n := range nodes {
		rewriteImageSrc(n, base)
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func rewriteImageSrc(n *html.Node, base string) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Img {
		for i, attr := range n.Attr {
			if attr.Key == "src" && isInternal(attr.Val) {
				n.Attr[i].Val = base + attr.Val
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteImageSrc(c, base)
	}
}
