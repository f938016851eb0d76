package homepage

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/eringen/homepage/content"
)

type feedDoc struct {
	Channel struct {
		Title     string `xml:"title"`
		Copyright string `xml:"copyright"`
		Items     []struct {
			Title      string   `xml:"title"`
			Link       string   `xml:"link"`
			Categories []string `xml:"category"`
			PubDate    string   `xml:"pubDate"`
			Enclosure  struct {
				URL  string `xml:"url,attr"`
				Type string `xml:"type,attr"`
			} `xml:"enclosure"`
		} `xml:"item"`
	} `xml:"channel"`
}

func generateFeed(t *testing.T, cfg SiteConfig, now func() time.Time) (string, feedDoc) {
	t.Helper()
	out, err := NewFeed(testManifest(), cfg, now).Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	var doc feedDoc
	if err := xml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("feed is not valid XML: %v\n%s", err, out)
	}
	return string(out), doc
}

func TestFeedItems(t *testing.T) {
	raw, doc := generateFeed(t, testConfig(), fixedClock(2026))

	if !strings.HasPrefix(raw, xml.Header) {
		t.Error("feed should start with the XML declaration")
	}
	if doc.Channel.Title != "Example" {
		t.Errorf("channel title = %q", doc.Channel.Title)
	}
	if len(doc.Channel.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(doc.Channel.Items))
	}

	first := doc.Channel.Items[0]
	if first.Title != `A "quoted" \ title` || first.Link != testSiteURL+"/blog/summer" {
		t.Errorf("first item = %q %q", first.Title, first.Link)
	}
	if doc.Channel.Items[1].Title != "Winter" {
		t.Errorf("items should keep manifest order, second = %q", doc.Channel.Items[1].Title)
	}
	if strings.Join(first.Categories, ",") != "go,web" {
		t.Errorf("categories = %v", first.Categories)
	}
	if len(doc.Channel.Items[1].Categories) != 0 {
		t.Errorf("untagged post has categories %v", doc.Channel.Items[1].Categories)
	}
	if first.PubDate != "Sat, 01 Jun 2024 00:00:00 +0000" {
		t.Errorf("pubDate = %q", first.PubDate)
	}
	if first.Enclosure.URL != testSiteURL+"/__og-image__/image/blog/summer/og.jpg" || first.Enclosure.Type != "image/jpeg" {
		t.Errorf("enclosure = %+v", first.Enclosure)
	}
}

func TestFeedAbsolutizesImages(t *testing.T) {
	raw, _ := generateFeed(t, testConfig(), fixedClock(2026))
	if !strings.Contains(raw, `src="`+testSiteURL+`/images/chart.png"`) {
		t.Errorf("root-relative image not rewritten:\n%s", raw)
	}
	if !strings.Contains(raw, `src="//cdn.example/x.png"`) {
		t.Errorf("protocol-relative image should be untouched:\n%s", raw)
	}
	if !strings.Contains(raw, `<a href="/bio">`) {
		t.Errorf("links in feed content should be untouched:\n%s", raw)
	}
}

func TestFeedCopyrightFollowsClock(t *testing.T) {
	_, doc := generateFeed(t, testConfig(), fixedClock(2031))
	if doc.Channel.Copyright != "All rights reserved 2019-2031, Sam Doe" {
		t.Errorf("copyright = %q", doc.Channel.Copyright)
	}

	cfg := testConfig()
	cfg.Author = ""
	cfg.CopyrightStart = 2020
	_, doc = generateFeed(t, cfg, fixedClock(2026))
	if doc.Channel.Copyright != "All rights reserved 2020-2026" {
		t.Errorf("copyright without author = %q", doc.Channel.Copyright)
	}
}

func TestFeedModes(t *testing.T) {
	tests := []struct {
		mode    string
		enabled bool
	}{
		{ModeDevelopment, true},
		{ModePrerender, true},
		{ModeProduction, false},
		{"", false},
	}
	for _, tt := range tests {
		cfg := testConfig()
		cfg.Mode = tt.mode
		out, err := NewFeed(testManifest(), cfg, nil).Generate()
		if err != nil {
			t.Fatalf("mode %q: %v", tt.mode, err)
		}
		if (out != nil) != tt.enabled {
			t.Errorf("mode %q: got output %v, want %v", tt.mode, out != nil, tt.enabled)
		}
	}
}

func TestFeedRejectsMalformedDate(t *testing.T) {
	m := content.NewManifest([]content.Record{
		{Kind: content.KindPost, Slug: "bad", Title: "Bad", Date: "June first", Tags: []string{}},
	}, nil)
	if _, err := NewFeed(m, testConfig(), nil).Generate(); err == nil {
		t.Fatal("expected an error for a malformed date")
	}
}
