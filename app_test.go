package homepage

import (
	"time"

	"github.com/eringen/homepage/content"
)

const testSiteURL = "https://example.dev"

func testConfig() SiteConfig {
	return SiteConfig{
		Name:        "Example",
		URL:         testSiteURL,
		Description: `Notes on "Go" and C:\ paths`,
		Author:      "Sam Doe",
		Mode:        ModeDevelopment,
		Location:    time.UTC,
	}
}

func testManifest() *content.Manifest {
	return content.NewManifest(
		[]content.Record{
			{
				Kind:        content.KindPost,
				Slug:        "summer",
				Title:       `A "quoted" \ title`,
				Description: "Written in June",
				Date:        "2024-6-1",
				SourceDate:  "2024-06-01",
				Tags:        []string{"go", "web"},
				Body:        "\nSee [bio](/bio) and [Go](https://go.dev) or <a href=\"/blog\">all</a>.\n\n![chart](/images/chart.png)\n",
				HTML:        "<p>See <a href=\"/bio\">bio</a>.</p>\n<p><img src=\"/images/chart.png\" alt=\"chart\"><img src=\"//cdn.example/x.png\" alt=\"cdn\"></p>\n",
			},
			{
				Kind:        content.KindPost,
				Slug:        "winter",
				Title:       "Winter",
				Description: "",
				Date:        "2024-1-1",
				SourceDate:  "2024-01-01",
				Tags:        []string{},
				Body:        "Cold.\n",
				HTML:        "<p>Cold.</p>\n",
			},
		},
		[]content.Record{
			{Kind: content.KindPage, Slug: "index", Title: "Home", Tags: []string{}, Body: "Welcome.\n", HTML: "<p>Welcome.</p>\n"},
			{Kind: content.KindPage, Slug: "bio", Title: "Bio", Description: "Who", Tags: []string{}, Body: "I write [here](/blog).\n", HTML: "<p>I write <a href=\"/blog\">here</a>.</p>\n"},
		},
	)
}

func fixedClock(year int) func() time.Time {
	return func() time.Time { return time.Date(year, 3, 1, 12, 0, 0, 0, time.UTC) }
}

func newTestApp(mode string) *App {
	cfg := testConfig()
	cfg.Mode = mode
	m := testManifest()
	return New(cfg, m, content.NegotiablePaths(m), ViewFuncs{}, WithClock(fixedClock(2026)))
}
