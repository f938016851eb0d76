package homepage

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/eringen/homepage/content"
)

type variantFrontMatter struct {
	Title       string   `yaml:"title"`
	Tags        []string `yaml:"tags"`
	Description string   `yaml:"description"`
	URL         string   `yaml:"url"`
}

func splitVariant(t *testing.T, doc []byte) (variantFrontMatter, string) {
	t.Helper()
	s := string(doc)
	if !strings.HasPrefix(s, "---\n") {
		t.Fatalf("variant should start with frontmatter: %q", s)
	}
	end := strings.Index(s[4:], "\n---\n")
	if end < 0 {
		t.Fatalf("unterminated frontmatter: %q", s)
	}
	var fm variantFrontMatter
	if err := yaml.Unmarshal([]byte(s[4:4+end]), &fm); err != nil {
		t.Fatalf("frontmatter is not valid YAML: %v\n%s", err, s[4:4+end])
	}
	return fm, s[4+end+len("\n---\n"):]
}

func TestRespondSinglePost(t *testing.T) {
	r := NewResponder(testManifest(), testConfig())
	doc, err := r.Respond("/blog/summer")
	if err != nil {
		t.Fatalf("Respond failed: %v", err)
	}

	fm, body := splitVariant(t, doc)
	if fm.Title != `A "quoted" \ title` {
		t.Errorf("title round-trip = %q", fm.Title)
	}
	if !strings.Contains(string(doc), "\ndate: 2024-06-01\n") {
		t.Errorf("source date not preserved: %q", doc)
	}
	if strings.Join(fm.Tags, ",") != "go,web" {
		t.Errorf("tags = %v", fm.Tags)
	}
	if fm.URL != testSiteURL+"/blog/summer" {
		t.Errorf("url = %q", fm.URL)
	}
	if !strings.Contains(string(doc), "tags: [go, web]\n") {
		t.Errorf("tags line not in flow form: %q", doc)
	}

	for _, want := range []string{
		"[bio](" + testSiteURL + "/bio)",
		"[Go](https://go.dev)",
		`<a href="` + testSiteURL + `/blog">`,
		"![chart](" + testSiteURL + "/images/chart.png)",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
	if !strings.HasPrefix(body, "\nSee") {
		t.Errorf("body should follow a blank line: %q", body)
	}
}

func TestRespondEmptyTagsIsExplicit(t *testing.T) {
	doc, err := NewResponder(testManifest(), testConfig()).Respond("/blog/winter")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(doc), "\ntags: []\n") {
		t.Errorf("empty tags should render as []: %q", doc)
	}
}

func TestRespondPageKeepsRelativeLinks(t *testing.T) {
	doc, err := NewResponder(testManifest(), testConfig()).Respond("/bio")
	if err != nil {
		t.Fatal(err)
	}
	fm, body := splitVariant(t, doc)
	if fm.URL != testSiteURL+"/bio" {
		t.Errorf("url = %q", fm.URL)
	}
	if !strings.Contains(body, "[here](/blog)") {
		t.Errorf("page links should be left as written: %q", body)
	}
	if strings.Contains(string(doc), "\ndate:") {
		t.Errorf("undated page should omit date: %q", doc)
	}
}

func TestRespondRootUsesIndexPage(t *testing.T) {
	doc, err := NewResponder(testManifest(), testConfig()).Respond("/")
	if err != nil {
		t.Fatal(err)
	}
	fm, body := splitVariant(t, doc)
	if fm.Title != "Home" || fm.URL != testSiteURL+"/" {
		t.Errorf("frontmatter = %+v", fm)
	}
	if strings.TrimSpace(body) != "Welcome." {
		t.Errorf("body = %q", body)
	}
}

func TestRespondIndexListsPostsInOrder(t *testing.T) {
	doc, err := NewResponder(testManifest(), testConfig()).Respond("/blog")
	if err != nil {
		t.Fatal(err)
	}
	fm, body := splitVariant(t, doc)
	if fm.Title != "Blog" || fm.URL != testSiteURL+"/blog" {
		t.Errorf("frontmatter = %+v", fm)
	}
	if fm.Description != testConfig().Description {
		t.Errorf("description round-trip = %q", fm.Description)
	}

	want := "\n" +
		"- [A \"quoted\" \\ title](" + testSiteURL + "/blog/summer.md) - 2024-6-1\n" +
		"  Written in June\n" +
		"- [Winter](" + testSiteURL + "/blog/winter.md) - 2024-1-1\n"
	if body != want {
		t.Errorf("index body =\n%q\nwant\n%q", body, want)
	}
}

func TestRespondIsIdempotent(t *testing.T) {
	r := NewResponder(testManifest(), testConfig())
	for _, p := range []string{"/", "/bio", "/blog", "/blog/summer"} {
		a, err := r.Respond(p)
		if err != nil {
			t.Fatal(err)
		}
		b, _ := r.Respond(p)
		if !bytes.Equal(a, b) {
			t.Errorf("%s: responses differ", p)
		}
	}
}

func TestRespondNotFound(t *testing.T) {
	r := NewResponder(testManifest(), testConfig())
	for _, p := range []string{"/blog/missing", "/missing", "/index", "/bio/extra", "/blog/"} {
		if _, err := r.Respond(p); !errors.Is(err, content.ErrNotFound) {
			t.Errorf("Respond(%q) err = %v, want ErrNotFound", p, err)
		}
	}
}

func TestEscapeYAML(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`plain`, `plain`},
		{`say "hi"`, `say \"hi\"`},
		{`C:\dir`, `C:\\dir`},
		{`\"`, `\\\"`},
	}
	for _, tt := range tests {
		if got := EscapeYAML(tt.input); got != tt.expected {
			t.Errorf("EscapeYAML(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestEscapeYAMLRoundTrip(t *testing.T) {
	for _, s := range []string{`a "b" \ c`, `\\"\"`, `trailing\`, `"`} {
		var out struct {
			V string `yaml:"v"`
		}
		if err := yaml.Unmarshal([]byte(`v: "`+EscapeYAML(s)+`"`), &out); err != nil {
			t.Fatalf("unmarshal %q: %v", s, err)
		}
		if out.V != s {
			t.Errorf("round-trip %q -> %q", s, out.V)
		}
	}
}
