package content

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/goccy/go-yaml"

	"github.com/eringen/homepage/markdown"
)

const (
	blogDir  = "blog"
	pagesDir = "pages"
)

// dateLayouts are tried in order when a frontmatter date is a string.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// yamlFormat plugs goccy/go-yaml into the frontmatter splitter.
var yamlFormat = frontmatter.NewFormat("---", "---", func(data []byte, v interface{}) error {
	return yaml.Unmarshal(data, v)
})

type frontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Date        any      `yaml:"date"`
	Tags        []string `yaml:"tags"`
	Draft       bool     `yaml:"draft"`
}

// Extractor turns a content directory into a Manifest.
type Extractor struct {
	// Location supplies the calendar fields of canonical dates.
	// Defaults to time.Local.
	Location *time.Location

	renderer *markdown.Renderer
}

// NewExtractor creates an Extractor that renders bodies with r.
func NewExtractor(r *markdown.Renderer) *Extractor {
	if r == nil {
		r = markdown.NewRenderer()
	}
	return &Extractor{Location: time.Local, renderer: r}
}

type dated struct {
	rec Record
	at  time.Time
}

// Extract reads <root>/blog/*.md and <root>/pages/*.md. Any failing file
// aborts the whole extraction.
func (e *Extractor) Extract(root string) (*Manifest, error) {
	return e.ExtractFS(os.DirFS(root))
}

// ExtractFS is Extract over an fs.FS rooted at the content directory.
func (e *Extractor) ExtractFS(fsys fs.FS) (*Manifest, error) {
	posts, err := e.extractDir(fsys, blogDir, KindPost)
	if err != nil {
		return nil, err
	}
	pages, err := e.extractDir(fsys, pagesDir, KindPage)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].at.After(posts[j].at)
	})

	return NewManifest(records(posts), records(pages)), nil
}

func records(items []dated) []Record {
	out := make([]Record, len(items))
	for i, it := range items {
		out[i] = it.rec
	}
	return out
}

func (e *Extractor) extractDir(fsys fs.FS, dir string, kind Kind) ([]dated, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", dir, err)
	}

	var items []dated
	seen := make(map[string]struct{})
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.EqualFold(path.Ext(name), ".md") {
			continue
		}
		file := path.Join(dir, name)
		src, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", file, err)
		}
		item, skip, err := e.parse(kind, Slug(name), src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		if skip {
			continue
		}
		if _, dup := seen[item.rec.Slug]; dup {
			return nil, fmt.Errorf("%s: %w: %q", file, ErrDuplicateSlug, item.rec.Slug)
		}
		seen[item.rec.Slug] = struct{}{}
		items = append(items, item)
	}
	return items, nil
}

func (e *Extractor) parse(kind Kind, slug string, src []byte) (dated, bool, error) {
	var fm frontMatter
	var body []byte
	var err error
	if kind == KindPost {
		body, err = frontmatter.MustParse(bytes.NewReader(src), &fm, yamlFormat)
	} else {
		body, err = frontmatter.Parse(bytes.NewReader(src), &fm, yamlFormat)
	}
	if err != nil {
		return dated{}, false, fmt.Errorf("%w: %v", ErrMalformedFrontmatter, err)
	}
	if fm.Draft {
		return dated{}, true, nil
	}

	rec := Record{
		Kind:        kind,
		Slug:        slug,
		Title:       fm.Title,
		Description: fm.Description,
		Tags:        nonNilTags(fm.Tags),
		Body:        string(body),
	}

	var at time.Time
	if fm.Date != nil {
		at, rec.SourceDate, err = parseDate(fm.Date)
		if err != nil {
			return dated{}, false, err
		}
		rec.Date = CanonicalDate(at, e.location())
	}

	if kind == KindPost {
		switch {
		case rec.Title == "":
			return dated{}, false, fmt.Errorf("%w: title", ErrMissingField)
		case rec.Description == "":
			return dated{}, false, fmt.Errorf("%w: description", ErrMissingField)
		case rec.Date == "":
			return dated{}, false, fmt.Errorf("%w: date", ErrMissingField)
		}
	}

	rec.HTML, err = e.renderer.Render(body)
	if err != nil {
		return dated{}, false, err
	}
	return dated{rec: rec, at: at}, false, nil
}

func (e *Extractor) location() *time.Location {
	if e.Location == nil {
		return time.Local
	}
	return e.Location
}

func parseDate(v any) (time.Time, string, error) {
	switch d := v.(type) {
	case time.Time:
		return d, d.Format("2006-01-02"), nil
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, s, nil
			}
		}
		return time.Time{}, "", fmt.Errorf("%w: %q", ErrInvalidDate, d)
	default:
		return time.Time{}, "", fmt.Errorf("%w: %v", ErrInvalidDate, v)
	}
}

// CanonicalDate formats the calendar fields of t as seen in loc, without
// zero padding: 2024-01-05 becomes "2024-1-5". A date parsed at UTC midnight
// can land on the previous day in zones west of UTC.
func CanonicalDate(t time.Time, loc *time.Location) string {
	local := t.In(loc)
	return fmt.Sprintf("%d-%d-%d", local.Year(), int(local.Month()), local.Day())
}

// ParseCanonicalDate parses a "YYYY-M-D" string as midnight in loc.
func ParseCanonicalDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-1-2", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// Slug derives a record slug from its source file name.
func Slug(filename string) string {
	return strings.TrimSuffix(path.Base(filename), path.Ext(filename))
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
