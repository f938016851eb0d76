// Package content extracts markdown sources into an immutable manifest of
// records and persists that manifest as the build artifact read at runtime.
package content

// Kind distinguishes blog posts from standalone pages.
type Kind string

const (
	KindPost Kind = "post"
	KindPage Kind = "page"
)

// Record is the normalized form of one markdown source file.
type Record struct {
	Kind        Kind
	Slug        string
	Title       string
	Description string
	Date        string // canonical YYYY-M-D
	SourceDate  string // date as written in frontmatter
	Tags        []string
	Body        string // markdown without frontmatter
	HTML        string // Body rendered once at extraction
}

// Path returns the canonical site path of the record.
func (r Record) Path() string {
	if r.Kind == KindPost {
		return "/blog/" + r.Slug
	}
	if r.Slug == IndexSlug {
		return "/"
	}
	return "/" + r.Slug
}

// IndexSlug is the page slug served at the site root.
const IndexSlug = "index"

// BlogPath is the canonical path of the blog listing.
const BlogPath = "/blog"

// Manifest is the read-only collection of extracted records. Posts are kept
// newest first; pages are kept in file-name order.
type Manifest struct {
	posts  []Record
	pages  []Record
	bySlug map[Kind]map[string]int
}

// NewManifest builds a manifest that keeps posts and pages in the given
// order. Callers pass posts already sorted newest first.
func NewManifest(posts, pages []Record) *Manifest {
	m := &Manifest{
		posts:  append([]Record(nil), posts...),
		pages:  append([]Record(nil), pages...),
		bySlug: map[Kind]map[string]int{KindPost: {}, KindPage: {}},
	}
	for i, r := range m.posts {
		m.bySlug[KindPost][r.Slug] = i
	}
	for i, r := range m.pages {
		m.bySlug[KindPage][r.Slug] = i
	}
	return m
}

// Posts returns blog posts, newest first.
func (m *Manifest) Posts() []Record {
	return append([]Record(nil), m.posts...)
}

// Pages returns standalone pages.
func (m *Manifest) Pages() []Record {
	return append([]Record(nil), m.pages...)
}

// Post looks up a blog post by slug.
func (m *Manifest) Post(slug string) (Record, error) {
	return m.lookup(KindPost, slug)
}

// Page looks up a standalone page by slug.
func (m *Manifest) Page(slug string) (Record, error) {
	return m.lookup(KindPage, slug)
}

func (m *Manifest) lookup(kind Kind, slug string) (Record, error) {
	i, ok := m.bySlug[kind][slug]
	if !ok {
		return Record{}, ErrNotFound
	}
	if kind == KindPost {
		return m.posts[i], nil
	}
	return m.pages[i], nil
}

// Len returns the total number of records.
func (m *Manifest) Len() int {
	return len(m.posts) + len(m.pages)
}
