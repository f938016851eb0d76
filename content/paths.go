package content

import "github.com/eringen/homepage/negotiate"

// NegotiablePaths returns every canonical path that has a markdown variant:
// each page, the blog listing, and each post.
func NegotiablePaths(m *Manifest) negotiate.Paths {
	paths := make([]string, 0, m.Len()+1)
	for _, p := range m.pages {
		paths = append(paths, p.Path())
	}
	paths = append(paths, BlogPath)
	for _, p := range m.posts {
		paths = append(paths, p.Path())
	}
	return negotiate.NewPaths(paths...)
}
