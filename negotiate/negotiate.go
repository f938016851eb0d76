// Package negotiate holds the path rules shared by the runtime negotiation
// middleware and the deploy-time edge rewrite rules. Both sides must agree on
// which paths have a markdown variant and where that variant lives.
package negotiate

import "strings"

const (
	// MediaType is the Accept token that selects the markdown variant.
	MediaType = "text/markdown"
	// Suffix is appended to a canonical path to address its markdown variant.
	Suffix = ".md"
	// IndexVariant is the markdown variant of the root path.
	IndexVariant = "/index" + Suffix
)

// Wants reports whether an Accept header value asks for markdown.
func Wants(accept string) bool {
	return strings.Contains(accept, MediaType)
}

// IsVariant reports whether path already addresses a markdown variant.
func IsVariant(path string) bool {
	return strings.HasSuffix(path, Suffix)
}

// Clean strips a single trailing slash. The root path stays "/".
func Clean(path string) string {
	if path == "" || path == "/" {
		return "/"
	}
	return strings.TrimSuffix(path, "/")
}

// VariantPath maps a canonical path to its markdown variant path.
func VariantPath(path string) string {
	path = Clean(path)
	if path == "/" {
		return IndexVariant
	}
	return path + Suffix
}

// CanonicalPath is the inverse of VariantPath.
func CanonicalPath(variant string) string {
	if variant == IndexVariant {
		return "/"
	}
	return strings.TrimSuffix(variant, Suffix)
}

// Paths is the build-time set of negotiable canonical paths.
// Membership is exact; there is no pattern matching.
type Paths map[string]struct{}

// NewPaths builds a set from cleaned paths.
func NewPaths(paths ...string) Paths {
	set := make(Paths, len(paths))
	for _, p := range paths {
		set[Clean(p)] = struct{}{}
	}
	return set
}

// Has reports whether path is negotiable.
func (p Paths) Has(path string) bool {
	_, ok := p[path]
	return ok
}

// Redirect returns the markdown variant destination for a GET request with
// the given path and Accept header, or false when no redirect applies.
func (p Paths) Redirect(path, accept string) (string, bool) {
	if !Wants(accept) || IsVariant(path) {
		return "", false
	}
	cleaned := Clean(path)
	if !p.Has(cleaned) {
		return "", false
	}
	return VariantPath(cleaned), true
}
