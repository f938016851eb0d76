package content

import "errors"

// Sentinel errors for extraction and lookup.
var (
	ErrNotFound             = errors.New("content: record not found")
	ErrMalformedFrontmatter = errors.New("content: malformed frontmatter")
	ErrMissingField         = errors.New("content: missing required field")
	ErrInvalidDate          = errors.New("content: invalid date")
	ErrDuplicateSlug        = errors.New("content: duplicate slug")
)
