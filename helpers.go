package homepage

import (
	"os"
	"strings"
)

// AbsURL joins the site origin with a root-relative path.
func AbsURL(base, path string) string {
	base = strings.TrimRight(base, "/")
	if path == "" || path == "/" {
		return base + "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
