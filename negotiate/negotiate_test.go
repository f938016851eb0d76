package negotiate

import "testing"

func TestVariantPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/", "/index.md"},
		{"", "/index.md"},
		{"/bio", "/bio.md"},
		{"/bio/", "/bio.md"},
		{"/blog", "/blog.md"},
		{"/blog/hello-world/", "/blog/hello-world.md"},
	}
	for _, tt := range tests {
		if got := VariantPath(tt.input); got != tt.expected {
			t.Errorf("VariantPath(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestCanonicalPathInvertsVariantPath(t *testing.T) {
	for _, p := range []string{"/", "/bio", "/blog", "/blog/a-post"} {
		if got := CanonicalPath(VariantPath(p)); got != p {
			t.Errorf("CanonicalPath(VariantPath(%q)) = %q", p, got)
		}
	}
}

func TestRedirect(t *testing.T) {
	paths := NewPaths("/", "/bio", "/blog", "/blog/first/")

	tests := []struct {
		name   string
		path   string
		accept string
		dest   string
		ok     bool
	}{
		{"markdown accept", "/bio", "text/markdown", "/bio.md", true},
		{"html accept", "/bio", "text/html", "", false},
		{"already variant", "/bio.md", "text/markdown", "", false},
		{"trailing slash", "/bio/", "text/markdown", "/bio.md", true},
		{"root", "/", "text/markdown, text/html;q=0.9", "/index.md", true},
		{"post", "/blog/first", "text/markdown", "/blog/first.md", true},
		{"unknown path", "/nope", "text/markdown", "", false},
		{"double slash only stripped once", "/bio//", "text/markdown", "", false},
	}
	for _, tt := range tests {
		dest, ok := paths.Redirect(tt.path, tt.accept)
		if ok != tt.ok || dest != tt.dest {
			t.Errorf("%s: Redirect(%q, %q) = (%q, %v), want (%q, %v)", tt.name, tt.path, tt.accept, dest, ok, tt.dest, tt.ok)
		}
	}
}

func TestWants(t *testing.T) {
	if !Wants("text/html, text/markdown;q=0.5") {
		t.Error("expected markdown token to be detected")
	}
	if Wants("application/json") {
		t.Error("expected json accept to be ignored")
	}
}
