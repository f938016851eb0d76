// Package edge injects content-negotiation rewrite rules into the routing
// config of a static deployment, mirroring the runtime middleware for hosts
// where no application code runs before the CDN answers.
package edge

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"regexp"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/eringen/homepage/negotiate"
)

// TargetVercel is the only deployment target that takes edge rules.
const TargetVercel = "vercel"

// DefaultConfigPath is where the Vercel Build Output API keeps its routes.
var DefaultConfigPath = filepath.Join(".vercel", "output", "config.json")

var (
	ErrInvalidConfig = errors.New("edge: invalid routing config")
	ErrRoutesNotList = errors.New("edge: routes is not a list")
)

// Condition restricts a rule to requests carrying a matching header.
type Condition struct {
	Type  string `json:"type"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Rule is one entry of the routes list.
type Rule struct {
	Src      string      `json:"src"`
	Has      []Condition `json:"has"`
	Dest     string      `json:"dest"`
	Continue bool        `json:"continue"`
}

// Rules returns the two negotiation rules: root first, then every other path
// with or without a trailing slash. Destinations come from the same path
// transform the middleware uses.
func Rules() []Rule {
	accept := []Condition{{
		Type:  "header",
		Key:   "accept",
		Value: "(.*)" + regexp.QuoteMeta(negotiate.MediaType) + "(.*)",
	}}
	return []Rule{
		{Src: "^/$", Has: accept, Dest: negotiate.VariantPath("/"), Continue: true},
		{Src: "^/(.+?)/?$", Has: accept, Dest: negotiate.VariantPath("/$1"), Continue: true},
	}
}

// Injector rewrites one routing config file in place.
type Injector struct {
	Target     string
	Dev        bool
	ConfigPath string
}

// Enabled reports whether rules should be injected for this build.
func (i Injector) Enabled() bool {
	return i.Target == TargetVercel && !i.Dev
}

// Inject prepends the negotiation rules to the config at ConfigPath. It
// returns false without touching the file when the build is not eligible or
// the rules are already at the head of the list.
func (i Injector) Inject() (bool, error) {
	if !i.Enabled() {
		return false, nil
	}
	path := i.ConfigPath
	if path == "" {
		path = DefaultConfigPath
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("edge: stat %s: %w", path, err)
	}
	doc, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("edge: read %s: %w", path, err)
	}
	out, changed, err := Prepend(doc, Rules())
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	if !changed {
		return false, nil
	}
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("edge: write %s: %w", path, err)
	}
	return true, nil
}

// Prepend returns doc with rules placed ahead of its existing routes. Every
// other byte of doc is kept as is. When the routes already start with rules
// the document is returned unchanged.
func Prepend(doc []byte, rules []Rule) ([]byte, bool, error) {
	if !gjson.ValidBytes(doc) {
		return nil, false, ErrInvalidConfig
	}
	routes := gjson.GetBytes(doc, "routes")
	if routes.Exists() && !routes.IsArray() {
		return nil, false, ErrRoutesNotList
	}
	existing := routes.Array()
	if hasPrefix(existing, rules) {
		return doc, false, nil
	}

	list := []byte("[")
	for n, r := range rules {
		raw, err := json.Marshal(r)
		if err != nil {
			return nil, false, err
		}
		if n > 0 {
			list = append(list, ',')
		}
		list = append(list, raw...)
	}
	for _, r := range existing {
		list = append(list, ',')
		list = append(list, r.Raw...)
	}
	list = append(list, ']')

	out, err := sjson.SetRawBytes(doc, "routes", list)
	if err != nil {
		return nil, false, fmt.Errorf("edge: set routes: %w", err)
	}
	return out, true, nil
}

func hasPrefix(existing []gjson.Result, rules []Rule) bool {
	if len(existing) < len(rules) {
		return false
	}
	for n, want := range rules {
		var got Rule
		if err := json.Unmarshal([]byte(existing[n].Raw), &got); err != nil {
			return false
		}
		if !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
