package registry

import (
	"sort"
	"strings"
)

// DefaultFilename is the name of the rule definition file looked up next to the executable
const DefaultFilename = "extension_to_comment_map"

// BlockPair is a (start, end) marker pair delimiting a multi-line comment
type BlockPair struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// RuleSet holds the comment syntax shared by one or more file extensions
type RuleSet struct {
	LineMarkers []string    `json:"line"`
	BlockPairs  []BlockPair `json:"block"`
}

// Registry maps file extensions to their comment rules.
// It is built once and never mutated afterwards.
type Registry struct {
	rules  map[string]*RuleSet
	source string
}

func newRegistry(source string) *Registry {
	return &Registry{
		rules:  make(map[string]*RuleSet),
		source: source,
	}
}

// add registers rs for every extension, replacing earlier rules
func (r *Registry) add(extensions []string, rs *RuleSet) {
	for _, ext := range extensions {
		r.rules[strings.TrimPrefix(ext, ".")] = rs
	}
}

// Source describes where the rules were loaded from
func (r *Registry) Source() string {
	return r.source
}

// Supported reports whether ext (without the leading dot) has a rule set
func (r *Registry) Supported(ext string) bool {
	_, ok := r.rules[ext]
	return ok
}

// Lookup returns the rule set registered for ext
func (r *Registry) Lookup(ext string) (RuleSet, bool) {
	rs, ok := r.rules[ext]
	if !ok {
		return RuleSet{}, false
	}
	return *rs, true
}

// Extensions returns every supported extension in sorted order
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.rules))
	for ext := range r.rules {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Len returns the number of supported extensions
func (r *Registry) Len() int {
	return len(r.rules)
}

// Merge returns a new registry holding r's rules overlaid with other's.
// Neither input is modified.
func (r *Registry) Merge(other *Registry) *Registry {
	source := r.source
	if other != nil && other.source != "" {
		source = r.source + " + " + other.source
	}
	merged := newRegistry(source)
	for ext, rs := range r.rules {
		merged.rules[ext] = rs
	}
	if other != nil {
		for ext, rs := range other.rules {
			merged.rules[ext] = rs
		}
	}
	return merged
}
