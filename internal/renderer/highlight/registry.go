package highlight

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrExtensionTaken is returned when a user rule set claims an extension a
// built-in set already serves.
var ErrExtensionTaken = errors.New("extension already registered")

// Registry maps file extensions to rule sets. It is built once and never
// mutated, so it is safe to share.
type Registry struct {
	byExtension map[string]*RuleSet
	byName      map[string]*RuleSet
}

// NewRegistry builds a registry from the built-in languages plus extra sets.
// Extra sets that are nil, unnamed, or that claim an extension already taken
// are skipped; the returned error joins one entry per rejected set and the
// registry is still usable.
func NewRegistry(extra ...*RuleSet) (*Registry, error) {
	r := &Registry{
		byExtension: make(map[string]*RuleSet),
		byName:      make(map[string]*RuleSet),
	}
	for _, rs := range builtinRuleSets() {
		r.add(rs)
	}

	var errs []error
	for _, rs := range extra {
		if err := r.check(rs); err != nil {
			errs = append(errs, err)
			continue
		}
		r.add(rs)
	}
	return r, errors.Join(errs...)
}

// DefaultRegistry returns a registry holding only the built-in languages.
func DefaultRegistry() *Registry {
	r, _ := NewRegistry()
	return r
}

func (r *Registry) check(rs *RuleSet) error {
	if rs == nil {
		return fmt.Errorf("%w: nil rule set", ErrInvalidRule)
	}
	if rs.Name == "" {
		return fmt.Errorf("%w: rule set without a name", ErrInvalidRule)
	}
	if _, ok := r.byName[strings.ToLower(rs.Name)]; ok {
		return fmt.Errorf("language %q: %w", rs.Name, ErrExtensionTaken)
	}
	if len(rs.Extensions) == 0 {
		return fmt.Errorf("%w: language %q has no extensions", ErrInvalidRule, rs.Name)
	}
	for _, ext := range rs.Extensions {
		if !strings.HasPrefix(ext, ".") || ext != strings.ToLower(ext) {
			return fmt.Errorf("%w: language %q: extension %q must be lowercase and start with a dot",
				ErrInvalidRule, rs.Name, ext)
		}
		if owner, ok := r.byExtension[ext]; ok {
			return fmt.Errorf("language %q: %s owned by %s: %w", rs.Name, ext, owner.Name, ErrExtensionTaken)
		}
	}
	return nil
}

func (r *Registry) add(rs *RuleSet) {
	r.byName[strings.ToLower(rs.Name)] = rs
	for _, ext := range rs.Extensions {
		r.byExtension[ext] = rs
	}
}

// Resolve returns the rule set for a lowercase dot-prefixed extension, or nil
// when the extension is unknown.
func (r *Registry) Resolve(ext string) *RuleSet {
	return r.byExtension[ext]
}

// ResolvePath resolves the rule set for a file path.
func (r *Registry) ResolvePath(path string) *RuleSet {
	return r.Resolve(ExtensionOf(path))
}

// Language returns a rule set by name, case-insensitively.
func (r *Registry) Language(name string) (*RuleSet, bool) {
	rs, ok := r.byName[strings.ToLower(name)]
	return rs, ok
}

// Languages returns every rule set sorted by name.
func (r *Registry) Languages() []*RuleSet {
	out := make([]*RuleSet, 0, len(r.byName))
	for _, rs := range r.byName {
		out = append(out, rs)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Extensions returns every registered extension, sorted.
func (r *Registry) Extensions() []string {
	out := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// ExtensionOf returns the lowercase final extension of path including the dot,
// or "" when there is none. "archive.tar.gz" yields ".gz".
func ExtensionOf(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
