package metamodel

import (
	"fmt"
	"strings"

	"pii-metamodel/internal/analyze"
)

const (
	// packageWildcard matches every type of one package: "example.com/app/graph.*".
	packageWildcard = ".*"
	// treeWildcard matches a package and its sub-packages: "example.com/app/...".
	treeWildcard = "/..."
)

// IgnoreMatcher decides which types the walk must not descend into. It is the
// only way to make generation succeed for recursive types.
type IgnoreMatcher struct {
	exact    map[string]struct{}
	prefixes []string // "pkg." for "pkg.*" entries
	trees    []string // "pkg" for "pkg/..." entries
}

// NewIgnoreMatcher builds a matcher from exact qualified type names,
// "pkg.*" package wildcards and "pkg/..." package-tree wildcards.
func NewIgnoreMatcher(entries []string) *IgnoreMatcher {
	m := &IgnoreMatcher{exact: make(map[string]struct{}, len(entries))}

	for _, e := range entries {
		e = strings.TrimSpace(e)

		switch {
		case e == "":
		case strings.HasSuffix(e, treeWildcard):
			m.trees = append(m.trees, strings.TrimSuffix(e, treeWildcard))
		case strings.HasSuffix(e, packageWildcard):
			m.prefixes = append(m.prefixes, strings.TrimSuffix(e, "*"))
		default:
			m.exact[e] = struct{}{}
		}
	}

	return m
}

// Match reports whether the type identified by id is ignored.
func (m *IgnoreMatcher) Match(id analyze.TypeID) bool {
	name := id.String()

	if _, ok := m.exact[name]; ok {
		return true
	}

	for _, p := range m.prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}

	for _, tree := range m.trees {
		if id.PkgPath == tree || strings.HasPrefix(id.PkgPath, tree+"/") {
			return true
		}
	}

	return false
}

// ShouldIgnore reports whether t (after pointer dereference) is ignored.
// Anonymous types are never ignored.
func (m *IgnoreMatcher) ShouldIgnore(t *analyze.TypeInfo) bool {
	t = t.Deref()
	if t == nil || !t.IsNamed() {
		return false
	}

	return m.Match(t.ID)
}

// ShouldIgnore is a one-shot form of IgnoreMatcher.ShouldIgnore.
func ShouldIgnore(entries []string, t *analyze.TypeInfo) bool {
	return NewIgnoreMatcher(entries).ShouldIgnore(t)
}

// ValidateIgnoreEntry checks the shape of a single ignore entry.
func ValidateIgnoreEntry(entry string) error {
	switch {
	case strings.TrimSpace(entry) == "":
		return fmt.Errorf("empty ignore entry")
	case strings.ContainsAny(entry, " \t"):
		return fmt.Errorf("ignore entry %q contains whitespace", entry)
	case entry == packageWildcard || entry == treeWildcard || entry == "*":
		return fmt.Errorf("ignore entry %q matches every type", entry)
	case strings.Contains(strings.TrimSuffix(entry, "*"), "*"):
		return fmt.Errorf("ignore entry %q: wildcard is only allowed as a trailing .* or /...", entry)
	case strings.HasSuffix(entry, "*") && !strings.HasSuffix(entry, packageWildcard):
		return fmt.Errorf("ignore entry %q: wildcard is only allowed as a trailing .* or /...", entry)
	}

	return nil
}
