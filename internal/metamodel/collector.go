package metamodel

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"pii-metamodel/internal/analyze"
)

// FieldCollector lists the fields of a type together with the fields of all
// of its ancestors.
type FieldCollector struct {
	cache *lru.Cache[*analyze.TypeInfo, []analyze.FieldInfo]
}

// NewFieldCollector creates a collector memoising up to size results.
// A size <= 0 disables memoisation.
func NewFieldCollector(size int) *FieldCollector {
	c := &FieldCollector{}

	if size > 0 {
		// lru.New only fails for a non-positive size
		c.cache, _ = lru.New[*analyze.TypeInfo, []analyze.FieldInfo](size)
	}

	return c
}

// Collect returns the fields of every ancestor of t in Ancestors order,
// followed by the fields t declares itself. Shadowed fields are kept.
// The returned slice must not be modified.
func (c *FieldCollector) Collect(t *analyze.TypeInfo) []analyze.FieldInfo {
	t = t.Deref()
	if t == nil {
		return []analyze.FieldInfo{}
	}

	if c.cache != nil {
		if fields, ok := c.cache.Get(t); ok {
			return fields
		}
	}

	var fields []analyze.FieldInfo
	for _, ancestor := range Ancestors(t) {
		fields = append(fields, ancestor.Fields...)
	}

	fields = append(fields, t.Fields...)
	if fields == nil {
		fields = []analyze.FieldInfo{}
	}

	if c.cache != nil {
		c.cache.Add(t, fields)
	}

	return fields
}

// Ancestors returns the ancestor chain of t: first the embedded bases,
// depth-first in declaration order (a base, then its own bases), then the
// interfaces of t and of every base in that order, each followed by the
// interfaces it extends. Nothing is deduplicated.
func Ancestors(t *analyze.TypeInfo) []*analyze.TypeInfo {
	t = t.Deref()
	if t == nil {
		return nil
	}

	chain := baseChain(t, map[*analyze.TypeInfo]bool{t: true})

	out := make([]*analyze.TypeInfo, 0, len(chain))
	out = append(out, chain...)

	for _, level := range append([]*analyze.TypeInfo{t}, chain...) {
		for _, iface := range level.Interfaces {
			out = append(out, interfaceClosure(iface, map[*analyze.TypeInfo]bool{})...)
		}
	}

	return out
}

// baseChain flattens the embedded bases of t. onPath guards against
// self-embedding in hand-built graphs; Go rejects it at compile time.
func baseChain(t *analyze.TypeInfo, onPath map[*analyze.TypeInfo]bool) []*analyze.TypeInfo {
	var out []*analyze.TypeInfo

	for _, base := range t.Bases {
		base = base.Deref()
		if base == nil || onPath[base] {
			continue
		}

		out = append(out, base)

		onPath[base] = true
		out = append(out, baseChain(base, onPath)...)
		delete(onPath, base)
	}

	return out
}

func interfaceClosure(iface *analyze.TypeInfo, onPath map[*analyze.TypeInfo]bool) []*analyze.TypeInfo {
	if iface == nil || onPath[iface] {
		return nil
	}

	out := []*analyze.TypeInfo{iface}

	onPath[iface] = true
	for _, parent := range iface.Interfaces {
		out = append(out, interfaceClosure(parent, onPath)...)
	}
	delete(onPath, iface)

	return out
}
