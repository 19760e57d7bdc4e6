package metamodel

import (
	"strings"

	"pii-metamodel/internal/analyze"
	"pii-metamodel/internal/common"
)

// Category is the traversal classification of a type.
type Category int

const (
	CategoryComposite    Category = iota // struct: descend into own and inherited fields
	CategoryScalarLeaf                   // bool, numbers, strings, big numbers
	CategoryEnumLeaf                     // named type over a basic type
	CategoryDateTimeLeaf                 // time.Time, time.Duration, ...
	CategoryArray                        // [N]T
	CategoryMap                          // map[K]V, only V is inspected
	CategoryContainer                    // []T and configured generic containers
)

// String returns a human-readable representation of the Category.
func (c Category) String() string {
	switch c {
	case CategoryComposite:
		return "composite"
	case CategoryScalarLeaf:
		return "scalar"
	case CategoryEnumLeaf:
		return "enum"
	case CategoryDateTimeLeaf:
		return "datetime"
	case CategoryArray:
		return "array"
	case CategoryMap:
		return "map"
	case CategoryContainer:
		return "container"
	default:
		return common.UnknownStr
	}
}

// IsLeaf reports whether the category never needs descent.
func (c Category) IsLeaf() bool {
	return c == CategoryScalarLeaf || c == CategoryEnumLeaf || c == CategoryDateTimeLeaf
}

var dateTimeTypes = map[analyze.TypeID]struct{}{
	{PkgPath: "time", Name: "Time"}:     {},
	{PkgPath: "time", Name: "Duration"}: {},
	{PkgPath: "time", Name: "Month"}:    {},
	{PkgPath: "time", Name: "Weekday"}:  {},
	{PkgPath: "time", Name: "Location"}: {},
}

var scalarTypes = map[analyze.TypeID]struct{}{
	{PkgPath: "math/big", Name: "Int"}:             {},
	{PkgPath: "math/big", Name: "Float"}:           {},
	{PkgPath: "math/big", Name: "Rat"}:             {},
	{PkgPath: "encoding/json", Name: "Number"}:     {},
	{PkgPath: "encoding/json", Name: "RawMessage"}: {},
}

// Classifier categorises types for the walk.
type Classifier struct {
	containers map[analyze.TypeID]struct{}
}

// NewClassifier returns a classifier that additionally treats the given
// generic types ("pkg.Name", e.g. "example.com/opt.Optional") as containers
// of their type arguments.
func NewClassifier(containers []string) *Classifier {
	c := &Classifier{containers: make(map[analyze.TypeID]struct{}, len(containers))}

	for _, name := range containers {
		if id, ok := ParseTypeID(name); ok {
			c.containers[id] = struct{}{}
		}
	}

	return c
}

// ParseTypeID splits a qualified name "pkg/path.Name" at its last dot.
func ParseTypeID(name string) (analyze.TypeID, bool) {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return analyze.TypeID{}, false
	}

	// A dot inside the last path element belongs to the package path
	// ("gopkg.in/yaml" has no type name).
	if strings.Contains(name[i+1:], "/") {
		return analyze.TypeID{}, false
	}

	return analyze.TypeID{PkgPath: name[:i], Name: name[i+1:]}, true
}

// Classify returns the category of t. Pointers are transparent. The checks
// run in a fixed order: well-known leaves, basic, enum, array, map,
// container, and composite as the fallback.
func (c *Classifier) Classify(t *analyze.TypeInfo) Category {
	t = t.Deref()
	if t == nil {
		return CategoryScalarLeaf
	}

	if t.IsNamed() {
		if _, ok := dateTimeTypes[t.ID]; ok {
			return CategoryDateTimeLeaf
		}

		if _, ok := scalarTypes[t.ID]; ok {
			return CategoryScalarLeaf
		}

		if c.isContainer(t) {
			return CategoryContainer
		}
	}

	switch t.Kind {
	case analyze.TypeKindBasic:
		return CategoryScalarLeaf

	case analyze.TypeKindAlias:
		if u := t.Underlying.Deref(); u != nil && u.Kind == analyze.TypeKindBasic {
			return CategoryEnumLeaf
		}

		return c.Classify(t.Underlying)

	case analyze.TypeKindArray:
		return CategoryArray

	case analyze.TypeKindMap:
		return CategoryMap

	case analyze.TypeKindSlice:
		return CategoryContainer

	default:
		return CategoryComposite
	}
}

// Elements returns the types the walk descends into for arrays, maps and
// containers: the element, the map value, or the container's type arguments.
// Map keys are never returned.
func (c *Classifier) Elements(t *analyze.TypeInfo) []*analyze.TypeInfo {
	t = t.Deref()
	if t == nil {
		return nil
	}

	if t.IsNamed() && c.isContainer(t) {
		return t.TypeArgs
	}

	switch t.Kind {
	case analyze.TypeKindAlias:
		return c.Elements(t.Underlying)

	case analyze.TypeKindArray, analyze.TypeKindSlice, analyze.TypeKindMap:
		if t.ElemType == nil {
			return nil
		}
		return []*analyze.TypeInfo{t.ElemType}

	default:
		return nil
	}
}

// IsLeaf reports whether the walk stops at t: leaf categories, and arrays,
// maps and containers whose elements are all leaves.
func (c *Classifier) IsLeaf(t *analyze.TypeInfo) bool {
	return c.isLeaf(t, make(map[*analyze.TypeInfo]bool))
}

func (c *Classifier) isLeaf(t *analyze.TypeInfo, seen map[*analyze.TypeInfo]bool) bool {
	category := c.Classify(t)
	if category.IsLeaf() {
		return true
	}

	if category == CategoryComposite {
		return false
	}

	// type Tree []Tree holds nothing to address
	t = t.Deref()
	if seen[t] {
		return true
	}
	seen[t] = true

	for _, elem := range c.Elements(t) {
		if !c.isLeaf(elem, seen) {
			return false
		}
	}

	return true
}

func (c *Classifier) isContainer(t *analyze.TypeInfo) bool {
	if len(t.TypeArgs) == 0 {
		return false
	}

	_, ok := c.containers[t.ID]

	return ok
}
