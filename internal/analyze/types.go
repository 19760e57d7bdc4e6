package analyze

import (
	"go/types"
	"reflect"
	"strings"

	"pii-metamodel/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "pii-metamodel/examples/accounts"
	Name    string // e.g., "AccountOpened"
}

// String returns the qualified name of the type.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// IsZero reports whether the ID is empty (anonymous types).
func (t TypeID) IsZero() bool {
	return t.PkgPath == "" && t.Name == ""
}

// TypeKind represents the structural kind of a type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // int, string, bool, etc.
	TypeKindStruct             // struct type
	TypeKindPointer            // pointer to another type
	TypeKindSlice              // slice of another type
	TypeKindArray              // fixed-size array of another type
	TypeKindMap                // map with key and value types
	TypeKindAlias              // named type wrapping a non-struct type
	TypeKindInterface          // interface type, no inspectable fields
	TypeKindOpaque             // func, chan, type parameters, unsafe pointers
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindMap:
		return "map"
	case TypeKindAlias:
		return "alias"
	case TypeKindInterface:
		return "interface"
	case TypeKindOpaque:
		return "opaque"
	default:
		return common.UnknownStr
	}
}

// TypeMarkers holds the type-level directives found in a type's doc comment.
type TypeMarkers struct {
	Holder   bool   // //pii:holder
	Revision string // //pii:revision <value>
}

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID         TypeID      // Unique identifier (empty for unnamed types like *T or []T)
	Kind       TypeKind    // Kind of type
	Underlying *TypeInfo   // For alias types, the underlying type
	ElemType   *TypeInfo   // For pointers, slices, arrays and maps, the element (value) type
	KeyType    *TypeInfo   // For maps, the key type
	TypeArgs   []*TypeInfo // For instantiated generic types, the type arguments
	Fields     []FieldInfo // For structs, the promoted-field-free list of own fields
	Bases      []*TypeInfo // For structs, embedded struct types in declaration order
	Interfaces []*TypeInfo // Interface ancestors contributing fields (hand-built graphs only)
	Markers    TypeMarkers // Type-level directives
	GoType     types.Type  // The original go/types.Type, nil for hand-built graphs
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// Deref follows pointer types until a non-pointer type is reached.
func (t *TypeInfo) Deref() *TypeInfo {
	for t != nil && t.Kind == TypeKindPointer {
		t = t.ElemType
	}

	return t
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
}

// JSONName returns the JSON tag name if present, otherwise the field name.
func (f *FieldInfo) JSONName() string {
	if tag := f.Tag.Get("json"); tag != "" && tag != "-" {
		name, _, _ := strings.Cut(tag, ",")
		if name != "" {
			return name
		}
	}

	return f.Name
}

// Markers parses the field's marker tag under the given key.
func (f *FieldInfo) Markers(key string) FieldMarkers {
	return ParseFieldMarkers(f.Tag, key)
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types declared in loaded packages.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
	// PackageOrder lists loaded package paths in load order.
	PackageOrder []string
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// AddType registers a named type under the given package, keeping declaration order.
func (g *TypeGraph) AddType(info *TypeInfo) {
	pkg, ok := g.Packages[info.ID.PkgPath]
	if !ok {
		pkg = &PackageInfo{Path: info.ID.PkgPath, Name: common.PkgAlias(info.ID.PkgPath)}
		g.Packages[info.ID.PkgPath] = pkg
		g.PackageOrder = append(g.PackageOrder, info.ID.PkgPath)
	}

	if _, exists := g.Types[info.ID]; !exists {
		pkg.Types = append(pkg.Types, info.ID)
	}

	g.Types[info.ID] = info
}

// HolderTypes returns the data-holder types of a package in declaration order.
func (g *TypeGraph) HolderTypes(pkgPath string) []*TypeInfo {
	pkg, ok := g.Packages[pkgPath]
	if !ok {
		return nil
	}

	var out []*TypeInfo

	for _, id := range pkg.Types {
		if t := g.Types[id]; t != nil && t.Markers.Holder {
			out = append(out, t)
		}
	}

	return out
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Named types defined in this package, in declaration order
}
