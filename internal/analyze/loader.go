package analyze

import (
	"cmp"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"slices"
	"strings"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph     *TypeGraph
	typeCache map[types.Type]*TypeInfo // Cache to handle recursive types
	markerKey string

	// Dir is the directory package patterns are resolved from. Empty means the
	// current working directory.
	Dir string
}

// NewAnalyzer creates a new Analyzer reading markers under DefaultMarkerKey.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithMarkerKey(DefaultMarkerKey)
}

// NewAnalyzerWithMarkerKey creates a new Analyzer reading type directives
// under the given prefix (//<key>:holder).
func NewAnalyzerWithMarkerKey(key string) *Analyzer {
	if key == "" {
		key = DefaultMarkerKey
	}

	return &Analyzer{
		graph:     NewTypeGraph(),
		typeCache: make(map[types.Type]*TypeInfo),
		markerKey: key,
	}
}

// LoadPackages is a shortcut for NewAnalyzer().LoadPackages(patterns...).
func LoadPackages(patterns ...string) (*TypeGraph, error) {
	return NewAnalyzer().LoadPackages(patterns...)
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./events", "example.com/app/...").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.Dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	pkgs, err = a.patternOrder(pkgs, patterns)
	if err != nil {
		return nil, err
	}

	// Process each package
	for _, pkg := range pkgs {
		if err := a.processPackage(pkg); err != nil {
			return nil, fmt.Errorf("failed to process package %s: %w", pkg.PkgPath, err)
		}
	}

	return a.graph, nil
}

// patternOrder sorts the roots returned by packages.Load, which come
// dependencies first, into the order of the patterns that matched them.
// Packages matched by the same pattern keep the order go list reports for
// that pattern alone.
func (a *Analyzer) patternOrder(pkgs []*packages.Package, patterns []string) ([]*packages.Package, error) {
	if len(patterns) < 2 || len(pkgs) < 2 {
		return pkgs, nil
	}

	rank := make(map[string]int, len(pkgs))

	for _, pattern := range patterns {
		matched, err := packages.Load(&packages.Config{Mode: packages.NeedName, Dir: a.Dir}, pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve pattern %s: %w", pattern, err)
		}

		for _, pkg := range matched {
			if _, ok := rank[pkg.PkgPath]; !ok {
				rank[pkg.PkgPath] = len(rank)
			}
		}
	}

	ordered := slices.Clone(pkgs)
	slices.SortStableFunc(ordered, func(x, y *packages.Package) int {
		return cmp.Compare(rankOf(rank, x.PkgPath), rankOf(rank, y.PkgPath))
	})

	return ordered, nil
}

// rankOf places packages no pattern claimed after all others.
func rankOf(rank map[string]int, pkgPath string) int {
	if r, ok := rank[pkgPath]; ok {
		return r
	}

	return len(rank)
}

// typeDecl is a package-level type declaration with its directives.
type typeDecl struct {
	name    string
	markers TypeMarkers
}

// processPackage extracts types from a loaded package in declaration order.
func (a *Analyzer) processPackage(pkg *packages.Package) error {
	if pkg.Types == nil {
		return fmt.Errorf("no type information")
	}

	if _, ok := a.graph.Packages[pkg.PkgPath]; !ok {
		a.graph.Packages[pkg.PkgPath] = &PackageInfo{
			Path: pkg.PkgPath,
			Name: pkg.Name,
		}
		a.graph.PackageOrder = append(a.graph.PackageOrder, pkg.PkgPath)
	}

	scope := pkg.Types.Scope()
	for _, decl := range a.collectTypeDecls(pkg.Syntax) {
		obj := scope.Lookup(decl.name)

		// Only process type names (not variables, constants, functions)
		typeName, ok := obj.(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		// Only process exported types
		if !typeName.Exported() {
			continue
		}

		typeInfo := a.analyzeType(typeName.Type())
		typeInfo.ID = TypeID{
			PkgPath: pkg.PkgPath,
			Name:    decl.name,
		}
		typeInfo.Markers = decl.markers

		a.graph.AddType(typeInfo)
	}

	return nil
}

// collectTypeDecls walks the syntax trees for package-level type specs.
func (a *Analyzer) collectTypeDecls(files []*ast.File) []typeDecl {
	var out []typeDecl

	for _, file := range files {
		for _, d := range file.Decls {
			gen, ok := d.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, s := range gen.Specs {
				spec, ok := s.(*ast.TypeSpec)
				if !ok {
					continue
				}

				groups := []*ast.CommentGroup{spec.Doc}
				// Ungrouped declarations attach the doc comment to the GenDecl.
				if !gen.Lparen.IsValid() {
					groups = append(groups, gen.Doc)
				}

				out = append(out, typeDecl{
					name:    spec.Name.Name,
					markers: ParseTypeMarkers(a.markerKey, groups...),
				})
			}
		}
	}

	return out
}

// analyzeType recursively analyzes a go/types.Type and returns a TypeInfo.
func (a *Analyzer) analyzeType(t types.Type) *TypeInfo {
	t = types.Unalias(t)

	// Check cache to handle recursive types
	if cached, ok := a.typeCache[t]; ok {
		return cached
	}

	info := &TypeInfo{
		GoType: t,
	}

	// Pre-cache to handle recursive types (we'll fill in details)
	a.typeCache[t] = info

	switch tt := t.(type) {
	case *types.Named:
		a.analyzeNamedType(tt, info)

	case *types.Basic:
		if tt.Kind() == types.UnsafePointer {
			info.Kind = TypeKindOpaque
		} else {
			info.Kind = TypeKindBasic
		}

	case *types.Pointer:
		info.Kind = TypeKindPointer
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Slice:
		info.Kind = TypeKindSlice
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Array:
		info.Kind = TypeKindArray
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Map:
		info.Kind = TypeKindMap
		info.KeyType = a.analyzeType(tt.Key())
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(tt, info)

	case *types.Interface:
		info.Kind = TypeKindInterface

	default:
		// Channels, funcs, type parameters: nothing a serializer would address
		info.Kind = TypeKindOpaque
	}

	return info
}

// analyzeNamedType analyzes a named type.
func (a *Analyzer) analyzeNamedType(named *types.Named, info *TypeInfo) {
	obj := named.Obj()
	info.ID = TypeID{Name: obj.Name()}
	// Universe types such as error have no package.
	if obj.Pkg() != nil {
		info.ID.PkgPath = obj.Pkg().Path()
	}

	if args := named.TypeArgs(); args != nil {
		for i := range args.Len() {
			info.TypeArgs = append(info.TypeArgs, a.analyzeType(args.At(i)))
		}
	}

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(ut, info)

	case *types.Interface:
		info.Kind = TypeKindInterface

	default:
		// Named type wrapping a basic, slice, map, ... (e.g., type Status string)
		info.Kind = TypeKindAlias
		info.Underlying = a.analyzeType(ut)
	}
}

// analyzeStructFields extracts fields from a struct type. Embedded structs
// whose fields encoding/json promotes become bases rather than fields.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *TypeInfo) {
	for i := range st.NumFields() {
		field := st.Field(i)
		tag := reflect.StructTag(st.Tag(i))

		if tag.Get("json") == "-" {
			continue
		}

		fieldType := a.analyzeType(field.Type())

		if field.Embedded() && promoted(fieldType, tag) {
			info.Bases = append(info.Bases, fieldType.Deref())
			continue
		}

		// Only exported fields are visible to a serializer
		if !field.Exported() {
			continue
		}

		info.Fields = append(info.Fields, FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     fieldType,
			Tag:      tag,
			Embedded: field.Embedded(),
			Index:    i,
		})
	}
}

// promoted reports whether an embedded field's own fields are flattened into
// the enclosing struct: it must be a struct (or pointer to one) without an
// explicit JSON name.
func promoted(t *TypeInfo, tag reflect.StructTag) bool {
	base := t.Deref()
	if base == nil || base.Kind != TypeKindStruct {
		return false
	}

	name, _, _ := strings.Cut(tag.Get("json"), ",")

	return name == ""
}
