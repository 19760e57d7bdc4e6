package analyze

import (
	"strings"
)

// TypeString returns a human-readable Go-like representation of a TypeInfo,
// used in log lines and diagnostics.
func TypeString(t *TypeInfo) string {
	return typeString(t, make(map[*TypeInfo]bool))
}

func typeString(t *TypeInfo, seen map[*TypeInfo]bool) string {
	if t == nil {
		return "<nil>"
	}

	if t.IsNamed() {
		return t.ID.String() + typeArgsString(t.TypeArgs, seen)
	}

	// Anonymous recursive shapes cannot occur in Go, but hand-built graphs may
	// contain them.
	if seen[t] {
		return "..."
	}
	seen[t] = true
	defer delete(seen, t)

	switch t.Kind {
	case TypeKindBasic:
		if t.GoType != nil {
			return t.GoType.String()
		}
		return "basic"

	case TypeKindStruct:
		return "struct{...}"

	case TypeKindPointer:
		return "*" + typeString(t.ElemType, seen)

	case TypeKindSlice:
		return "[]" + typeString(t.ElemType, seen)

	case TypeKindArray:
		return "[N]" + typeString(t.ElemType, seen)

	case TypeKindMap:
		return "map[" + typeString(t.KeyType, seen) + "]" + typeString(t.ElemType, seen)

	case TypeKindAlias:
		return typeString(t.Underlying, seen)

	case TypeKindInterface:
		return "interface{...}"

	default:
		if t.GoType != nil {
			return t.GoType.String()
		}
		return t.Kind.String()
	}
}

func typeArgsString(args []*TypeInfo, seen map[*TypeInfo]bool) string {
	if len(args) == 0 {
		return ""
	}

	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, typeString(arg, seen))
	}

	return "[" + strings.Join(parts, ", ") + "]"
}
