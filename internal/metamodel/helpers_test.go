package metamodel

import (
	"go/types"
	"reflect"
	"strings"

	"pii-metamodel/internal/analyze"
)

const testPkg = "example.com/app/events"

func basicType(kind types.BasicKind) *analyze.TypeInfo {
	return &analyze.TypeInfo{Kind: analyze.TypeKindBasic, GoType: types.Typ[kind]}
}

var (
	stringType = basicType(types.String)
	intType    = basicType(types.Int)
	byteType   = basicType(types.Byte)
	boolType   = basicType(types.Bool)
)

func namedType(pkg, name string, kind analyze.TypeKind) *analyze.TypeInfo {
	return &analyze.TypeInfo{ID: analyze.TypeID{PkgPath: pkg, Name: name}, Kind: kind}
}

func structType(name string, fields ...analyze.FieldInfo) *analyze.TypeInfo {
	t := namedType(testPkg, name, analyze.TypeKindStruct)
	t.Fields = fields

	return t
}

func holderType(name string, fields ...analyze.FieldInfo) *analyze.TypeInfo {
	t := structType(name, fields...)
	t.Markers.Holder = true

	return t
}

func enumType(name string) *analyze.TypeInfo {
	t := namedType(testPkg, name, analyze.TypeKindAlias)
	t.Underlying = stringType

	return t
}

func pointerTo(t *analyze.TypeInfo) *analyze.TypeInfo {
	return &analyze.TypeInfo{Kind: analyze.TypeKindPointer, ElemType: t}
}

func sliceOf(t *analyze.TypeInfo) *analyze.TypeInfo {
	return &analyze.TypeInfo{Kind: analyze.TypeKindSlice, ElemType: t}
}

func arrayOf(t *analyze.TypeInfo) *analyze.TypeInfo {
	return &analyze.TypeInfo{Kind: analyze.TypeKindArray, ElemType: t}
}

func mapOf(key, value *analyze.TypeInfo) *analyze.TypeInfo {
	return &analyze.TypeInfo{Kind: analyze.TypeKindMap, KeyType: key, ElemType: value}
}

// field builds an exported field whose JSON name is jsonName.
func field(jsonName string, t *analyze.TypeInfo, extraTag string) analyze.FieldInfo {
	tag := `json:"` + jsonName + `"`
	if extraTag != "" {
		tag += " " + extraTag
	}

	return analyze.FieldInfo{
		Name:     goName(jsonName),
		Exported: true,
		Type:     t,
		Tag:      reflect.StructTag(tag),
	}
}

func subjectField(jsonName string) analyze.FieldInfo {
	return field(jsonName, stringType, `pii:"subjectId"`)
}

func sensitiveField(jsonName, replacement string) analyze.FieldInfo {
	return field(jsonName, stringType, `pii:"sensitive,replacement=`+replacement+`"`)
}

func goName(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

// addressType is a composite with one sensitive field.
func addressType() *analyze.TypeInfo {
	return structType("Address", sensitiveField("street", "s"))
}
