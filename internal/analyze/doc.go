// Package analyze provides package loading and type graph extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types
// to build a canonical in-memory model of structs and their fields,
// together with the data-protection markers declared on them.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: describes kind (struct/basic/alias/pointer/slice/array/map/...)
//   - FieldInfo: describes field name, type, tags, and embedding
//   - TypeMarkers / FieldMarkers: //pii:holder, //pii:revision and pii:"..." tags
package analyze
