// Package output encodes a metamodel list and writes it to disk.
//
// JSON (indented) is the format read by redaction runtimes. YAML,
// MessagePack and BSON carry the same document.
package output
