package metamodel

// Root is the path of the record itself.
const Root = "$"

const (
	pathDivider      = "."
	collectionMarker = "[*]"
	mapMarker        = "*"
)

// Extend appends a field access to path: "$.a" + "b" -> "$.a.b".
func Extend(path, name string) string {
	return path + pathDivider + name
}

// CollectionMarker addresses every element of the sequence at path: "$.a[*]".
func CollectionMarker(path string) string {
	return path + collectionMarker
}

// MapMarker addresses every value of the map at path: "$.a.*".
func MapMarker(path string) string {
	return Extend(path, mapMarker)
}
