// Package metamodel computes the data-protection metamodel of data-holder types.
//
// For every root type carrying the holder directive it resolves the single
// subject-identifier path and walks the reachable field graph, collecting the
// path and replacement value of every sensitive field. Paths use a JSONPath
// subset:
//
//	$                  root
//	$.field            field access
//	$.items[*].field   every element of an array or slice
//	$.byKey.*.field    every value of a map
//
// The walk is built from four small pieces: FieldCollector (own and inherited
// fields), Classifier (leaf/array/map/container/composite), IgnoreMatcher
// (exact and wildcard type exclusions) and the path helpers.
package metamodel
