package analyze

import (
	"go/ast"
	"reflect"
	"strings"
)

// DefaultMarkerKey is the struct tag key and directive prefix used for markers.
const DefaultMarkerKey = "pii"

// Marker option names.
const (
	OptSubjectID   = "subjectId"
	OptSensitive   = "sensitive"
	OptReplacement = "replacement"
)

// Directive names.
const (
	DirectiveHolder   = "holder"
	DirectiveRevision = "revision"
)

// KnownFieldOptions lists the options accepted in a marker tag.
var KnownFieldOptions = []string{OptSubjectID, OptSensitive, OptReplacement}

// FieldMarkers is the parsed form of a field's marker tag.
type FieldMarkers struct {
	SubjectID   bool
	Sensitive   bool
	Replacement string
	// Unknown holds options that were not recognised, in tag order.
	Unknown []string
}

// ParseFieldMarkers parses a marker tag such as
//
//	pii:"sensitive,replacement=***"
//
// The replacement option swallows the remainder of the tag so that
// replacement values may contain commas.
func ParseFieldMarkers(tag reflect.StructTag, key string) FieldMarkers {
	var m FieldMarkers

	value, ok := tag.Lookup(key)
	if !ok {
		return m
	}

	rest := value
	for rest != "" {
		var opt string

		rest = strings.TrimLeft(rest, " ")
		if strings.HasPrefix(rest, OptReplacement+"=") {
			m.Replacement = strings.TrimPrefix(rest, OptReplacement+"=")
			break
		}

		opt, rest, _ = strings.Cut(rest, ",")
		opt = strings.TrimSpace(opt)

		switch opt {
		case "", OptReplacement:
		case OptSubjectID:
			m.SubjectID = true
		case OptSensitive:
			m.Sensitive = true
		default:
			m.Unknown = append(m.Unknown, opt)
		}
	}

	return m
}

// ParseTypeMarkers extracts type-level directives from doc comments.
// Directives are written without a space after the slashes, like //go:generate:
//
//	//pii:holder
//	//pii:revision 2
func ParseTypeMarkers(prefix string, groups ...*ast.CommentGroup) TypeMarkers {
	var m TypeMarkers

	for _, cg := range groups {
		if cg == nil {
			continue
		}

		for _, c := range cg.List {
			name, arg, ok := parseDirective(c.Text, prefix)
			if !ok {
				continue
			}

			switch name {
			case DirectiveHolder:
				m.Holder = true
			case DirectiveRevision:
				m.Revision = arg
			}
		}
	}

	return m
}

func parseDirective(text, prefix string) (name, arg string, ok bool) {
	body, found := strings.CutPrefix(text, "//"+prefix+":")
	if !found {
		return "", "", false
	}

	name, arg, _ = strings.Cut(body, " ")

	return strings.TrimSpace(name), strings.Trim(strings.TrimSpace(arg), `"`), name != ""
}
