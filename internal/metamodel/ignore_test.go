package metamodel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pii-metamodel/internal/analyze"
)

func TestIgnoreMatcher_ShouldIgnore(t *testing.T) {
	entries := []string{
		"example.com/app/events.Node",
		"example.com/app/graph.*",
		"example.com/app/vendor/...",
		"  ",
	}
	m := NewIgnoreMatcher(entries)

	tests := []struct {
		name     string
		typ      *analyze.TypeInfo
		expected bool
	}{
		{"exact", namedType("example.com/app/events", "Node", analyze.TypeKindStruct), true},
		{"exact through pointer", pointerTo(namedType("example.com/app/events", "Node", analyze.TypeKindStruct)), true},
		{"other type in same package", namedType("example.com/app/events", "Nodes", analyze.TypeKindStruct), false},
		{"package wildcard", namedType("example.com/app/graph", "Edge", analyze.TypeKindStruct), true},
		{"package wildcard is not a tree", namedType("example.com/app/graph/sub", "Edge", analyze.TypeKindStruct), false},
		{"package wildcard needs the dot", namedType("example.com/app/graphs", "Edge", analyze.TypeKindStruct), false},
		{"tree root", namedType("example.com/app/vendor", "Lib", analyze.TypeKindStruct), true},
		{"tree child", namedType("example.com/app/vendor/x/y", "Lib", analyze.TypeKindStruct), true},
		{"tree sibling", namedType("example.com/app/vendors", "Lib", analyze.TypeKindStruct), false},
		{"anonymous", sliceOf(namedType("example.com/app/events", "Node", analyze.TypeKindStruct)), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, m.ShouldIgnore(tt.typ))
			assert.Equal(t, tt.expected, ShouldIgnore(entries, tt.typ))
		})
	}
}

func TestIgnoreMatcher_Empty(t *testing.T) {
	m := NewIgnoreMatcher(nil)

	assert.False(t, m.Match(analyze.TypeID{PkgPath: "example.com/app/events", Name: "Node"}))
}

func TestValidateIgnoreEntry(t *testing.T) {
	tests := []struct {
		entry   string
		wantErr bool
	}{
		{"example.com/app/events.Node", false},
		{"example.com/app/graph.*", false},
		{"example.com/app/vendor/...", false},
		{"", true},
		{" ", true},
		{"example.com/app events.Node", true},
		{"*", true},
		{".*", true},
		{"/...", true},
		{"example.com/*/graph.*", true},
		{"example.com/app/graph*", true},
	}

	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			err := ValidateIgnoreEntry(tt.entry)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
