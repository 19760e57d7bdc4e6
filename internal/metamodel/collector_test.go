package metamodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pii-metamodel/internal/analyze"
)

func fieldNames(fields []analyze.FieldInfo) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.JSONName())
	}

	return names
}

func typeNames(types []*analyze.TypeInfo) []string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.ID.Name)
	}

	return names
}

// hierarchy builds
//
//	C embeds B1 and B2, implements I1 (which extends I0)
//	B1 embeds A, implements I2
func hierarchy() *analyze.TypeInfo {
	i0 := namedType(testPkg, "I0", analyze.TypeKindInterface)
	i0.Fields = []analyze.FieldInfo{field("i0", stringType, "")}

	i1 := namedType(testPkg, "I1", analyze.TypeKindInterface)
	i1.Fields = []analyze.FieldInfo{field("i1", stringType, "")}
	i1.Interfaces = []*analyze.TypeInfo{i0}

	i2 := namedType(testPkg, "I2", analyze.TypeKindInterface)
	i2.Fields = []analyze.FieldInfo{field("i2", stringType, "")}

	a := structType("A", field("a", stringType, ""))

	b1 := structType("B1", field("b1", stringType, ""))
	b1.Bases = []*analyze.TypeInfo{a}
	b1.Interfaces = []*analyze.TypeInfo{i2}

	b2 := structType("B2", field("b2", stringType, ""))

	c := structType("C", field("c", stringType, ""))
	c.Bases = []*analyze.TypeInfo{pointerTo(b1), b2}
	c.Interfaces = []*analyze.TypeInfo{i1}

	return c
}

func TestAncestors(t *testing.T) {
	assert.Equal(t, []string{"B1", "A", "B2", "I1", "I0", "I2"}, typeNames(Ancestors(hierarchy())))
	assert.Nil(t, Ancestors(nil))
	assert.Empty(t, Ancestors(addressType()))
}

func TestAncestors_SelfEmbedding(t *testing.T) {
	// Not expressible in Go source, but must not loop on hand-built graphs.
	a := structType("A", field("a", stringType, ""))
	b := structType("B", field("b", stringType, ""))
	a.Bases = []*analyze.TypeInfo{b}
	b.Bases = []*analyze.TypeInfo{a}

	assert.Equal(t, []string{"B"}, typeNames(Ancestors(a)))
}

func TestFieldCollector_Collect(t *testing.T) {
	for _, size := range []int{0, 16} {
		c := NewFieldCollector(size)

		root := hierarchy()

		assert.Equal(t,
			[]string{"b1", "a", "b2", "i1", "i0", "i2", "c"},
			fieldNames(c.Collect(root)))

		// Pointers are transparent and results are stable.
		assert.Equal(t, c.Collect(root), c.Collect(pointerTo(root)))
	}
}

func TestFieldCollector_NoDeduplication(t *testing.T) {
	base := structType("Base", field("id", stringType, ""), field("name", stringType, ""))
	own := structType("Own", field("name", stringType, ""))
	own.Bases = []*analyze.TypeInfo{base}

	assert.Equal(t, []string{"id", "name", "name"}, fieldNames(NewFieldCollector(0).Collect(own)))
}

func TestFieldCollector_Empty(t *testing.T) {
	c := NewFieldCollector(DefaultCacheSize)

	fields := c.Collect(nil)
	require.NotNil(t, fields)
	assert.Empty(t, fields)

	fields = c.Collect(&analyze.TypeInfo{Kind: analyze.TypeKindStruct})
	require.NotNil(t, fields)
	assert.Empty(t, fields)
}
