package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	graph, err := LoadPackages(ordersPkg, genericPkg)
	require.NoError(t, err)

	order := graph.GetType(TypeID{PkgPath: ordersPkg, Name: "OrderPlaced"})
	require.NotNil(t, order)
	assert.Equal(t, "pii-metamodel/examples/orders.OrderPlaced", TypeString(order))

	assert.Equal(t, "map[string]pii-metamodel/examples/orders.Address", TypeString(findField(t, order, "Book").Type))
	assert.Equal(t, "[][]pii-metamodel/examples/orders.Line", TypeString(findField(t, order, "Batches").Type))
	assert.Equal(t, "[N]pii-metamodel/examples/orders.Address", TypeString(findField(t, order, "Slots").Type))
	assert.Equal(t, "*math/big.Int", TypeString(findField(t, order, "Total").Type))

	wallet := graph.GetType(TypeID{PkgPath: genericPkg, Name: "WalletUpdated"})
	require.NotNil(t, wallet)
	assert.Equal(t,
		"*pii-metamodel/examples/generic.Optional[pii-metamodel/examples/generic.Card]",
		TypeString(findField(t, wallet, "Backup").Type))
}

func TestTypeString_HandBuilt(t *testing.T) {
	assert.Equal(t, "<nil>", TypeString(nil))
	assert.Equal(t, "struct{...}", TypeString(&TypeInfo{Kind: TypeKindStruct}))
	assert.Equal(t, "basic", TypeString(&TypeInfo{Kind: TypeKindBasic}))
	assert.Equal(t, "opaque", TypeString(&TypeInfo{Kind: TypeKindOpaque}))

	// An anonymous slice containing itself.
	loop := &TypeInfo{Kind: TypeKindSlice}
	loop.ElemType = loop
	assert.Equal(t, "[]...", TypeString(loop))
}
