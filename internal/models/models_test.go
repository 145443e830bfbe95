package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fptr(v float64) *float64 { return &v }

func TestNewSetInstanceIsFrozenSnapshot(t *testing.T) {
	def := SetDefinition{
		ID:   "set-1",
		Name: "Comedor Familiar",
		Items: []SetComponent{
			{ProductID: "1", Size: "120x80", Color: "Nogal", Quantity: 1, UnitPrice: fptr(250)},
			{ProductID: "2", Size: "Estándar", Color: "Nogal", Quantity: 4},
		},
	}
	item := NewSetInstance(def, 1, fptr(500))

	// Editing the definition afterwards must not reach the order line.
	def.Items[0].Quantity = 99
	def.Items[1].Color = "Negro"
	*def.Items[0].UnitPrice = 1

	assert.True(t, item.IsSet)
	assert.Equal(t, "set-1", item.SetID)
	assert.Equal(t, "Comedor Familiar", item.SetName)
	assert.Equal(t, 1, item.SetItems[0].Quantity)
	assert.Equal(t, "Nogal", item.SetItems[1].Color)
	assert.Equal(t, 250.0, *item.SetItems[0].UnitPrice)
	assert.NotEmpty(t, item.ID)
}

func TestNewIndividualItemCarriesNoSetFields(t *testing.T) {
	item := NewIndividualItem("1", "120x80", "Roble", 2, nil)
	assert.False(t, item.IsSet)
	assert.Empty(t, item.SetID)
	assert.Nil(t, item.SetItems)
	assert.Equal(t, "1", item.ProductID)
}

func TestStateCloneIsIndependent(t *testing.T) {
	st := State{
		Products: []Product{{ID: "1", Name: "Mesa Comedor", Sizes: []string{"120x80"}}},
		Invoices: []Invoice{{ID: "inv-1", Items: []OrderItem{{ID: "it-1", UnitPrice: fptr(10)}}}},
		Sets:     []SetDefinition{{ID: "s-1", Items: []SetComponent{{ProductID: "1", Quantity: 1}}}},
	}
	cp := st.Clone()
	cp.Products[0].Name = "changed"
	cp.Products[0].Sizes[0] = "changed"
	*cp.Invoices[0].Items[0].UnitPrice = 99
	cp.Sets[0].Items[0].Quantity = 99

	assert.Equal(t, "Mesa Comedor", st.Products[0].Name)
	assert.Equal(t, "120x80", st.Products[0].Sizes[0])
	assert.Equal(t, 10.0, *st.Invoices[0].Items[0].UnitPrice)
	assert.Equal(t, 1, st.Sets[0].Items[0].Quantity)
}
