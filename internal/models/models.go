package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is one catalog entry. Saved invoices snapshot the chosen unit
// price at creation time, so editing the catalog never changes a
// historical document.
type Product struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Sizes    []string `json:"sizes"`
	Colors   []string `json:"colors"`
	Price    float64  `json:"price"`
}

// SetComponent is one product choice inside a set. ProductID is a soft
// reference: a deleted product resolves to an unknown product at render
// time, never an error.
type SetComponent struct {
	ProductID string   `json:"productId"`
	Size      string   `json:"size"`
	Color     string   `json:"color"`
	Quantity  int      `json:"quantity"`
	UnitPrice *float64 `json:"unitPrice,omitempty"`
}

// SetDefinition is a named, reusable bundle of component choices.
type SetDefinition struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Items []SetComponent `json:"items"`
}

// OrderItem is one invoice line. IsSet discriminates the two variants:
// an individual product choice (ProductID/Size/Color) or a set instance
// (SetID/SetName/SetItems). Use the constructors below so each variant
// only carries its own fields.
type OrderItem struct {
	ID    string `json:"id"`
	IsSet bool   `json:"isSet"`

	// Individual variant.
	ProductID string `json:"productId,omitempty"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`

	// Set variant. SetItems is a snapshot taken when the set was added
	// to the order; editing the originating SetDefinition afterwards
	// must not affect it.
	SetID    string         `json:"setId,omitempty"`
	SetName  string         `json:"setName,omitempty"`
	SetItems []SetComponent `json:"setItems,omitempty"`

	Quantity  int      `json:"quantity"`
	UnitPrice *float64 `json:"unitPrice,omitempty"`
}

// NewIndividualItem builds an individual order line.
func NewIndividualItem(productID, size, color string, quantity int, unitPrice *float64) OrderItem {
	return OrderItem{
		ID:        uuid.NewString(),
		ProductID: productID,
		Size:      size,
		Color:     color,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
}

// NewSetInstance builds a set order line from a definition, deep-copying
// its components so the line stays frozen if the definition changes.
func NewSetInstance(def SetDefinition, quantity int, unitPrice *float64) OrderItem {
	return OrderItem{
		ID:        uuid.NewString(),
		IsSet:     true,
		SetID:     def.ID,
		SetName:   def.Name,
		SetItems:  CloneComponents(def.Items),
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}
}

// Client is the display-field bag attached to an invoice. Only Name is
// required before an invoice may be saved.
type Client struct {
	Name        string `json:"name"`
	TaxID       string `json:"id"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Location    string `json:"location"`
	Seller      string `json:"seller"`
	OrderNumber string `json:"orderNumber"`
}

// Invoice is the unit of persistence and export.
type Invoice struct {
	ID         string      `json:"id"`
	Date       time.Time   `json:"date"`
	Client     Client      `json:"client"`
	Items      []OrderItem `json:"items"`
	IncludeIVA bool        `json:"includeIVA"`
}

// State is the whole persisted collection, rewritten in full on every
// mutation.
type State struct {
	Products []Product       `json:"products"`
	Invoices []Invoice       `json:"invoices"`
	Sets     []SetDefinition `json:"sets"`
}

// CloneComponents returns an independent copy of a component list,
// including the optional price pointers.
func CloneComponents(items []SetComponent) []SetComponent {
	if items == nil {
		return nil
	}
	out := make([]SetComponent, len(items))
	for i, it := range items {
		out[i] = it
		if it.UnitPrice != nil {
			p := *it.UnitPrice
			out[i].UnitPrice = &p
		}
	}
	return out
}

// Clone returns an independent copy of an order item.
func (it OrderItem) Clone() OrderItem {
	out := it
	out.SetItems = CloneComponents(it.SetItems)
	if it.UnitPrice != nil {
		p := *it.UnitPrice
		out.UnitPrice = &p
	}
	return out
}

// Clone returns an independent copy of an invoice.
func (inv Invoice) Clone() Invoice {
	out := inv
	if inv.Items != nil {
		out.Items = make([]OrderItem, len(inv.Items))
		for i, it := range inv.Items {
			out.Items[i] = it.Clone()
		}
	}
	return out
}

// Clone returns an independent copy of a product.
func (p Product) Clone() Product {
	out := p
	out.Sizes = append([]string(nil), p.Sizes...)
	out.Colors = append([]string(nil), p.Colors...)
	return out
}

// Clone returns an independent copy of a set definition.
func (s SetDefinition) Clone() SetDefinition {
	out := s
	out.Items = CloneComponents(s.Items)
	return out
}

// Clone returns an independent copy of the whole state.
func (s State) Clone() State {
	out := State{}
	if s.Products != nil {
		out.Products = make([]Product, len(s.Products))
		for i, p := range s.Products {
			out.Products[i] = p.Clone()
		}
	}
	if s.Invoices != nil {
		out.Invoices = make([]Invoice, len(s.Invoices))
		for i, inv := range s.Invoices {
			out.Invoices[i] = inv.Clone()
		}
	}
	if s.Sets != nil {
		out.Sets = make([]SetDefinition, len(s.Sets))
		for i, d := range s.Sets {
			out.Sets[i] = d.Clone()
		}
	}
	return out
}
