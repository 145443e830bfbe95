// Package pricing computes invoice totals. Amounts accumulate at full
// floating precision; rounding happens only at the rendering boundary.
package pricing

import (
	"math"

	"github.com/Martinez-Cris/mueblefact-pro/internal/catalog"
	"github.com/Martinez-Cris/mueblefact-pro/internal/models"
)

// IVARate is the fixed 19% value-added tax applied to the invoice
// subtotal when the invoice opts in. Not configurable.
const IVARate = 0.19

// NormalizeQuantity clamps malformed quantities to 1.
func NormalizeQuantity(q int) int {
	if q < 1 {
		return 1
	}
	return q
}

// NormalizePrice clamps negative or non-finite prices to 0.
func NormalizePrice(p float64) float64 {
	if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return p
}

// ResolveUnitPrice applies the single resolution rule shared by every
// consumer: an explicitly set price wins, otherwise the referenced
// catalog product's price, otherwise 0.
func ResolveUnitPrice(explicit *float64, productID string, cat catalog.Catalog) float64 {
	if explicit != nil {
		return NormalizePrice(*explicit)
	}
	if p, ok := cat.Find(productID); ok {
		return NormalizePrice(p.Price)
	}
	return 0
}

// ItemUnitPrice resolves the effective unit price of a top-level order
// line. A set line has no catalog entry of its own, so it falls back to
// 0 when it carries no explicit set-level price.
func ItemUnitPrice(it models.OrderItem, cat catalog.Catalog) float64 {
	return ResolveUnitPrice(it.UnitPrice, it.ProductID, cat)
}

// LineSubtotal is the effective unit price times quantity for one
// top-level order line. For a set line this is the set-level price and
// quantity; component figures are informational only and never counted.
func LineSubtotal(it models.OrderItem, cat catalog.Catalog) float64 {
	return ItemUnitPrice(it, cat) * float64(NormalizeQuantity(it.Quantity))
}

// ComponentUnitPrice resolves a set component's unit price.
func ComponentUnitPrice(c models.SetComponent, cat catalog.Catalog) float64 {
	return ResolveUnitPrice(c.UnitPrice, c.ProductID, cat)
}

// ComponentSubtotal is a component's unit price times quantity. Shown
// in exports for breakdown purposes; never summed into invoice totals.
func ComponentSubtotal(c models.SetComponent, cat catalog.Catalog) float64 {
	return ComponentUnitPrice(c, cat) * float64(NormalizeQuantity(c.Quantity))
}

// ComputeTotals computes the invoice subtotal, IVA and grand total.
// An empty item list yields all zeros.
func ComputeTotals(inv models.Invoice, cat catalog.Catalog) (subtotal, iva, total float64) {
	for _, it := range inv.Items {
		subtotal += LineSubtotal(it, cat)
	}
	if inv.IncludeIVA {
		iva = subtotal * IVARate
	}
	total = subtotal + iva
	return subtotal, iva, total
}
