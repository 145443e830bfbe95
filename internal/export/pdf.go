package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/Martinez-Cris/mueblefact-pro/internal/catalog"
	"github.com/Martinez-Cris/mueblefact-pro/internal/models"
	"github.com/Martinez-Cris/mueblefact-pro/internal/money"
	"github.com/Martinez-Cris/mueblefact-pro/internal/pricing"
)

// Horizontal offsets in mm of the item table columns on the A4 page.
const (
	colDesc     = 22.0
	colQty      = 95.0
	colPrice    = 115.0
	colSubtotal = 155.0
	colEnd      = 195.0
)

// The cursor wraps to a fresh page once it passes this line. The check
// runs once per top-level item, so a set with many components can run
// past the bottom margin without breaking mid-set; known limitation.
const pageBreakAt = 260.0

const topMargin = 20.0

// RenderInvoicePDF renders the client-facing summary document: title,
// client block, order metadata, itemized table with set component
// sub-lines, totals and a footer on the last page.
func RenderInvoicePDF(inv models.Invoice, cat catalog.Catalog) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	y := topMargin

	text := func(x float64, s string) { pdf.Text(x, y, tr(s)) }

	pdf.SetFont("Helvetica", "B", 22)
	text(20, "MuebleFact Pro")
	y += 8
	pdf.SetFont("Helvetica", "", 10)
	text(20, "Resumen de orden / Factura para el cliente")
	y += 18

	pdf.SetFont("Helvetica", "B", 12)
	text(20, "Datos del cliente")
	y += 7

	pdf.SetFont("Helvetica", "", 10)
	c := inv.Client
	clientLines := []string{
		"Nombre / Razón social: " + orDash(c.Name),
		"C.C / NIT: " + orDash(c.TaxID),
		"Teléfono: " + orDash(c.Phone),
		"Correo: " + orDash(c.Email),
		"Dirección: " + orDash(c.Address),
		"Ciudad / País: " + orDash(c.Location),
	}
	for _, line := range clientLines {
		text(20, line)
		y += 6
	}
	text(20, "Vendedor: "+orDash(c.Seller))
	y += 10

	pdf.SetFont("Helvetica", "B", 10)
	text(20, "Número de orden: "+orDash(c.OrderNumber))
	y += 6
	text(20, "Fecha: "+longDate(inv.Date))
	y += 14

	pdf.SetFont("Helvetica", "B", 11)
	text(20, "Detalle del pedido")
	y += 8

	pdf.SetFont("Helvetica", "B", 9)
	text(colDesc, "Producto / Descripción")
	text(colQty, "Cant.")
	text(colPrice, "Precio unit.")
	text(colSubtotal, "Subtotal")
	pdf.Line(20, y+2, colEnd, y+2)
	y += 8

	pdf.SetFont("Helvetica", "", 9)

	var grandSubtotal float64
	for _, it := range inv.Items {
		if y > pageBreakAt {
			pdf.AddPage()
			y = topMargin
		}
		qty := pricing.NormalizeQuantity(it.Quantity)
		unit := pricing.ItemUnitPrice(it, cat)
		subtotal := unit * float64(qty)
		grandSubtotal += subtotal

		if it.IsSet {
			text(colDesc, "Set: "+orDash(it.SetName))
			text(colQty, fmt.Sprintf("%d", qty))
			text(colPrice, money.Format(unit))
			text(colSubtotal, money.Format(subtotal))
			y += 6
			for _, comp := range it.SetItems {
				name := "Producto"
				if p, ok := cat.Find(comp.ProductID); ok {
					name = p.Name
				}
				text(colDesc, fmt.Sprintf("  %dx %s (%s / %s)",
					pricing.NormalizeQuantity(comp.Quantity), name, comp.Size, comp.Color))
				y += 5
			}
			y += 2
			continue
		}

		desc := "Producto"
		if p, ok := cat.Find(it.ProductID); ok {
			desc = p.Name
		}
		if it.Size != "" {
			desc += " - " + it.Size
		}
		if it.Color != "" {
			desc += " / " + it.Color
		}
		text(colDesc, desc)
		text(colQty, fmt.Sprintf("%d", qty))
		text(colPrice, money.Format(unit))
		text(colSubtotal, money.Format(subtotal))
		y += 8
	}

	y += 6

	pdf.SetFont("Helvetica", "B", 9)
	text(colSubtotal-50, "Subtotal:")
	text(colSubtotal, money.Format(grandSubtotal))
	y += 8

	if inv.IncludeIVA {
		iva := grandSubtotal * pricing.IVARate
		text(colSubtotal-50, "IVA (19%):")
		text(colSubtotal, money.Format(iva))
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		text(colSubtotal-50, "Total:")
		text(colSubtotal, money.Format(grandSubtotal+iva))
	} else {
		pdf.SetFont("Helvetica", "B", 11)
		text(colSubtotal-50, "Total:")
		text(colSubtotal, money.Format(grandSubtotal))
	}

	// Footer anchored to the bottom margin of the last page.
	_, pageH := pdf.GetPageSize()
	y = pageH - 20
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(120, 120, 120)
	text(20, "Documento generado por MuebleFact Pro. Este es un resumen para el cliente.")
	now := time.Now()
	pdf.Text(20, y+4, tr(fmt.Sprintf("Generado el %s %02d:%02d", localeDate(now), now.Hour(), now.Minute())))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
