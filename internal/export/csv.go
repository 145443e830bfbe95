// Package export renders invoices into their two external artifacts:
// the production-order CSV and the client-facing PDF.
package export

import (
	"strconv"
	"strings"
	"time"

	"github.com/Martinez-Cris/mueblefact-pro/internal/catalog"
	"github.com/Martinez-Cris/mueblefact-pro/internal/models"
	"github.com/Martinez-Cris/mueblefact-pro/internal/money"
	"github.com/Martinez-Cris/mueblefact-pro/internal/pricing"
)

// componentMarker tags the sub-row of a set component in the type column.
const componentMarker = "  ↳ Componente"

// missingValue is the sentinel for an empty size or color field.
const missingValue = "N/A"

var csvHeader = []string{
	"N° Orden", "Fecha", "Cliente", "CC/NIT", "Teléfono", "Correo",
	"Dirección", "Ciudad/País", "Vendedor", "Tipo", "Producto", "Medida",
	"Color", "Cantidad", "Precio Unit.", "Subtotal", "IVA",
}

// RenderCSV renders one invoice as CSV text: a header row, one row per
// order line and one sub-row per set component.
func RenderCSV(inv models.Invoice, cat catalog.Catalog) string {
	rows := [][]string{csvHeader}
	rows = append(rows, invoiceRows(inv, cat)...)
	return frameRows(rows)
}

// RenderConsolidatedCSV renders every invoice into a single CSV with one
// shared header, no separators and no per-invoice subtotal rows.
func RenderConsolidatedCSV(invs []models.Invoice, cat catalog.Catalog) string {
	rows := [][]string{csvHeader}
	for _, inv := range invs {
		rows = append(rows, invoiceRows(inv, cat)...)
	}
	return frameRows(rows)
}

func invoiceRows(inv models.Invoice, cat catalog.Catalog) [][]string {
	var rows [][]string
	for _, it := range inv.Items {
		name := it.SetName
		kind := "SET"
		if !it.IsSet {
			kind = "INDIVIDUAL"
			if p, ok := cat.Find(it.ProductID); ok {
				name = p.Name
			} else {
				name = ""
			}
		}
		qty := pricing.NormalizeQuantity(it.Quantity)
		unit := pricing.ItemUnitPrice(it, cat)
		subtotal := unit * float64(qty)
		tax := 0.0
		if inv.IncludeIVA {
			tax = subtotal * pricing.IVARate
		}
		rows = append(rows, []string{
			inv.Client.OrderNumber,
			localeDate(inv.Date),
			inv.Client.Name,
			inv.Client.TaxID,
			inv.Client.Phone,
			inv.Client.Email,
			inv.Client.Address,
			inv.Client.Location,
			inv.Client.Seller,
			kind,
			name,
			orSentinel(it.Size),
			orSentinel(it.Color),
			strconv.Itoa(qty),
			money.Fixed(unit),
			money.Fixed(subtotal),
			money.Fixed(tax),
		})
		if !it.IsSet {
			continue
		}
		for _, c := range it.SetItems {
			compName := ""
			if p, ok := cat.Find(c.ProductID); ok {
				compName = p.Name
			}
			compQty := pricing.NormalizeQuantity(c.Quantity)
			compUnit := pricing.ComponentUnitPrice(c, cat)
			rows = append(rows, []string{
				"", "", "", "", "", "", "", "", "",
				componentMarker,
				compName,
				orSentinel(c.Size),
				orSentinel(c.Color),
				strconv.Itoa(compQty),
				money.Fixed(compUnit),
				money.Fixed(compUnit * float64(compQty)),
				"",
			})
		}
	}
	return rows
}

// frameRows wraps every cell in double quotes without escaping embedded
// quotes, matching the consumer's expected framing exactly. This is why
// encoding/csv is not used here: it would escape quote characters and
// change the output. Embedded double quotes corrupt a row; known
// limitation of the format.
func frameRows(rows [][]string) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(cell)
			b.WriteByte('"')
		}
	}
	return b.String()
}

func orSentinel(s string) string {
	if s == "" {
		return missingValue
	}
	return s
}

// CSVFilename names a single-invoice export after the client and the
// invoice date.
func CSVFilename(inv models.Invoice) string {
	return "orden_produccion_" + clientSlug(inv.Client.Name) + "_" + fileDate(inv.Date) + ".csv"
}

// ConsolidatedCSVFilename names the consolidated export after the
// export date.
func ConsolidatedCSVFilename(now time.Time) string {
	return "ordenes_produccion_consolidado_" + now.Format("2006-01-02") + ".csv"
}

// PDFFilename names the client PDF after the client and invoice date.
func PDFFilename(inv models.Invoice) string {
	return "factura_" + clientSlug(inv.Client.Name) + "_" + inv.Date.Format("2006-01-02") + ".pdf"
}

func clientSlug(name string) string {
	if name == "" {
		return "cliente"
	}
	return strings.ReplaceAll(name, " ", "_")
}
