package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Martinez-Cris/mueblefact-pro/internal/models"
)

func TestRenderInvoicePDF(t *testing.T) {
	data, err := RenderInvoicePDF(sampleInvoice(), exportCatalog())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRenderInvoicePDFDanglingProduct(t *testing.T) {
	inv := models.Invoice{
		Date:   time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
		Client: models.Client{Name: "Ana"},
		Items: []models.OrderItem{
			{ProductID: "deleted", Quantity: 1},
			{IsSet: true, SetName: "Sala", Quantity: 1, SetItems: []models.SetComponent{
				{ProductID: "also-deleted", Quantity: 2},
			}},
		},
	}
	data, err := RenderInvoicePDF(inv, exportCatalog())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestRenderInvoicePDFPaginates(t *testing.T) {
	inv := sampleInvoice()
	inv.Items = nil
	for i := 0; i < 60; i++ {
		inv.Items = append(inv.Items, models.OrderItem{ProductID: "1", Quantity: 1, UnitPrice: fptr(10)})
	}
	long, err := RenderInvoicePDF(inv, exportCatalog())
	require.NoError(t, err)

	short, err := RenderInvoicePDF(sampleInvoice(), exportCatalog())
	require.NoError(t, err)

	// 60 rows at 8mm each cannot fit one A4 page; the long document
	// must carry at least one extra page worth of content.
	assert.Greater(t, len(long), len(short))
	assert.Greater(t, bytes.Count(long, []byte("/Page")), bytes.Count(short, []byte("/Page")))
}

func TestRenderInvoicePDFEmptyInvoice(t *testing.T) {
	inv := models.Invoice{Date: time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)}
	data, err := RenderInvoicePDF(inv, exportCatalog())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestDates(t *testing.T) {
	d := time.Date(2026, time.September, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "3/9/2026", localeDate(d))
	assert.Equal(t, "3 de septiembre de 2026", longDate(d))
	assert.Equal(t, "3-9-2026", fileDate(d))
}
