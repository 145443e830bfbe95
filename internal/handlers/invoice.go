package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Martinez-Cris/mueblefact-pro/internal/catalog"
	"github.com/Martinez-Cris/mueblefact-pro/internal/export"
	"github.com/Martinez-Cris/mueblefact-pro/internal/httpx"
	"github.com/Martinez-Cris/mueblefact-pro/internal/models"
	"github.com/Martinez-Cris/mueblefact-pro/internal/pricing"
	"github.com/Martinez-Cris/mueblefact-pro/internal/store"
	"github.com/Martinez-Cris/mueblefact-pro/internal/validation"
)

type InvoiceHandler struct {
	Store *store.Store
}

func NewInvoiceHandler(s *store.Store) *InvoiceHandler { return &InvoiceHandler{Store: s} }

// List: GET /invoices
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	snap := h.Store.Snapshot()
	httpx.JSON(w, http.StatusOK, map[string]any{"items": snap.Invoices, "total": len(snap.Invoices)})
}

// Create: POST /invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	type createReq struct {
		Client     models.Client      `json:"client"`
		Items      []models.OrderItem `json:"items"`
		IncludeIVA bool               `json:"includeIVA"`
	}
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("client.name", req.Client.Name, v)
	validation.NotEmptyList("items", len(req.Items), v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	inv, err := h.Store.AddInvoice(req.Client, req.Items, req.IncludeIVA)
	if err != nil {
		if errors.Is(err, store.ErrClientNameRequired) || errors.Is(err, store.ErrNoItems) {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", err.Error())
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_invoice", nil)
		return
	}
	snap := h.Store.Snapshot()
	subtotal, iva, total := pricing.ComputeTotals(inv, catalog.Catalog(snap.Products))
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"id":       inv.ID,
		"date":     inv.Date,
		"subtotal": subtotal,
		"iva":      iva,
		"total":    total,
	})
}

// Delete: POST /invoices/delete?id=...
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	h.Store.DeleteInvoice(id)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// CSV: GET /invoices/csv?id=... – production order download
func (h *InvoiceHandler) CSV(w http.ResponseWriter, r *http.Request) {
	// Invoice and catalog come from the same snapshot so the export is
	// internally consistent.
	snap := h.Store.Snapshot()
	inv, ok := findInvoice(snap, r.URL.Query().Get("id"))
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	body := export.RenderCSV(inv, catalog.Catalog(snap.Products))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+export.CSVFilename(inv)+"\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// ConsolidatedCSV: GET /invoices/consolidated.csv
func (h *InvoiceHandler) ConsolidatedCSV(w http.ResponseWriter, r *http.Request) {
	snap := h.Store.Snapshot()
	if len(snap.Invoices) == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "no_invoices", nil)
		return
	}
	body := export.RenderConsolidatedCSV(snap.Invoices, catalog.Catalog(snap.Products))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+export.ConsolidatedCSVFilename(time.Now())+"\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// PDF: GET /invoices/pdf?id=... – client summary download
func (h *InvoiceHandler) PDF(w http.ResponseWriter, r *http.Request) {
	snap := h.Store.Snapshot()
	inv, ok := findInvoice(snap, r.URL.Query().Get("id"))
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	data, err := export.RenderInvoicePDF(inv, catalog.Catalog(snap.Products))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "pdf_generation_failed", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\""+export.PDFFilename(inv)+"\"")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func findInvoice(snap models.State, id string) (models.Invoice, bool) {
	if id == "" {
		return models.Invoice{}, false
	}
	for _, inv := range snap.Invoices {
		if inv.ID == id {
			return inv, true
		}
	}
	return models.Invoice{}, false
}
