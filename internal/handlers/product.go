package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Martinez-Cris/mueblefact-pro/internal/httpx"
	"github.com/Martinez-Cris/mueblefact-pro/internal/models"
	"github.com/Martinez-Cris/mueblefact-pro/internal/store"
	"github.com/Martinez-Cris/mueblefact-pro/internal/validation"
)

type ProductHandler struct {
	Store *store.Store
}

func NewProductHandler(s *store.Store) *ProductHandler { return &ProductHandler{Store: s} }

// List: GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	snap := h.Store.Snapshot()
	httpx.JSON(w, http.StatusOK, map[string]any{"items": snap.Products, "total": len(snap.Products)})
}

// Create: POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.Product
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", input.Name, v)
	validation.Required("category", input.Category, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	// A negative price is malformed input and gets clamped by the store.
	p := h.Store.AddProduct(input)
	httpx.JSON(w, http.StatusCreated, p)
}

// Delete: POST /products/delete?id=...
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	// Existing invoices keep their snapshot of the product; exports
	// resolve the dangling reference to an unknown product.
	h.Store.DeleteProduct(id)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
