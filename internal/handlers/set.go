package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Martinez-Cris/mueblefact-pro/internal/httpx"
	"github.com/Martinez-Cris/mueblefact-pro/internal/models"
	"github.com/Martinez-Cris/mueblefact-pro/internal/store"
	"github.com/Martinez-Cris/mueblefact-pro/internal/validation"
)

type SetHandler struct {
	Store *store.Store
}

func NewSetHandler(s *store.Store) *SetHandler { return &SetHandler{Store: s} }

// List: GET /sets
func (h *SetHandler) List(w http.ResponseWriter, r *http.Request) {
	snap := h.Store.Snapshot()
	httpx.JSON(w, http.StatusOK, map[string]any{"items": snap.Sets, "total": len(snap.Sets)})
}

// Create: POST /sets
func (h *SetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input models.SetDefinition
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	validation.Required("name", input.Name, v)
	validation.NotEmptyList("items", len(input.Items), v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	def := h.Store.AddSet(input)
	httpx.JSON(w, http.StatusCreated, def)
}

// Instantiate: POST /sets/instantiate?id=... – builds an order line
// from a stored definition, freezing its components at this moment.
func (h *SetHandler) Instantiate(w http.ResponseWriter, r *http.Request) {
	type instantiateReq struct {
		Quantity  int      `json:"quantity"`
		UnitPrice *float64 `json:"unitPrice"`
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	var req instantiateReq
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
			return
		}
	}
	item, ok := h.Store.InstantiateSet(id, req.Quantity, req.UnitPrice)
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, item)
}

// Delete: POST /sets/delete?id=...
func (h *SetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	// Invoices built from the set keep their frozen component snapshot.
	h.Store.DeleteSet(id)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
