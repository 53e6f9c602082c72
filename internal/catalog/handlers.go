package catalog

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/superiorbooks/backend-pos/internal/common"
	"github.com/superiorbooks/backend-pos/internal/pricing"
)

// Handler wires the inventory store to HTTP.
type Handler struct {
	Store *Store
}

type itemPayload struct {
	SKU   string        `json:"sku" validate:"required"`
	Name  string        `json:"name" validate:"required"`
	Price pricing.Money `json:"unitPrice" validate:"gte=0"`
	Stock int           `json:"stock" validate:"gte=0"`
}

// List returns the full catalog.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Store.List()})
}

// Get returns a single item by SKU.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.Store.Get(chi.URLParam(r, "sku"))
	if err != nil {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "item not found", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": item})
}

// Create adds a catalog item.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var payload itemPayload
	if err := common.DecodeAndValidate(r, &payload); err != nil {
		common.RenderError(w, err)
		return
	}
	item := Item{SKU: payload.SKU, Name: payload.Name, Price: payload.Price, Stock: payload.Stock}
	if err := h.Store.Create(item); err != nil {
		if errors.Is(err, ErrDuplicateSKU) {
			common.JSONError(w, http.StatusConflict, "DUPLICATE_SKU", "item already exists", nil)
			return
		}
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": item})
}

// Update replaces an item's editable fields.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name  string        `json:"name" validate:"required"`
		Price pricing.Money `json:"unitPrice" validate:"gte=0"`
		Stock int           `json:"stock" validate:"gte=0"`
	}
	if err := common.DecodeAndValidate(r, &payload); err != nil {
		common.RenderError(w, err)
		return
	}
	item := Item{SKU: chi.URLParam(r, "sku"), Name: payload.Name, Price: payload.Price, Stock: payload.Stock}
	if err := h.Store.Update(item); err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "item not found", nil)
			return
		}
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": item})
}

// Restock increases an item's stock level.
func (h *Handler) Restock(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Qty int `json:"quantity" validate:"gt=0"`
	}
	if err := common.DecodeAndValidate(r, &payload); err != nil {
		common.RenderError(w, err)
		return
	}
	item, err := h.Store.Restock(chi.URLParam(r, "sku"), payload.Qty)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "item not found", nil)
			return
		}
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": item})
}
