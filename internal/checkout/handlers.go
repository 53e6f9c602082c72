package checkout

import (
	"errors"
	"net/http"

	"github.com/superiorbooks/backend-pos/internal/catalog"
	"github.com/superiorbooks/backend-pos/internal/common"
	"github.com/superiorbooks/backend-pos/internal/invoice"
	"github.com/superiorbooks/backend-pos/internal/ledger"
	"github.com/superiorbooks/backend-pos/internal/pricing"
)

// Handler exposes the register over HTTP.
type Handler struct {
	Service *Service
}

// QuoteCart prices a cart without finalizing it.
func (h *Handler) QuoteCart(w http.ResponseWriter, r *http.Request) {
	var req CartRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.RenderError(w, err)
		return
	}
	quote, err := h.Service.QuoteCart(req)
	if err != nil {
		renderCheckoutError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, quote)
}

// CheckoutPOS finalizes a cart into a ledger sale.
func (h *Handler) CheckoutPOS(w http.ResponseWriter, r *http.Request) {
	op, _ := common.OperatorFromContext(r.Context())
	var req CartRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.RenderError(w, err)
		return
	}
	inv, err := h.Service.CheckoutPOS(r.Context(), op, req)
	if err != nil {
		renderCheckoutError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, inv)
}

// QuoteService prices a service-center job.
func (h *Handler) QuoteService(w http.ResponseWriter, r *http.Request) {
	var form pricing.ServiceForm
	if err := common.DecodeAndValidate(r, &form); err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, h.Service.QuoteService(form))
}

// CheckoutService finalizes a service-center job into a ledger sale.
func (h *Handler) CheckoutService(w http.ResponseWriter, r *http.Request) {
	op, _ := common.OperatorFromContext(r.Context())
	var form pricing.ServiceForm
	if err := common.DecodeAndValidate(r, &form); err != nil {
		common.RenderError(w, err)
		return
	}
	inv, err := h.Service.CheckoutService(r.Context(), op, form)
	if err != nil {
		renderCheckoutError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, inv)
}

func renderCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmptyCart), errors.Is(err, invoice.ErrInvalidInvoiceState):
		common.JSONError(w, http.StatusBadRequest, "INVALID_INVOICE_STATE", "cart is empty or prices to zero", nil)
	case errors.Is(err, catalog.ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "catalog item not found", nil)
	case errors.Is(err, catalog.ErrInsufficientStock):
		common.JSONError(w, http.StatusUnprocessableEntity, "INSUFFICIENT_STOCK", err.Error(), nil)
	case errors.Is(err, ledger.ErrDuplicateInvoiceID):
		common.JSONError(w, http.StatusConflict, "DUPLICATE_INVOICE_ID", "invoice already recorded", nil)
	default:
		common.RenderError(w, err)
	}
}
