package printdesk

import (
	"errors"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/superiorbooks/backend-pos/internal/common"
	"github.com/superiorbooks/backend-pos/internal/invoice"
	"github.com/superiorbooks/backend-pos/internal/pricing"
)

// Handler exposes the print desk over HTTP.
type Handler struct {
	Service *Service
}

type quoteRequest struct {
	Spec pricing.PrintSpec `json:"spec"`
}

// Quote prices a print job without creating an order.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, h.Service.Quote(req.Spec))
}

type createOrderRequest struct {
	CustomerName string            `json:"customerName"`
	Spec         pricing.PrintSpec `json:"spec"`
	Gateway      string            `json:"gateway" validate:"required"`
	Notes        string            `json:"notes"`
}

// Create settles and queues a print order.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	op, _ := common.OperatorFromContext(r.Context())
	var req createOrderRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.RenderError(w, err)
		return
	}
	order, err := h.Service.Create(r.Context(), op, req.CustomerName, req.Spec, req.Gateway, req.Notes)
	if err != nil {
		renderPrintError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, order)
}

// List returns print orders newest-first, optionally filtered by status.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	orders := h.Service.Orders.List(Status(r.URL.Query().Get("status")))
	slices.Reverse(orders)
	page, perPage := common.ParsePagination(r, 50)
	window, meta := common.Paginate(orders, page, perPage)
	common.JSON(w, http.StatusOK, map[string]any{"data": window, "pagination": meta})
}

// Get returns one print order.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.Service.Orders.Get(chi.URLParam(r, "id"))
	if err != nil {
		renderPrintError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, order)
}

type statusRequest struct {
	Status Status `json:"status" validate:"required,oneof=pending printing ready completed cancelled"`
}

// UpdateStatus moves an order through the workflow.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	op, _ := common.OperatorFromContext(r.Context())
	var req statusRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.RenderError(w, err)
		return
	}
	order, err := h.Service.Transition(r.Context(), op, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		renderPrintError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, order)
}

func renderPrintError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "ORDER_NOT_FOUND", "print order not found", nil)
	case errors.Is(err, ErrInvalidTransition):
		common.JSONError(w, http.StatusConflict, "INVALID_TRANSITION", "status transition not allowed", nil)
	case errors.Is(err, ErrGatewayDisabled):
		common.JSONError(w, http.StatusUnprocessableEntity, "GATEWAY_DISABLED", "payment gateway is not enabled", nil)
	case errors.Is(err, invoice.ErrInvalidInvoiceState):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "print job prices to zero", nil)
	default:
		common.RenderError(w, err)
	}
}
