package ledger

import (
	"errors"
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/superiorbooks/backend-pos/internal/common"
)

// Handler exposes the sale ledger over HTTP.
type Handler struct {
	Store   *Store
	Service *Service
}

// ListSales returns ledger sales filtered by operator, date range, and
// closure state, newest-first and paginated.
func (h *Handler) ListSales(w http.ResponseWriter, r *http.Request) {
	filter, err := saleFilterFromQuery(r)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	sales := slices.Collect(h.Store.QuerySales(filter))
	slices.Reverse(sales)
	page, perPage := common.ParsePagination(r, 50)
	window, meta := common.Paginate(sales, page, perPage)
	common.JSON(w, http.StatusOK, map[string]any{"data": window, "pagination": meta})
}

// GetSale returns one sale with its refunds.
func (h *Handler) GetSale(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sale, err := h.Store.GetSale(id)
	if err != nil {
		common.JSONError(w, http.StatusNotFound, "SALE_NOT_FOUND", "sale not found", nil)
		return
	}
	refunds := make([]Refund, 0)
	for ref := range h.Store.QueryRefunds(RefundFilter{}) {
		if ref.OriginalSaleID == id {
			refunds = append(refunds, ref)
		}
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"sale":          sale,
		"refunds":       refunds,
		"refundedTotal": h.Store.RefundedTotal(id),
	})
}

// ListRefunds returns recorded refunds, newest-first and paginated.
func (h *Handler) ListRefunds(w http.ResponseWriter, r *http.Request) {
	dateRange, err := common.ParseDateRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	filter := RefundFilter{OperatorID: r.URL.Query().Get("operatorId"), Range: dateRange}
	refunds := slices.Collect(h.Store.QueryRefunds(filter))
	slices.Reverse(refunds)
	page, perPage := common.ParsePagination(r, 50)
	window, meta := common.Paginate(refunds, page, perPage)
	common.JSON(w, http.StatusOK, map[string]any{"data": window, "pagination": meta})
}

// CreateRefund records an adjustment against a sale.
func (h *Handler) CreateRefund(w http.ResponseWriter, r *http.Request) {
	op, _ := common.OperatorFromContext(r.Context())
	var req RefundRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.RenderError(w, err)
		return
	}
	ref, err := h.Service.Refund(r.Context(), op, chi.URLParam(r, "id"), req)
	if err != nil {
		renderLedgerError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, ref)
}

func renderLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSaleNotFound):
		common.JSONError(w, http.StatusNotFound, "SALE_NOT_FOUND", "sale not found", nil)
	case errors.Is(err, ErrSaleAlreadyClosed):
		common.JSONError(w, http.StatusConflict, "SALE_ALREADY_CLOSED", "sale already swept into a closure", nil)
	case errors.Is(err, ErrRefundExceedsRemaining):
		common.JSONError(w, http.StatusUnprocessableEntity, "REFUND_EXCEEDS_REMAINING", "refund exceeds the sale's remaining value", nil)
	case errors.Is(err, ErrDuplicateInvoiceID):
		common.JSONError(w, http.StatusConflict, "DUPLICATE_INVOICE_ID", "invoice already recorded", nil)
	case errors.Is(err, ErrInvalidRefund):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid refund request", nil)
	default:
		common.RenderError(w, err)
	}
}

func saleFilterFromQuery(r *http.Request) (SaleFilter, error) {
	dateRange, err := common.ParseDateRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		return SaleFilter{}, err
	}
	filter := SaleFilter{OperatorID: r.URL.Query().Get("operatorId"), Range: dateRange}
	if v := r.URL.Query().Get("closed"); v != "" {
		closed, err := strconv.ParseBool(v)
		if err != nil {
			return SaleFilter{}, err
		}
		filter.Closed = &closed
	}
	return filter, nil
}
