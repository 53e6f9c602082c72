package finance

import (
	"errors"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/superiorbooks/backend-pos/internal/common"
	"github.com/superiorbooks/backend-pos/internal/obs"
	"github.com/superiorbooks/backend-pos/internal/pricing"
)

// Handler exposes financial summaries and expense management over HTTP.
type Handler struct {
	Service *Service
}

// Summary returns the accrual summary for the requested range.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	dateRange, err := common.ParseDateRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	sum := h.Service.Summarize(dateRange)
	if obs.SummariesComputedTotal != nil {
		obs.SummariesComputedTotal.Inc()
	}
	common.JSON(w, http.StatusOK, sum)
}

type expenseRequest struct {
	Date        string        `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Category    string        `json:"category" validate:"required"`
	Description string        `json:"description"`
	Amount      pricing.Money `json:"amount" validate:"gt=0"`
}

// CreateExpense records a new expense.
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	op, _ := common.OperatorFromContext(r.Context())
	var req expenseRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.RenderError(w, err)
		return
	}
	e, err := h.Service.RecordExpense(r.Context(), op, Expense{
		Date:        req.Date,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
	})
	if err != nil {
		common.RenderError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, e)
}

// ListExpenses returns expenses newest-first, paginated.
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses := h.Service.Expenses.List()
	slices.Reverse(expenses)
	page, perPage := common.ParsePagination(r, 50)
	window, meta := common.Paginate(expenses, page, perPage)
	common.JSON(w, http.StatusOK, map[string]any{"data": window, "pagination": meta})
}

// UpdateExpense replaces an expense's fields.
func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := common.DecodeAndValidate(r, &req); err != nil {
		common.RenderError(w, err)
		return
	}
	e, err := h.Service.Expenses.Update(chi.URLParam(r, "id"), Expense{
		Date:        req.Date,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
	})
	if err != nil {
		renderFinanceError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, e)
}

// DeleteExpense removes an expense.
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Expenses.Delete(chi.URLParam(r, "id")); err != nil {
		renderFinanceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func renderFinanceError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrExpenseNotFound) {
		common.JSONError(w, http.StatusNotFound, "EXPENSE_NOT_FOUND", "expense not found", nil)
		return
	}
	common.RenderError(w, err)
}
