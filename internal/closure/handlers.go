package closure

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/superiorbooks/backend-pos/internal/common"
)

// Handler exposes the closure workflow over HTTP.
type Handler struct {
	Store   *Store
	Service *Service
}

// Preview returns the calling operator's unclosed drawer summary.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	op, _ := common.OperatorFromContext(r.Context())
	common.JSON(w, http.StatusOK, h.Service.Preview(op.ID))
}

// Create commits the calling operator's day closure.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	op, _ := common.OperatorFromContext(r.Context())
	c, err := h.Service.Create(r.Context(), op)
	if err != nil {
		renderClosureError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, c)
}

// List returns closures filtered by status, operator, date range, and search
// term.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dateRange, err := common.ParseDateRange(q.Get("from"), q.Get("to"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	filter := Filter{
		OperatorID: q.Get("operatorId"),
		Status:     Status(q.Get("status")),
		From:       dateRange.Start,
		To:         dateRange.End,
		Search:     q.Get("search"),
	}
	closures := h.Store.List(filter)
	page, perPage := common.ParsePagination(r, 50)
	window, meta := common.Paginate(closures, page, perPage)
	common.JSON(w, http.StatusOK, map[string]any{"data": window, "pagination": meta})
}

// Get returns one closure by id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.Store.Get(chi.URLParam(r, "id"))
	if err != nil {
		renderClosureError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, c)
}

// Receive confirms a pending closure handover.
func (h *Handler) Receive(w http.ResponseWriter, r *http.Request) {
	op, _ := common.OperatorFromContext(r.Context())
	c, err := h.Service.Receive(r.Context(), op, chi.URLParam(r, "id"))
	if err != nil {
		renderClosureError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, c)
}

func renderClosureError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "CLOSURE_NOT_FOUND", "closure not found", nil)
	case errors.Is(err, ErrNothingToClose):
		common.JSONError(w, http.StatusUnprocessableEntity, "NOTHING_TO_CLOSE", "no unclosed activity for operator", nil)
	case errors.Is(err, ErrAlreadyReceived):
		common.JSONError(w, http.StatusConflict, "ALREADY_RECEIVED", "closure already received", nil)
	default:
		common.RenderError(w, err)
	}
}
