package reports

import (
	"net/http"
	"strconv"

	"github.com/superiorbooks/backend-pos/internal/common"
)

// Handler exposes dashboard reports over HTTP.
type Handler struct {
	Service *Service
}

// SalesRange returns per-day register activity for the requested range.
func (h *Handler) SalesRange(w http.ResponseWriter, r *http.Request) {
	dateRange, err := common.ParseDateRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Service.SalesRange(dateRange)})
}

// TopItems returns the best-selling catalog items for the requested range.
func (h *Handler) TopItems(w http.ResponseWriter, r *http.Request) {
	dateRange, err := common.ParseDateRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	common.JSON(w, http.StatusOK, map[string]any{"data": h.Service.TopItems(dateRange, limit)})
}
