package audit

import (
	"net/http"

	"github.com/superiorbooks/backend-pos/internal/common"
)

// Handler exposes the activity log over HTTP.
type Handler struct {
	Log *Log
}

// List returns the activity log newest-first, paginated.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, perPage := common.ParsePagination(r, 50)
	entries, meta := common.Paginate(h.Log.Entries(), page, perPage)
	common.JSON(w, http.StatusOK, map[string]any{"data": entries, "pagination": meta})
}
