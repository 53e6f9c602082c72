package health

import (
	"net/http"

	"github.com/superiorbooks/backend-pos/internal/common"
)

// Probe reports whether a subsystem is ready to serve.
type Probe func() bool

// Handler serves liveness and readiness endpoints.
type Handler struct {
	Probes map[string]Probe
}

// Live always reports up while the process is serving.
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	common.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready runs every registered probe and reports per-subsystem status.
func (h *Handler) Ready(w http.ResponseWriter, _ *http.Request) {
	status := http.StatusOK
	checks := make(map[string]string, len(h.Probes))
	for name, probe := range h.Probes {
		if probe() {
			checks[name] = "ok"
			continue
		}
		checks[name] = "unavailable"
		status = http.StatusServiceUnavailable
	}
	body := map[string]any{"status": "ok", "checks": checks}
	if status != http.StatusOK {
		body["status"] = "degraded"
	}
	common.JSON(w, status, body)
}
