package api

import (
	"net/http"
)

// RefreshHandler triggers refresh cycles on demand.
type RefreshHandler struct {
	deps RefreshDependencies
}

// NewRefreshHandler creates a new refresh handler.
func NewRefreshHandler(deps RefreshDependencies) *RefreshHandler {
	return &RefreshHandler{deps: deps}
}

// HandleRefresh handles POST /refresh. It answers 409 while a cycle is running.
func (h *RefreshHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	report, err := h.deps.RefreshNow(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
