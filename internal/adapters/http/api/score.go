package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// ScoreHandler handles score requests.
type ScoreHandler struct {
	deps ScoreDependencies
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(deps ScoreDependencies) *ScoreHandler {
	return &ScoreHandler{deps: deps}
}

// HandleGetScore handles GET /posts/{contentID}/score.
// 404 means nothing is bound to the content or no snapshot was fetched yet.
func (h *ScoreHandler) HandleGetScore(w http.ResponseWriter, r *http.Request) {
	contentID := mux.Vars(r)["contentID"]
	info, err := h.deps.ScoreForContent(r.Context(), contentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if info == nil {
		writeDomainError(w, fmt.Errorf("%w: no score for content %q", ErrNotFound, contentID))
		return
	}
	writeJSON(w, http.StatusOK, info)
}
