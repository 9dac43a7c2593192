package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/okian/livescores/internal/domain/model"
)

// SubscriptionHandler handles subscription requests.
type SubscriptionHandler struct {
	deps SubscriptionDependencies
}

// NewSubscriptionHandler creates a new subscription handler.
func NewSubscriptionHandler(deps SubscriptionDependencies) *SubscriptionHandler {
	return &SubscriptionHandler{deps: deps}
}

type subscriptionResponse struct {
	ContentID    string             `json:"contentId"`
	Subscription model.Subscription `json:"subscription"`
}

type unsubscribeResponse struct {
	ContentID string `json:"contentId"`
	Removed   bool   `json:"removed"`
}

type listResponse struct {
	Count         int                  `json:"count"`
	Subscriptions []model.Subscription `json:"subscriptions"`
}

// HandlePut handles PUT /posts/{contentID}/subscription.
func (h *SubscriptionHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	contentID := mux.Vars(r)["contentID"]

	var sub model.Subscription
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sub); err != nil {
		writeDomainError(w, fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if err := h.deps.Subscribe(r.Context(), contentID, sub); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, subscriptionResponse{ContentID: contentID, Subscription: sub})
}

// HandleDelete handles DELETE /posts/{contentID}/subscription.
func (h *SubscriptionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	contentID := mux.Vars(r)["contentID"]
	removed, err := h.deps.Unsubscribe(r.Context(), contentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, unsubscribeResponse{ContentID: contentID, Removed: removed})
}

// HandleList handles GET /subscriptions.
func (h *SubscriptionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	subs, err := h.deps.ActiveSubscriptions(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Count: len(subs), Subscriptions: subs})
}
