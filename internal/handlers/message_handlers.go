package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rentora/rentora-api/internal/domain"
)

// SendMessage delivers a private message to another user
func (h *Handlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)

	var req domain.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON format", "INVALID_INPUT")
		return
	}

	message, err := h.messageService.Send(r.Context(), claims.Sub, &req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, message)
}

// ListReceivedMessages lists messages addressed to the caller
func (h *Handlers) ListReceivedMessages(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)

	messages, err := h.messageService.ListReceived(r.Context(), claims.Sub)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if messages == nil {
		messages = []domain.InboxMessage{}
	}
	writeJSON(w, http.StatusOK, messages)
}

// ListSentMessages lists messages the caller has sent
func (h *Handlers) ListSentMessages(w http.ResponseWriter, r *http.Request) {
	claims := getClaims(r)

	messages, err := h.messageService.ListSent(r.Context(), claims.Sub)
	if err != nil {
		respondError(w, r, err)
		return
	}

	if messages == nil {
		messages = []domain.OutboxMessage{}
	}
	writeJSON(w, http.StatusOK, messages)
}
