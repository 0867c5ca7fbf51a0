package handlers

import (
	"encoding/json"
	"net/http"

	"marketAPI/internal/middleware"
	"marketAPI/internal/service"
)

type SendMessageRequest struct {
	Text     string `json:"text" validate:"required"`
	Receiver int    `json:"receiver" validate:"required"`
}

// SendMessage appends a message to the thread of a product.
func (h *Handlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "You are not logged in", http.StatusUnauthorized)
		return
	}

	productID, ok := pathInt(r, "id")
	if !ok {
		writeError(w, "Product not found", http.StatusNotFound)
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if msg := h.validate(req); msg != "" {
		writeError(w, msg, http.StatusBadRequest)
		return
	}

	_, err := h.MessageService.Send(r.Context(), service.SendMessageRequest{
		ProductID: productID,
		Sender:    userID,
		Receiver:  req.Receiver,
		Text:      req.Text,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "Success"}, http.StatusOK)
}
