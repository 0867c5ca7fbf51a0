package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"marketAPI/internal/middleware"
	"marketAPI/internal/models"
	"marketAPI/internal/service"
)

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=4,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

type AuthResponse struct {
	Username string    `json:"username"`
	Email    string    `json:"email"`
	UserID   int       `json:"userId"`
	Token    string    `json:"token"`
	Expires  time.Time `json:"expires"`
}

type UserResponse struct {
	UserID   int       `json:"userId"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Joined   time.Time `json:"joined"`
}

func newAuthResponse(user *models.User, token *service.Token) AuthResponse {
	return AuthResponse{
		Username: user.Username,
		Email:    user.Email,
		UserID:   user.UserID,
		Token:    token.Token,
		Expires:  token.Expires,
	}
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeError(w, validationMessage(err), http.StatusBadRequest)
		return
	}

	user, token, err := h.AuthService.Register(r.Context(), service.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, newAuthResponse(user, token), http.StatusOK)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		writeError(w, validationMessage(err), http.StatusBadRequest)
		return
	}

	user, token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, newAuthResponse(user, token), http.StatusOK)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "You are not logged in", http.StatusUnauthorized)
		return
	}

	user, err := h.AuthService.Me(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeSuccess(w, UserResponse{
		UserID:   user.UserID,
		Username: user.Username,
		Email:    user.Email,
		Joined:   user.Joined,
	}, http.StatusOK)
}
