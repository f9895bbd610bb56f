package http

import (
	"encoding/json"
	"net/http"

	"github.com/driveline/driveline/internal/usecase"

	"github.com/gorilla/mux"
)

// AuthHandler handles HTTP requests for admin authentication
type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(router *mux.Router, auth *AuthMiddleware) {
	router.HandleFunc("/api/auth/login", h.Login).Methods("POST")
	router.HandleFunc("/api/auth/me", auth.Require(h.Me)).Methods("GET")
}

// Login handles admin login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req usecase.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Invalid request body")
		return
	}
	req.ClientIP = clientIP(r)

	resp, err := h.authUseCase.Login(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"access_token": resp.AccessToken,
		"admin":        resp.Admin,
	})
}

// Me handles resolving the authenticated admin
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	admin, err := h.authUseCase.Me(r.Context(), AdminIDFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"admin":   admin,
	})
}
