package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"bersih-backend/internal/models"
	"bersih-backend/internal/repositories"
	"bersih-backend/internal/services"
)

type AuthHandler struct {
	Service      *services.UserService
	LoginLogRepo *repositories.LoginLogRepository
}

func NewAuthHandler(s *services.UserService, loginLogRepo *repositories.LoginLogRepository) *AuthHandler {
	return &AuthHandler{
		Service:      s,
		LoginLogRepo: loginLogRepo,
	}
}

// Register handles citizen self-registration. The account waits for
// admin approval before it can log in. The whole flow is bounded at 30s
// so a stuck counter transaction cannot hold the connection open.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	user, err := h.Service.Register(ctx, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"user":    user,
		"message": "Registration received. An admin will review your account.",
	})
}

// Login handles authentication for citizens and admins.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	authResp, err := h.Service.Login(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}

	// Log the successful login, without failing the response on error.
	if err := h.LoginLogRepo.Create(r.Context(), authResp.User.ID, getIPAddress(r), r.UserAgent()); err != nil {
		log.Printf("[AuthHandler] Failed to record login for %s: %v", authResp.User.ID, err)
	}

	writeJSON(w, http.StatusOK, authResp)
}

// ForgotPassword issues a reset code for the account's email. The code
// is returned in the response for in-app display.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	reset, err := h.Service.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"code":       reset.Code,
		"expires_at": reset.ExpiresAt,
	})
}

// VerifyResetCode checks a code without consuming it.
func (h *AuthHandler) VerifyResetCode(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyResetCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.VerifyResetCode(r.Context(), req.Email, req.Code); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "valid"})
}

// ResetPassword sets a new password using a valid reset code.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.CompletePasswordReset(r.Context(), &req); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}

// getIPAddress extracts the real IP address from the request
func getIPAddress(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs, take the first one
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	return r.RemoteAddr
}
