package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"bersih-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps service sentinels to HTTP status codes. Anything
// unmapped is a server-side failure and gets a generic 500 so store
// errors never leak to clients.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrWeakPassword),
		errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, services.ErrLocationRequired),
		errors.Is(err, services.ErrInvalidCode),
		errors.Is(err, services.ErrCodeExpired),
		errors.Is(err, services.ErrCodeUsed):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, services.ErrPendingApproval),
		errors.Is(err, services.ErrForbidden):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrAlreadyResolved):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, services.ErrUploadFailed):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		log.Printf("[HTTP] Internal error: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
