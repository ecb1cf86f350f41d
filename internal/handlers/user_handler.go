package handlers

import (
	"encoding/json"
	"net/http"

	"bersih-backend/internal/middleware"
	"bersih-backend/internal/models"
	"bersih-backend/internal/services"

	"github.com/gorilla/mux"
)

type UserHandler struct {
	Service *services.UserService
}

func NewUserHandler(s *services.UserService) *UserHandler {
	return &UserHandler{Service: s}
}

// ListPending returns citizen accounts waiting for approval.
func (h *UserHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	users, err := h.Service.ListPending(r.Context(), session)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// ListUsers returns all citizen accounts.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	users, err := h.Service.ListCitizens(r.Context(), session)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// CreateUser lets an admin register a pre-approved citizen directly.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.Service.CreateCitizen(r.Context(), session, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// ApproveUser marks a pending citizen account as usable.
func (h *UserHandler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())
	id := mux.Vars(r)["id"]

	if err := h.Service.Approve(r.Context(), session, id); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "approved"})
}

// DeleteUser removes a citizen account, rejecting it if still pending.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())
	id := mux.Vars(r)["id"]

	if err := h.Service.Delete(r.Context(), session, id); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ChangePassword updates the caller's own password.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.ChangePassword(r.Context(), session, &req); err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}
