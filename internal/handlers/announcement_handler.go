package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"bersih-backend/internal/middleware"
	"bersih-backend/internal/models"
	"bersih-backend/internal/services"

	"github.com/gorilla/mux"
)

type AnnouncementHandler struct {
	Service *services.AnnouncementService
}

func NewAnnouncementHandler(s *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{Service: s}
}

func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.Service.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, announcements)
}

func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	var req models.CreateAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	announcement, err := h.Service.Create(r.Context(), session, &req)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, announcement)
}

func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid announcement id", http.StatusBadRequest)
		return
	}

	if err := h.Service.Delete(r.Context(), session, id); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
