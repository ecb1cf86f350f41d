package handlers

import (
	"net/http"
	"strconv"

	"bersih-backend/internal/repositories"
)

// LoginLogHandler exposes the login audit trail to admins.
type LoginLogHandler struct {
	Repo *repositories.LoginLogRepository
}

func NewLoginLogHandler(repo *repositories.LoginLogRepository) *LoginLogHandler {
	return &LoginLogHandler{Repo: repo}
}

func (h *LoginLogHandler) ListLoginLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.Repo.List(r.Context(), limit)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, logs)
}
