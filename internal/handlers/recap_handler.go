package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"bersih-backend/internal/services"
	"bersih-backend/internal/timeutil"
)

type RecapHandler struct {
	Service *services.RecapService
}

func NewRecapHandler(s *services.RecapService) *RecapHandler {
	return &RecapHandler{Service: s}
}

// GetRecap returns the yearly recap table as JSON. Defaults to the
// current year.
func (h *RecapHandler) GetRecap(w http.ResponseWriter, r *http.Request) {
	year := parseYear(r)

	rows, err := h.Service.Rows(r.Context(), year)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"year": year,
		"rows": rows,
	})
}

// DownloadPDF streams the recap as a PDF attachment.
func (h *RecapHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	year := parseYear(r)

	data, err := h.Service.GeneratePDF(r.Context(), year)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="rekap-laporan-%d.pdf"`, year))
	w.Write(data)
}

// DownloadCSV streams the recap as a CSV attachment.
func (h *RecapHandler) DownloadCSV(w http.ResponseWriter, r *http.Request) {
	year := parseYear(r)

	data, err := h.Service.GenerateCSV(r.Context(), year)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="rekap-laporan-%d.csv"`, year))
	w.Write(data)
}

func parseYear(r *http.Request) int {
	if v := r.URL.Query().Get("year"); v != "" {
		if year, err := strconv.Atoi(v); err == nil && year > 0 {
			return year
		}
	}
	return timeutil.Now().Year()
}
