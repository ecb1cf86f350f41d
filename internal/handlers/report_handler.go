package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"bersih-backend/internal/middleware"
	"bersih-backend/internal/models"
	"bersih-backend/internal/services"

	"github.com/gorilla/mux"
)

const maxUploadBytes = 32 << 20 // whole multipart form

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// SubmitReport accepts a multipart form with a description, location,
// optional priority and 1-3 photos.
func (h *ReportHandler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	input := &services.SubmitReportInput{
		Description: r.FormValue("description"),
		Priority:    models.ReportPriority(r.FormValue("priority")),
	}
	input.Lat = parseFloatPtr(r.FormValue("lat"))
	input.Lng = parseFloatPtr(r.FormValue("lng"))

	photos, err := readPhotos(r, "photos")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input.Photos = photos

	report, err := h.Service.Submit(r.Context(), session, input)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, report)
}

// ListReports returns one page of reports. Citizens see their own;
// admins can pass scope=all plus status, month/year and ref_lat/ref_lng
// filters.
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())
	q := r.URL.Query()

	input := &services.ListReportsInput{
		Scope:  models.ScopeOwn,
		Cursor: q.Get("cursor"),
	}
	if q.Get("scope") == string(models.ScopeAll) {
		input.Scope = models.ScopeAll
	}
	if v := q.Get("page_size"); v != "" {
		input.PageSize, _ = strconv.Atoi(v)
	}
	if v := q.Get("status"); v != "" {
		status := models.ReportStatus(v)
		input.Status = &status
	}
	input.Month, _ = strconv.Atoi(q.Get("month"))
	input.Year, _ = strconv.Atoi(q.Get("year"))
	input.RefLat = parseFloatPtr(q.Get("ref_lat"))
	input.RefLng = parseFloatPtr(q.Get("ref_lng"))

	page, err := h.Service.List(r.Context(), session, input)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid report id", http.StatusBadRequest)
		return
	}

	report, err := h.Service.Get(r.Context(), session, id)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// ResolveReport marks a pending report complete. Accepts a multipart
// form with a feedback description and optional feedback photos.
func (h *ReportHandler) ResolveReport(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid report id", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	photos, err := readPhotos(r, "photos")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	report, err := h.Service.Resolve(r.Context(), session, id, r.FormValue("feedback"), photos)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// DeleteReports removes a batch of reports by id.
func (h *ReportHandler) DeleteReports(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.GetSessionFromContext(r.Context())

	var req struct {
		IDs []int64 `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	deleted, err := h.Service.DeleteBulk(r.Context(), session, req.IDs)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

func parseFloatPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func readPhotos(r *http.Request, field string) ([]services.PhotoUpload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	photos := make([]services.PhotoUpload, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open uploaded file %s", header.Filename)
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read uploaded file %s", header.Filename)
		}
		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}
		photos = append(photos, services.PhotoUpload{Data: data, ContentType: contentType})
	}
	return photos, nil
}
