package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"bersih-backend/internal/cache"
	"bersih-backend/internal/geo"
	"bersih-backend/internal/metrics"
	"bersih-backend/internal/models"
	"bersih-backend/internal/repositories"
	"bersih-backend/internal/storage"
	"bersih-backend/internal/timeutil"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
	maxReportPhotos = 3
)

// ReportStore is the persistence surface the report service needs.
// *repositories.ReportRepository satisfies it.
type ReportStore interface {
	Create(ctx context.Context, r *models.Report) error
	Get(ctx context.Context, id int64) (*models.Report, error)
	List(ctx context.Context, opts repositories.ReportListOptions) ([]*models.Report, error)
	Resolve(ctx context.Context, id int64, adminID, feedback string, feedbackPhotos []string, resolvedAt time.Time) (bool, error)
	DeleteBulk(ctx context.Context, ids []int64) (int64, error)
}

// Notifier pushes newly submitted reports to connected admin clients.
// *ws.Hub satisfies it.
type Notifier interface {
	ReportSubmitted(r *models.Report)
}

// PhotoUpload is raw photo content received from a multipart form.
type PhotoUpload struct {
	Data        []byte
	ContentType string
}

// SubmitReportInput carries a citizen's report submission.
type SubmitReportInput struct {
	Description string
	Priority    models.ReportPriority
	Lat         *float64
	Lng         *float64
	Photos      []PhotoUpload
}

// ListReportsInput carries the query parameters of a report listing.
// Status, Month/Year and the reference point are admin-only and ignored
// for citizens, who always see their own reports.
type ListReportsInput struct {
	Scope    models.ListScope
	Cursor   string
	PageSize int
	Status   *models.ReportStatus
	Month    int
	Year     int
	RefLat   *float64
	RefLng   *float64
}

type ReportService struct {
	reports  ReportStore
	uploader storage.Uploader
	notifier Notifier
}

func NewReportService(reports ReportStore, uploader storage.Uploader, notifier Notifier) *ReportService {
	return &ReportService{reports: reports, uploader: uploader, notifier: notifier}
}

// Submit stores a new waste report. Photo uploads are all-or-nothing:
// if any upload fails, already uploaded photos are removed and no report
// row is written.
func (s *ReportService) Submit(ctx context.Context, session models.Session, in *SubmitReportInput) (*models.Report, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if len(in.Photos) == 0 || len(in.Photos) > maxReportPhotos {
		return nil, fmt.Errorf("%w: between 1 and %d photos are required", ErrValidation, maxReportPhotos)
	}
	if in.Lat == nil || in.Lng == nil {
		return nil, ErrLocationRequired
	}
	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, in.Priority)
	}

	urls, err := s.uploadAll(ctx, fmt.Sprintf("reports/%s", session.UserID), in.Photos)
	if err != nil {
		return nil, err
	}

	report := &models.Report{
		UserID:      session.UserID,
		Description: strings.TrimSpace(in.Description),
		ImageURLs:   urls,
		Lat:         *in.Lat,
		Lng:         *in.Lng,
		Priority:    priority,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		s.deleteAll(ctx, urls)
		return nil, err
	}

	metrics.ReportsSubmitted.Inc()
	cache.InvalidateRecap(ctx, report.CreatedAt.Year())
	if s.notifier != nil {
		s.notifier.ReportSubmitted(report)
	}
	log.Printf("[ReportService] Report %d submitted by %s (%d photos)", report.ID, session.UserID, len(urls))
	return report, nil
}

// List returns one page of reports, newest first. Citizens always get
// their own reports; admins may request all reports with status, month
// and distance filters.
func (s *ReportService) List(ctx context.Context, session models.Session, in *ListReportsInput) (*models.ReportPage, error) {
	pageSize := in.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	opts := repositories.ReportListOptions{Limit: pageSize}
	if !session.IsAdmin() {
		opts.OwnerID = session.UserID
	} else if in.Scope == models.ScopeOwn {
		opts.OwnerID = session.UserID
	}

	if session.IsAdmin() {
		opts.Status = in.Status
		if in.Year > 0 {
			var from, to time.Time
			if in.Month >= 1 && in.Month <= 12 {
				from, to = timeutil.MonthRange(in.Year, time.Month(in.Month))
			} else {
				from = timeutil.StartOfYear(in.Year)
				to = timeutil.EndOfYear(in.Year)
			}
			opts.From = &from
			opts.To = &to
		}
	}

	if in.Cursor != "" {
		after, afterID, err := decodeCursor(in.Cursor)
		if err != nil {
			return nil, err
		}
		opts.AfterCreatedAt = &after
		opts.AfterID = afterID
	}

	reports, err := s.reports.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	if session.IsAdmin() && in.RefLat != nil && in.RefLng != nil {
		for _, r := range reports {
			d := geo.DistanceMeters(*in.RefLat, *in.RefLng, r.Lat, r.Lng)
			r.DistanceMeters = &d
		}
	}

	page := &models.ReportPage{Reports: reports}
	if len(reports) == pageSize {
		last := reports[len(reports)-1]
		page.NextCursor = encodeCursor(last.CreatedAt, last.ID)
		page.HasMore = true
	}
	return page, nil
}

// Get returns a single report. Citizens can only read their own.
func (s *ReportService) Get(ctx context.Context, session models.Session, id int64) (*models.Report, error) {
	report, err := s.reports.Get(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if !session.IsAdmin() && report.UserID != session.UserID {
		return nil, ErrForbidden
	}
	return report, nil
}

// Resolve marks a pending report complete with admin feedback. A report
// transitions to complete exactly once.
func (s *ReportService) Resolve(ctx context.Context, session models.Session, id int64, feedback string, photos []PhotoUpload) (*models.Report, error) {
	if !session.IsAdmin() {
		return nil, ErrForbidden
	}
	if strings.TrimSpace(feedback) == "" {
		return nil, fmt.Errorf("%w: feedback description is required", ErrValidation)
	}
	if len(photos) > maxReportPhotos {
		return nil, fmt.Errorf("%w: at most %d feedback photos", ErrValidation, maxReportPhotos)
	}

	report, err := s.reports.Get(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if report.Status == models.StatusComplete {
		return nil, ErrAlreadyResolved
	}

	urls, err := s.uploadAll(ctx, fmt.Sprintf("feedback/%d", id), photos)
	if err != nil {
		return nil, err
	}

	resolved, err := s.reports.Resolve(ctx, id, session.UserID, strings.TrimSpace(feedback), urls, timeutil.Now())
	if err != nil {
		s.deleteAll(ctx, urls)
		return nil, err
	}
	if !resolved {
		// Lost the race with a concurrent resolve.
		s.deleteAll(ctx, urls)
		return nil, ErrAlreadyResolved
	}

	metrics.ReportsResolved.Inc()
	cache.InvalidateRecap(ctx, report.CreatedAt.Year())
	log.Printf("[ReportService] Report %d resolved by admin %s", id, session.UserID)
	return s.reports.Get(ctx, id)
}

// DeleteBulk removes a batch of reports. Missing IDs are skipped.
func (s *ReportService) DeleteBulk(ctx context.Context, session models.Session, ids []int64) (int64, error) {
	if !session.IsAdmin() {
		return 0, ErrForbidden
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: no report ids given", ErrValidation)
	}
	deleted, err := s.reports.DeleteBulk(ctx, ids)
	if err != nil {
		return 0, err
	}
	log.Printf("[ReportService] Admin %s deleted %d of %d reports", session.UserID, deleted, len(ids))
	return deleted, nil
}

func (s *ReportService) uploadAll(ctx context.Context, prefix string, photos []PhotoUpload) ([]string, error) {
	urls := make([]string, 0, len(photos))
	now := timeutil.Now().UnixNano()
	for i, p := range photos {
		name := fmt.Sprintf("%s/%d-%d%s", prefix, now, i, extensionFor(p.ContentType))
		url, err := s.uploader.Upload(ctx, p.Data, p.ContentType, name)
		if err != nil {
			s.deleteAll(ctx, urls)
			return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *ReportService) deleteAll(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := s.uploader.Delete(ctx, url); err != nil {
			log.Printf("[ReportService] Failed to clean up %s: %v", url, err)
		}
	}
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
