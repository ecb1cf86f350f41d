package repositories

import (
	"context"
	"fmt"
	"time"

	"bersih-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentinel display values when the owning account no longer exists
// (account rejected or deleted after the report was filed)
const (
	UnknownReporterName    = "Anonim"
	UnknownReporterAddress = "Alamat tidak diketahui"
)

// ReportListOptions narrows and pages a report listing. Cursor fields
// point at the last row of the previous page; rows strictly after it in
// (created_at DESC, id DESC) order are returned.
type ReportListOptions struct {
	OwnerID string // non-empty restricts to one owner's reports
	Status  *models.ReportStatus
	From    *time.Time // inclusive creation-time range
	To      *time.Time

	AfterCreatedAt *time.Time
	AfterID        int64

	Limit int
}

type ReportRepository struct {
	DB *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{DB: db}
}

func (r *ReportRepository) Create(ctx context.Context, rep *models.Report) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO reports(user_id, description, image_urls, lat, lng, priority, status)
         VALUES($1, $2, $3, $4, $5, $6, 'pending')
         RETURNING id, status, created_at`,
		rep.UserID, rep.Description, rep.ImageURLs, rep.Lat, rep.Lng, rep.Priority,
	).Scan(&rep.ID, &rep.Status, &rep.CreatedAt)
}

const reportColumns = `r.id, r.user_id, r.description, r.image_urls, r.lat, r.lng,
	 r.priority, r.status, r.created_at, r.resolved_at, r.feedback_by,
	 r.feedback_description, r.feedback_image_urls,
	 COALESCE(u.name, '` + UnknownReporterName + `'),
	 COALESCE(u.address, '` + UnknownReporterAddress + `')`

func (r *ReportRepository) Get(ctx context.Context, id int64) (*models.Report, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+reportColumns+`
         FROM reports r LEFT JOIN users u ON u.id = r.user_id
         WHERE r.id=$1`, id)
	return scanReport(row)
}

// List returns one page of reports ordered by (created_at DESC, id DESC).
// Owner display fields are resolved in the same query; deleted accounts
// fall back to the sentinel strings.
func (r *ReportRepository) List(ctx context.Context, opts ReportListOptions) ([]*models.Report, error) {
	query := `SELECT ` + reportColumns + `
         FROM reports r LEFT JOIN users u ON u.id = r.user_id`

	var args []interface{}
	var conds []string

	addCond := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if opts.OwnerID != "" {
		addCond("r.user_id = $%d", opts.OwnerID)
	}
	if opts.Status != nil {
		addCond("r.status = $%d", *opts.Status)
	}
	if opts.From != nil {
		addCond("r.created_at >= $%d", *opts.From)
	}
	if opts.To != nil {
		addCond("r.created_at <= $%d", *opts.To)
	}
	if opts.AfterCreatedAt != nil {
		// Keyset cursor: strictly after the last row of the prior page
		args = append(args, *opts.AfterCreatedAt, opts.AfterID)
		conds = append(conds, fmt.Sprintf("(r.created_at, r.id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	query += " ORDER BY r.created_at DESC, r.id DESC"
	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*models.Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

// Resolve performs the one-way pending→complete transition as a single
// conditional update. Concurrent attempts are serialized by the row
// update; only the first matches status='pending' and wins.
func (r *ReportRepository) Resolve(ctx context.Context, id int64, adminID, feedback string, feedbackPhotos []string, resolvedAt time.Time) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE reports
         SET status='complete', feedback_description=$1, feedback_by=$2,
             feedback_image_urls=$3, resolved_at=$4
         WHERE id=$5 AND status='pending'`,
		feedback, adminID, feedbackPhotos, resolvedAt, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListByYear returns every report created within the year, newest first,
// with owner display fields resolved. Feeds the yearly recap.
func (r *ReportRepository) ListByYear(ctx context.Context, from, to time.Time) ([]*models.Report, error) {
	f, t := from, to
	return r.List(ctx, ReportListOptions{From: &f, To: &t})
}

// DeleteBulk removes reports by id. Administrative escape hatch only.
func (r *ReportRepository) DeleteBulk(ctx context.Context, ids []int64) (int64, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM reports WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReport(row rowScanner) (*models.Report, error) {
	var rep models.Report
	err := row.Scan(&rep.ID, &rep.UserID, &rep.Description, &rep.ImageURLs,
		&rep.Lat, &rep.Lng, &rep.Priority, &rep.Status, &rep.CreatedAt,
		&rep.ResolvedAt, &rep.FeedbackBy, &rep.FeedbackDescription,
		&rep.FeedbackImageURLs, &rep.UserName, &rep.UserAddress)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}
