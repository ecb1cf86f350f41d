package repositories

import (
	"context"

	"bersih-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AnnouncementRepository struct {
	DB *pgxpool.Pool
}

func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{DB: db}
}

func (r *AnnouncementRepository) Create(ctx context.Context, a *models.Announcement) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO announcements(title, body, created_by)
         VALUES($1, $2, $3)
         RETURNING id, created_at`,
		a.Title, a.Body, a.CreatedBy,
	).Scan(&a.ID, &a.CreatedAt)
}

// List returns all announcements, newest first
func (r *AnnouncementRepository) List(ctx context.Context) ([]*models.Announcement, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, title, body, created_by, created_at
         FROM announcements ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Announcement
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM announcements WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
