package repositories

import (
	"context"

	"bersih-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type LoginLogRepository struct {
	DB *pgxpool.Pool
}

func NewLoginLogRepository(db *pgxpool.Pool) *LoginLogRepository {
	return &LoginLogRepository{DB: db}
}

func (r *LoginLogRepository) Create(ctx context.Context, userID, ipAddress, userAgent string) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO login_logs(user_id, ip_address, user_agent)
         VALUES($1, $2, $3)`,
		userID, ipAddress, userAgent)
	return err
}

// List returns the most recent login records for the admin audit view
func (r *LoginLogRepository) List(ctx context.Context, limit int) ([]*models.LoginLog, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.Query(ctx,
		`SELECT id, user_id, ip_address, user_agent, login_at
         FROM login_logs ORDER BY login_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []*models.LoginLog
	for rows.Next() {
		var l models.LoginLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.IPAddress, &l.UserAgent, &l.LoginAt); err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
