package repositories

import (
	"context"

	"bersih-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PasswordResetRepository struct {
	DB *pgxpool.Pool
}

func NewPasswordResetRepository(db *pgxpool.Pool) *PasswordResetRepository {
	return &PasswordResetRepository{DB: db}
}

// Upsert creates or replaces the reset ticket for an email. A fresh
// request always overwrites the previous ticket.
func (r *PasswordResetRepository) Upsert(ctx context.Context, t *models.PasswordReset) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO password_resets(email, code, expires_at, used)
         VALUES($1, $2, $3, false)
         ON CONFLICT (email) DO UPDATE
         SET code=EXCLUDED.code, expires_at=EXCLUDED.expires_at, used=false,
             created_at=NOW()
         RETURNING created_at`,
		t.Email, t.Code, t.ExpiresAt,
	).Scan(&t.CreatedAt)
}

func (r *PasswordResetRepository) Get(ctx context.Context, email string) (*models.PasswordReset, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT email, code, expires_at, used, created_at
         FROM password_resets WHERE email=$1`, email)

	var t models.PasswordReset
	err := row.Scan(&t.Email, &t.Code, &t.ExpiresAt, &t.Used, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// MarkUsed consumes the ticket; a used ticket never validates again
func (r *PasswordResetRepository) MarkUsed(ctx context.Context, email string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE password_resets SET used=true WHERE email=$1`, email)
	return err
}
