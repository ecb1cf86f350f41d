package repositories

import (
	"context"
	"errors"
	"fmt"

	"bersih-backend/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateEmail is returned by Create when the email unique
// constraint fires. The pre-insert lookup in the service layer cannot
// catch two concurrent registrations, so the constraint is the
// authority.
var ErrDuplicateEmail = errors.New("email already registered")

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

// Create allocates the next sequential account id and inserts the account
// in one transaction. The counter row update takes a row lock, so two
// concurrent registrations can never receive the same id.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var count int
	err = tx.QueryRow(ctx,
		`UPDATE counters SET count = count + 1 WHERE name = 'users' RETURNING count`,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to increment user counter: %w", err)
	}

	// Zero-padded 3-digit id (001, 002, ...)
	u.ID = fmt.Sprintf("%03d", count)

	err = tx.QueryRow(ctx,
		`INSERT INTO users(id, name, address, phone, email, password_hash, role, is_approved)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING created_at`,
		u.ID, u.Name, u.Address, u.Phone, u.Email, u.PasswordHash, u.Role, u.IsApproved,
	).Scan(&u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}

	return tx.Commit(ctx)
}

func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, address, phone, email, password_hash, role, is_approved, created_at
         FROM users WHERE id=$1`, id)

	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Address, &user.Phone, &user.Email,
		&user.PasswordHash, &user.Role, &user.IsApproved, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, address, phone, email, password_hash, role, is_approved, created_at
         FROM users WHERE email=$1`, email)

	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Address, &user.Phone, &user.Email,
		&user.PasswordHash, &user.Role, &user.IsApproved, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListCitizens returns all warga accounts, newest first
func (r *UserRepository) ListCitizens(ctx context.Context) ([]*models.User, error) {
	return r.list(ctx,
		`SELECT id, name, address, phone, email, role, is_approved, created_at
         FROM users WHERE role='warga' ORDER BY created_at DESC`)
}

// ListUnapproved returns warga accounts waiting for admin approval
func (r *UserRepository) ListUnapproved(ctx context.Context) ([]*models.User, error) {
	return r.list(ctx,
		`SELECT id, name, address, phone, email, role, is_approved, created_at
         FROM users WHERE role='warga' AND is_approved=false ORDER BY created_at DESC`)
}

func (r *UserRepository) list(ctx context.Context, query string) ([]*models.User, error) {
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		err := rows.Scan(&user.ID, &user.Name, &user.Address, &user.Phone, &user.Email,
			&user.Role, &user.IsApproved, &user.CreatedAt)
		if err != nil {
			return nil, err
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

// SetApproved flips the approval flag. Idempotent if already approved.
func (r *UserRepository) SetApproved(ctx context.Context, id string) (bool, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE users SET is_approved=true WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes an account outright (account rejection)
func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UpdatePasswordHash replaces the stored credential for an account
func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id, passwordHash string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET password_hash=$1 WHERE id=$2`, passwordHash, id)
	return err
}

// UpdatePasswordHashByEmail replaces the credential keyed by email
// (password-reset completion path)
func (r *UserRepository) UpdatePasswordHashByEmail(ctx context.Context, email, passwordHash string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE users SET password_hash=$1 WHERE email=$2`, passwordHash, email)
	return err
}
