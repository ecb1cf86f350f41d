package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"bersih-backend/internal/auth"
	"bersih-backend/internal/cache"
	"bersih-backend/internal/models"
	"bersih-backend/internal/repositories"
	"bersih-backend/internal/timeutil"
)

const resetCodeTTL = 15 * time.Minute

// UserStore is the persistence surface the user service needs.
// *repositories.UserRepository satisfies it.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListCitizens(ctx context.Context) ([]*models.User, error)
	ListUnapproved(ctx context.Context) ([]*models.User, error)
	SetApproved(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	UpdatePasswordHashByEmail(ctx context.Context, email, hash string) error
}

// PasswordResetStore persists single-use reset tickets keyed by email.
type PasswordResetStore interface {
	Upsert(ctx context.Context, r *models.PasswordReset) error
	Get(ctx context.Context, email string) (*models.PasswordReset, error)
	MarkUsed(ctx context.Context, email string) error
}

type UserService struct {
	users  UserStore
	resets PasswordResetStore
	jwt    *auth.JWTManager
}

func NewUserService(users UserStore, resets PasswordResetStore, jwt *auth.JWTManager) *UserService {
	return &UserService{users: users, resets: resets, jwt: jwt}
}

// Register creates a citizen account. The account stays unusable until an
// admin approves it.
func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)
	if name == "" || email == "" || strings.TrimSpace(req.Address) == "" || strings.TrimSpace(req.Phone) == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if !auth.ValidPassword(req.Password) {
		return nil, ErrWeakPassword
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		Name:         name,
		Address:      strings.TrimSpace(req.Address),
		Phone:        strings.TrimSpace(req.Phone),
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleWarga,
		IsApproved:   false,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	log.Printf("[UserService] Registered citizen %s (%s), pending approval", u.ID, u.Email)
	return u, nil
}

// Login verifies credentials and issues a JWT. Unapproved citizens are
// rejected even with a correct password.
func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if _, ok := cache.GetCachedAuth(ctx, email, req.Password); !ok {
		if !auth.VerifyPassword(u.PasswordHash, req.Password) {
			return nil, ErrInvalidCredentials
		}
		cache.CacheAuth(ctx, email, req.Password, u.ID)
	}

	if u.Role == models.RoleWarga && !u.IsApproved {
		return nil, ErrPendingApproval
	}

	token, err := s.jwt.GenerateToken(u)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.AuthResponse{Token: token, User: u}, nil
}

// CreateCitizen lets an admin register a citizen directly. Accounts
// created this way skip the approval queue.
func (s *UserService) CreateCitizen(ctx context.Context, session models.Session, req *models.CreateUserRequest) (*models.User, error) {
	if !session.IsAdmin() {
		return nil, ErrForbidden
	}
	email := normalizeEmail(req.Email)
	if strings.TrimSpace(req.Name) == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrValidation)
	}
	if !auth.ValidPassword(req.Password) {
		return nil, ErrWeakPassword
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	u := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Address:      strings.TrimSpace(req.Address),
		Phone:        strings.TrimSpace(req.Phone),
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleWarga,
		IsApproved:   true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	log.Printf("[UserService] Admin %s created pre-approved citizen %s", session.UserID, u.ID)
	return u, nil
}

func (s *UserService) ListCitizens(ctx context.Context, session models.Session) ([]*models.User, error) {
	if !session.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.users.ListCitizens(ctx)
}

func (s *UserService) ListPending(ctx context.Context, session models.Session) ([]*models.User, error) {
	if !session.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.users.ListUnapproved(ctx)
}

// Approve marks a pending citizen account as usable. Approving an
// already approved account is a no-op.
func (s *UserService) Approve(ctx context.Context, session models.Session, id string) error {
	if !session.IsAdmin() {
		return ErrForbidden
	}
	found, err := s.users.SetApproved(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	log.Printf("[UserService] Admin %s approved citizen %s", session.UserID, id)
	return nil
}

// Delete removes a citizen account. Used both to reject pending
// registrations and to retire existing accounts.
func (s *UserService) Delete(ctx context.Context, session models.Session, id string) error {
	if !session.IsAdmin() {
		return ErrForbidden
	}
	u, err := s.users.Get(ctx, id)
	if err != nil {
		return ErrNotFound
	}
	found, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	cache.InvalidateAuth(ctx, u.Email)
	log.Printf("[UserService] Admin %s deleted user %s", session.UserID, id)
	return nil
}

func (s *UserService) ChangePassword(ctx context.Context, session models.Session, req *models.ChangePasswordRequest) error {
	u, err := s.users.Get(ctx, session.UserID)
	if err != nil {
		return ErrNotFound
	}
	if !auth.VerifyPassword(u.PasswordHash, req.OldPassword) {
		return ErrInvalidCredentials
	}
	if !auth.ValidPassword(req.NewPassword) {
		return ErrWeakPassword
	}
	if req.NewPassword != req.ConfirmPassword {
		return ErrPasswordMismatch
	}
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.UpdatePasswordHash(ctx, u.ID, hash); err != nil {
		return err
	}
	cache.InvalidateAuth(ctx, u.Email)
	return nil
}

// RequestPasswordReset issues a 6-digit single-use code valid for 15
// minutes. A repeat request replaces the previous code. The code is
// returned to the caller for in-app display.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) (*models.PasswordReset, error) {
	email = normalizeEmail(email)
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		return nil, ErrNotFound
	}

	code, err := generateResetCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reset code: %w", err)
	}
	reset := &models.PasswordReset{
		Email:     email,
		Code:      code,
		ExpiresAt: timeutil.Now().Add(resetCodeTTL),
		Used:      false,
	}
	if err := s.resets.Upsert(ctx, reset); err != nil {
		return nil, err
	}
	log.Printf("[UserService] Issued password reset code for %s", email)
	return reset, nil
}

// VerifyResetCode checks a code without consuming it, so the client can
// gate the new-password form.
func (s *UserService) VerifyResetCode(ctx context.Context, email, code string) error {
	reset, err := s.resets.Get(ctx, normalizeEmail(email))
	if err != nil {
		return ErrInvalidCode
	}
	if timeutil.Now().After(reset.ExpiresAt) {
		return ErrCodeExpired
	}
	if reset.Used {
		return ErrCodeUsed
	}
	if reset.Code != code {
		return ErrInvalidCode
	}
	return nil
}

// CompletePasswordReset re-verifies the code, stores the new password
// hash and burns the code.
func (s *UserService) CompletePasswordReset(ctx context.Context, req *models.ResetPasswordRequest) error {
	email := normalizeEmail(req.Email)
	if err := s.VerifyResetCode(ctx, email, req.Code); err != nil {
		return err
	}
	if !auth.ValidPassword(req.NewPassword) {
		return ErrWeakPassword
	}
	if req.NewPassword != req.ConfirmPassword {
		return ErrPasswordMismatch
	}
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.UpdatePasswordHashByEmail(ctx, email, hash); err != nil {
		return err
	}
	if err := s.resets.MarkUsed(ctx, email); err != nil {
		return err
	}
	cache.InvalidateAuth(ctx, email)
	log.Printf("[UserService] Password reset completed for %s", email)
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
