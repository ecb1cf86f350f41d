package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"bersih-backend/internal/auth"
	"bersih-backend/internal/config"
	"bersih-backend/internal/models"
)

func newTestUserService() (*UserService, *fakeUserStore, *fakeResetStore) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "bersih-backend"

	users := newFakeUserStore()
	resets := newFakeResetStore()
	return NewUserService(users, resets, auth.NewJWTManager(cfg)), users, resets
}

func validRegistration(email string) *models.RegisterRequest {
	return &models.RegisterRequest{
		Name:            "Budi Santoso",
		Address:         "Jl. Merdeka 1",
		Phone:           "081234567890",
		Email:           email,
		Password:        "Warga123",
		ConfirmPassword: "Warga123",
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*models.RegisterRequest)
		wantErr error
	}{
		{"weak password", func(r *models.RegisterRequest) {
			r.Password, r.ConfirmPassword = "abc", "abc"
		}, ErrWeakPassword},
		{"no digit", func(r *models.RegisterRequest) {
			r.Password, r.ConfirmPassword = "Wargawarga", "Wargawarga"
		}, ErrWeakPassword},
		{"mismatch", func(r *models.RegisterRequest) {
			r.ConfirmPassword = "Warga124"
		}, ErrPasswordMismatch},
		{"missing name", func(r *models.RegisterRequest) {
			r.Name = "  "
		}, ErrValidation},
		{"missing address", func(r *models.RegisterRequest) {
			r.Address = ""
		}, ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegistration("budi@example.com")
			tt.mutate(req)
			if _, err := svc.Register(ctx, req); !errors.Is(err, tt.wantErr) {
				t.Errorf("Register error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterAssignsSequentialIDs(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()

	first, err := svc.Register(ctx, validRegistration("a@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	second, err := svc.Register(ctx, validRegistration("b@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	idPattern := regexp.MustCompile(`^\d{3}$`)
	for _, u := range []*models.User{first, second} {
		if !idPattern.MatchString(u.ID) {
			t.Errorf("user ID %q is not a zero-padded 3-digit number", u.ID)
		}
	}
	if first.ID == second.ID {
		t.Errorf("duplicate user IDs: %q", first.ID)
	}
	if first.IsApproved || second.IsApproved {
		t.Error("self-registered citizens must not be pre-approved")
	}
	if first.PasswordHash == "Warga123" {
		t.Error("password stored in plaintext")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegistration("budi@example.com")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, validRegistration("BUDI@example.com")); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("duplicate register error = %v, want ErrDuplicateEmail", err)
	}
}

// blindUserStore never finds users by email, so the duplicate check
// before the insert passes and the unique constraint decides. Models
// two registrations racing past the pre-check.
type blindUserStore struct {
	*fakeUserStore
}

func (s *blindUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, errFakeNotFound
}

func TestRegisterDuplicateEmailRace(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "bersih-backend"

	store := &blindUserStore{fakeUserStore: newFakeUserStore()}
	svc := NewUserService(store, newFakeResetStore(), auth.NewJWTManager(cfg))
	ctx := context.Background()

	if _, err := svc.Register(ctx, validRegistration("budi@example.com")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, validRegistration("budi@example.com")); !errors.Is(err, ErrDuplicateEmail) {
		t.Errorf("racing register error = %v, want ErrDuplicateEmail", err)
	}
}

func TestLogin(t *testing.T) {
	svc, users, _ := newTestUserService()
	ctx := context.Background()

	user, err := svc.Register(ctx, validRegistration("budi@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, &models.LoginRequest{Email: "ghost@example.com", Password: "Warga123"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &models.LoginRequest{Email: "budi@example.com", Password: "Warga124"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("pending approval", func(t *testing.T) {
		_, err := svc.Login(ctx, &models.LoginRequest{Email: "budi@example.com", Password: "Warga123"})
		if !errors.Is(err, ErrPendingApproval) {
			t.Errorf("error = %v, want ErrPendingApproval", err)
		}
	})

	t.Run("approved login succeeds", func(t *testing.T) {
		if _, err := users.SetApproved(ctx, user.ID); err != nil {
			t.Fatalf("SetApproved: %v", err)
		}
		resp, err := svc.Login(ctx, &models.LoginRequest{Email: "budi@example.com", Password: "Warga123"})
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		if resp.Token == "" {
			t.Error("login response missing token")
		}
		if resp.User.ID != user.ID {
			t.Errorf("login returned user %q, want %q", resp.User.ID, user.ID)
		}
	})
}

func TestApprovalQueue(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()
	admin := models.Session{UserID: "000", Role: models.RoleAdmin}
	warga := models.Session{UserID: "001", Role: models.RoleWarga}

	user, err := svc.Register(ctx, validRegistration("budi@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.Approve(ctx, warga, user.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("citizen approve error = %v, want ErrForbidden", err)
	}
	if err := svc.Approve(ctx, admin, "999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("approve unknown error = %v, want ErrNotFound", err)
	}

	pending, err := svc.ListPending(ctx, admin)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != user.ID {
		t.Fatalf("pending = %v, want just %s", pending, user.ID)
	}

	if err := svc.Approve(ctx, admin, user.ID); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	pending, err = svc.ListPending(ctx, admin)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending after approval = %d entries, want 0", len(pending))
	}

	// Rejecting removes the account entirely.
	rejected, err := svc.Register(ctx, validRegistration("siti@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.Delete(ctx, admin, rejected.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Login(ctx, &models.LoginRequest{Email: "siti@example.com", Password: "Warga123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("login after rejection error = %v, want ErrInvalidCredentials", err)
	}
}

func TestCreateCitizenPreApproved(t *testing.T) {
	svc, _, _ := newTestUserService()
	ctx := context.Background()
	admin := models.Session{UserID: "000", Role: models.RoleAdmin}

	user, err := svc.CreateCitizen(ctx, admin, &models.CreateUserRequest{
		Name:     "Siti Aminah",
		Address:  "Jl. Melati 5",
		Phone:    "081200000000",
		Email:    "siti@example.com",
		Password: "Warga123",
	})
	if err != nil {
		t.Fatalf("CreateCitizen: %v", err)
	}
	if !user.IsApproved {
		t.Error("admin-created citizen should skip the approval queue")
	}

	if _, err := svc.Login(ctx, &models.LoginRequest{Email: "siti@example.com", Password: "Warga123"}); err != nil {
		t.Errorf("admin-created citizen cannot log in: %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, users, _ := newTestUserService()
	ctx := context.Background()

	user, err := svc.Register(ctx, validRegistration("budi@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	users.SetApproved(ctx, user.ID)
	session := models.Session{UserID: user.ID, Email: user.Email, Role: models.RoleWarga, IsApproved: true}

	tests := []struct {
		name    string
		req     models.ChangePasswordRequest
		wantErr error
	}{
		{"wrong old password", models.ChangePasswordRequest{OldPassword: "Nope123", NewPassword: "Warga456", ConfirmPassword: "Warga456"}, ErrInvalidCredentials},
		{"weak new password", models.ChangePasswordRequest{OldPassword: "Warga123", NewPassword: "abc", ConfirmPassword: "abc"}, ErrWeakPassword},
		{"confirm mismatch", models.ChangePasswordRequest{OldPassword: "Warga123", NewPassword: "Warga456", ConfirmPassword: "Warga457"}, ErrPasswordMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.ChangePassword(ctx, session, &tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if err := svc.ChangePassword(ctx, session, &models.ChangePasswordRequest{
		OldPassword: "Warga123", NewPassword: "Warga456", ConfirmPassword: "Warga456",
	}); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if _, err := svc.Login(ctx, &models.LoginRequest{Email: "budi@example.com", Password: "Warga123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("old password still accepted after change")
	}
	if _, err := svc.Login(ctx, &models.LoginRequest{Email: "budi@example.com", Password: "Warga456"}); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc, users, resets := newTestUserService()
	ctx := context.Background()

	user, err := svc.Register(ctx, validRegistration("budi@example.com"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	users.SetApproved(ctx, user.ID)

	if _, err := svc.RequestPasswordReset(ctx, "ghost@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("reset for unknown email error = %v, want ErrNotFound", err)
	}

	reset, err := svc.RequestPasswordReset(ctx, "budi@example.com")
	if err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	if !regexp.MustCompile(`^\d{6}$`).MatchString(reset.Code) {
		t.Fatalf("code %q is not a 6-digit number", reset.Code)
	}

	if err := svc.VerifyResetCode(ctx, "budi@example.com", "000000"); !errors.Is(err, ErrInvalidCode) && reset.Code != "000000" {
		t.Errorf("wrong code error = %v, want ErrInvalidCode", err)
	}
	if err := svc.VerifyResetCode(ctx, "budi@example.com", reset.Code); err != nil {
		t.Fatalf("VerifyResetCode: %v", err)
	}

	t.Run("expired code", func(t *testing.T) {
		stored, _ := resets.Get(ctx, "budi@example.com")
		stored.ExpiresAt = time.Now().Add(-time.Minute)
		if err := svc.VerifyResetCode(ctx, "budi@example.com", reset.Code); !errors.Is(err, ErrCodeExpired) {
			t.Errorf("error = %v, want ErrCodeExpired", err)
		}
		stored.ExpiresAt = time.Now().Add(15 * time.Minute)
	})

	t.Run("complete reset", func(t *testing.T) {
		req := &models.ResetPasswordRequest{
			Email:           "budi@example.com",
			Code:            reset.Code,
			NewPassword:     "Warga789",
			ConfirmPassword: "Warga789",
		}
		if err := svc.CompletePasswordReset(ctx, req); err != nil {
			t.Fatalf("CompletePasswordReset: %v", err)
		}
		if _, err := svc.Login(ctx, &models.LoginRequest{Email: "budi@example.com", Password: "Warga789"}); err != nil {
			t.Errorf("login with new password: %v", err)
		}

		// The code is single-use.
		if err := svc.CompletePasswordReset(ctx, req); !errors.Is(err, ErrCodeUsed) {
			t.Errorf("second reset error = %v, want ErrCodeUsed", err)
		}
	})

	t.Run("new request replaces code", func(t *testing.T) {
		fresh, err := svc.RequestPasswordReset(ctx, "budi@example.com")
		if err != nil {
			t.Fatalf("RequestPasswordReset: %v", err)
		}
		if fresh.Used {
			t.Error("replacement code should not start used")
		}
		if err := svc.VerifyResetCode(ctx, "budi@example.com", fresh.Code); err != nil {
			t.Errorf("VerifyResetCode on replacement: %v", err)
		}
	})
}
