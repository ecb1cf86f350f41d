package middleware

import (
	"context"
	"net/http"
	"strings"

	"bersih-backend/internal/auth"
	"bersih-backend/internal/models"
	"bersih-backend/internal/repositories"
)

type contextKey string

const SessionKey contextKey = "session"

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	userRepo   *repositories.UserRepository
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, userRepo *repositories.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		userRepo:   userRepo,
	}
}

// Authenticate validates the bearer token and loads the current account
// state from the database, so approval revocation and deletion take
// effect immediately rather than at token expiry.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := m.authenticate(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), session)))
	})
}

// RequireRole authenticates and then checks the account's current role.
func (m *AuthMiddleware) RequireRole(allowedRoles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := m.authenticate(w, r)
			if !ok {
				return
			}
			hasRole := false
			for _, role := range allowedRoles {
				if session.Role == role {
					hasRole = true
					break
				}
			}
			if !hasRole {
				http.Error(w, "Forbidden: Insufficient permissions", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), session)))
		})
	}
}

// RequireAdmin ensures the account has the admin role.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireRole(models.RoleAdmin)(next)
}

func (m *AuthMiddleware) authenticate(w http.ResponseWriter, r *http.Request) (models.Session, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		http.Error(w, "Authorization header required", http.StatusUnauthorized)
		return models.Session{}, false
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		http.Error(w, "Invalid authorization format", http.StatusUnauthorized)
		return models.Session{}, false
	}

	claims, err := m.jwtManager.ValidateToken(parts[1])
	if err != nil {
		http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
		return models.Session{}, false
	}

	user, err := m.userRepo.Get(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "User not found", http.StatusUnauthorized)
		return models.Session{}, false
	}

	if user.Role == models.RoleWarga && !user.IsApproved {
		http.Error(w, "Account is waiting for admin approval", http.StatusForbidden)
		return models.Session{}, false
	}

	return models.Session{
		UserID:     user.ID,
		Email:      user.Email,
		Role:       user.Role,
		IsApproved: user.IsApproved,
	}, true
}

func withSession(ctx context.Context, session models.Session) context.Context {
	return context.WithValue(ctx, SessionKey, session)
}

// GetSessionFromContext extracts the authenticated session from a
// request context.
func GetSessionFromContext(ctx context.Context) (models.Session, bool) {
	session, ok := ctx.Value(SessionKey).(models.Session)
	return session, ok
}
