package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/xhrissun/rhrmpsb-system-sub000/internal/models"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/repository"
)

// RBACMiddleware gates routes on the stored user type of the caller
type RBACMiddleware struct {
	userRepo repository.UserStore
}

// NewRBACMiddleware creates a new RBAC middleware
func NewRBACMiddleware(userRepo repository.UserStore) *RBACMiddleware {
	return &RBACMiddleware{userRepo: userRepo}
}

// RequireUserType loads the authenticated user and checks that their user
// type is one of userTypes. The loaded user is stored in the request context.
func (m *RBACMiddleware) RequireUserType(userTypes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r)
			if !ok {
				respondWithError(w, http.StatusUnauthorized, "User not authenticated")
				return
			}

			user, err := m.userRepo.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					respondWithError(w, http.StatusUnauthorized, "User no longer exists")
					return
				}
				slog.Error("Failed to load user for authorization", "user_id", userID, "error", err)
				respondWithError(w, http.StatusInternalServerError, "Failed to check permissions")
				return
			}

			allowed := len(userTypes) == 0
			for _, t := range userTypes {
				if user.UserType == t {
					allowed = true
					break
				}
			}
			if !allowed {
				slog.Warn("Access denied",
					"user_id", userID,
					"user_type", user.UserType,
					"required", userTypes,
					"path", r.URL.Path,
				)
				respondWithError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin is shorthand for RequireUserType(models.UserTypeAdmin)
func (m *RBACMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireUserType(models.UserTypeAdmin)(next)
}

// GetUser retrieves the user loaded by RequireUserType
func GetUser(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(UserKey).(*models.User)
	return user, ok && user != nil
}
