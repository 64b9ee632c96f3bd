package auth

import (
	"log/slog"
	"net/http"

	"github.com/commerceops/backoffice/internal/rbac"
)

// Authorization gates HTTP handlers on the static role tables. It is the
// server-side counterpart of the route guard: 401 without a principal, 403
// without the tag.
type Authorization struct {
	logger *slog.Logger
}

func NewAuthorization(logger *slog.Logger) *Authorization {
	return &Authorization{logger: logger}
}

func (a *Authorization) Check(next http.HandlerFunc, tag rbac.Permission) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || user == nil {
			a.logger.Warn("authorization check failed: user not found in context")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if !user.HasPermission(tag) {
			a.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
				"user_id", user.ID,
				"role", string(user.Role),
				"required_permission", string(tag))
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	}
}

// Require builds a chi-compatible middleware enforcing one permission tag.
func (a *Authorization) Require(tag rbac.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return a.Check(next.ServeHTTP, tag)
	}
}
