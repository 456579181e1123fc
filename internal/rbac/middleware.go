package rbac

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/rapidsphere/fleet-erp/internal/auth"
	"github.com/rapidsphere/fleet-erp/internal/platform/httpx"
)

// LoginPath is where unauthenticated browsers are sent.
const LoginPath = "/auth/login"

// Middleware wires access checks for HTTP handlers.
type Middleware struct {
	Logger *slog.Logger
}

// Require lets the request through when the current identity satisfies roles.
// Logged-out browsers are redirected to the login page and API clients get 401;
// an insufficient role gets 403.
func (m Middleware) Require(roles ...auth.Role) func(http.Handler) http.Handler {
	required := append([]auth.Role(nil), roles...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := auth.CurrentIdentity(r.Context())
			if !ok {
				if wantsJSON(r) {
					httpx.RespondError(w, httpx.ErrUnauthorized)
					return
				}
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			if Permits(&identity, required...) {
				next.ServeHTTP(w, r)
				return
			}
			if m.Logger != nil {
				m.Logger.Info("access denied",
					slog.String("path", r.URL.Path),
					slog.String("username", identity.Username),
					slog.String("role", identity.Role.String()))
			}
			if wantsJSON(r) {
				httpx.RespondError(w, httpx.ErrForbidden)
				return
			}
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}
}

// RequireDestination guards a handler with the role set registered for path.
func (m Middleware) RequireDestination(path string) func(http.Handler) http.Handler {
	return m.Require(RolesFor(path)...)
}

func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
