package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/ownitpro/omgsystems/internal/ctxkeys"
	"github.com/ownitpro/omgsystems/internal/service"
)

// RequirePortal authenticates portal API requests with the session token
// from the auth endpoint. The token's portal must match the portal in the
// URL; a valid token never grants access to another portal's routes.
func RequirePortal(auth *service.PortalAuthService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeAuthError(w, http.StatusUnauthorized, "Missing portal token")
				return
			}

			session, err := auth.ParseToken(token)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "Invalid portal token")
				return
			}

			portalID := r.PathValue("portalId")
			if portalID != "" && portalID != session.PortalID {
				slog.Warn("portal token used on wrong portal",
					"token_portal", session.PortalID, "path_portal", portalID)
				writeAuthError(w, http.StatusForbidden, "Unauthorized")
				return
			}

			ctx := ctxkeys.WithPortalSession(r.Context(), session)
			next(w, r.WithContext(ctx))
		}
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"ok":false,"error":"` + message + `"}`))
}
