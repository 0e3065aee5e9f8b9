package middleware

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"staffly/internal/authz"
	"staffly/internal/data/repository"
	"staffly/pkg/utils"
)

// sessionToken extracts the session token from the session cookie or, for
// API clients, from a Bearer Authorization header.
func sessionToken(r *http.Request, cookieName string) string {
	if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
		return c.Value
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func loginRequired(w http.ResponseWriter, r *http.Request) {
	utils.ResponseLoginRequired(w, url.QueryEscape(r.URL.Path))
}

// shouldTouchLastSeen decides whether the last-seen timestamp needs a write:
// only when it is absent or older than the window. Keeps authenticated
// traffic from writing the users row on every request.
func shouldTouchLastSeen(lastSeen *time.Time, now time.Time, window time.Duration) bool {
	if lastSeen == nil {
		return true
	}
	return now.Sub(*lastSeen) > window
}

// Authenticate resolves the session token to an active user, applies the
// last-seen throttle and stores identity in the request context. It then
// enforces the coarse path-prefix layer of the access policy; per-route
// requirements are layered on with RequireCapability. Both consult the same
// policy table in the authz package.
func Authenticate(
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	config *utils.Config,
	logger *zap.Logger,
) func(http.Handler) http.Handler {
	window := time.Duration(config.Throttle.LastSeenWindowMinutes) * time.Minute

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r, config.Session.CookieName)
			if token == "" {
				loginRequired(w, r)
				return
			}

			session, err := sessionRepo.FindValidSession(r.Context(), token)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if session == nil {
				logger.Warn("Invalid or expired session", zap.String("path", r.URL.Path))
				loginRequired(w, r)
				return
			}

			user, err := userRepo.FindByID(r.Context(), session.UserID)
			if err != nil {
				logger.Error("Failed to load session user",
					zap.Error(err), zap.String("user_id", session.UserID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil || !user.IsActive {
				logger.Warn("Session for missing or deactivated user",
					zap.String("user_id", session.UserID.String()))
				loginRequired(w, r)
				return
			}

			now := time.Now()
			if shouldTouchLastSeen(user.LastSeenAt, now, window) {
				// Best effort; a failed write must not fail the request.
				if err := userRepo.UpdateLastSeen(r.Context(), user.ID, now); err != nil {
					logger.Warn("Failed to update last seen",
						zap.Error(err), zap.String("user_id", user.ID.String()))
				}
			}

			// Coarse path-prefix enforcement, same policy table as the
			// per-route guard.
			if capability, ok := authz.CapabilityForPath(r.URL.Path); ok {
				if !authz.Allows(capability, user.Role) {
					logger.Warn("Path policy denied request",
						zap.String("user_id", user.ID.String()),
						zap.String("role", string(user.Role)),
						zap.String("path", r.URL.Path),
					)
					utils.ResponseDenied(w, "You do not have permission to access this page.",
						authz.DashboardPath(user.Role))
					return
				}
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, user.Role)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireCapability guards a route subtree with one named capability from
// the shared policy table.
func RequireCapability(capability authz.Capability, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := utils.GetRoleFromContext(r.Context())
			if !ok {
				loginRequired(w, r)
				return
			}

			if !authz.Allows(capability, role) {
				logger.Warn("Capability check denied request",
					zap.String("capability", string(capability)),
					zap.String("role", string(role)),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseDenied(w, "You do not have permission to access this page.",
					authz.DashboardPath(role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AnonymousOnly keeps authenticated users away from the login flow; a caller
// with a live session is redirected to the role router.
func AnonymousOnly(
	sessionRepo repository.SessionRepository,
	config *utils.Config,
	logger *zap.Logger,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r, config.Session.CookieName)
			if token != "" {
				session, err := sessionRepo.FindValidSession(r.Context(), token)
				if err != nil {
					logger.Error("Failed to validate session", zap.Error(err))
					utils.ResponseInternalError(w, "Internal server error")
					return
				}
				if session != nil {
					http.Redirect(w, r, "/dashboard/", http.StatusSeeOther)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
