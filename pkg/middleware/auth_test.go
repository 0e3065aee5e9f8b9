package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"staffly/internal/authz"
	"staffly/internal/data/entity"
	"staffly/internal/data/repository"
	"staffly/pkg/utils"
)

// fakeSessionRepo resolves one known token.
type fakeSessionRepo struct {
	session *entity.Session
}

func (f *fakeSessionRepo) Create(context.Context, *entity.Session) error { return nil }

func (f *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	if f.session != nil && f.session.Token.String() == token {
		return f.session, nil
	}
	return nil, nil
}

func (f *fakeSessionRepo) Revoke(context.Context, string) error { return nil }
func (f *fakeSessionRepo) RevokeOtherUserSessions(context.Context, uuid.UUID, string) error {
	return nil
}
func (f *fakeSessionRepo) RevokeAllUserSessions(context.Context, uuid.UUID) error { return nil }
func (f *fakeSessionRepo) CleanExpiredSessions(context.Context) error             { return nil }

// fakeUserRepo serves one user and records last-seen writes.
type fakeUserRepo struct {
	user          *entity.User
	lastSeenCalls int
}

func (f *fakeUserRepo) Create(context.Context, *entity.User) error { return nil }

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) List(context.Context, repository.UserFilter) ([]*entity.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Count(context.Context, repository.UserFilter) (int64, error) { return 0, nil }
func (f *fakeUserRepo) Update(context.Context, *entity.User) error                  { return nil }

func (f *fakeUserRepo) UpdateLastSeen(_ context.Context, _ uuid.UUID, seenAt time.Time) error {
	f.lastSeenCalls++
	f.user.LastSeenAt = &seenAt
	return nil
}

func (f *fakeUserRepo) Delete(context.Context, uuid.UUID) error { return nil }

func middlewareConfig() *utils.Config {
	return &utils.Config{
		Session:  utils.SessionConfig{CookieName: "staffly_session"},
		Throttle: utils.ThrottleConfig{LastSeenWindowMinutes: 60},
	}
}

func liveFixture(role entity.Role) (*fakeSessionRepo, *fakeUserRepo, string) {
	user := &entity.User{
		ID:       uuid.New(),
		Email:    "user@example.com",
		Role:     role,
		IsActive: true,
	}
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     user.ID,
		Token:      uuid.New(),
		ExpiresAt:  time.Now().Add(time.Hour),
	}
	return &fakeSessionRepo{session: session}, &fakeUserRepo{user: user}, session.Token.String()
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var body utils.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestAuthenticateWithoutToken(t *testing.T) {
	sessions, users, _ := liveFixture(entity.RoleUser)
	var called bool
	handler := Authenticate(sessions, users, middlewareConfig(), zap.NewNop())(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/accounts/profile/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)

	body := decodeBody(t, rec)
	data := body.Data.(map[string]any)
	assert.Contains(t, data["login_url"], "/accounts/login/?next=")
	assert.Contains(t, data["login_url"], "%2Faccounts%2Fprofile%2F")
}

func TestAuthenticateCookieSession(t *testing.T) {
	sessions, users, token := liveFixture(entity.RoleUser)
	var called bool
	handler := Authenticate(sessions, users, middlewareConfig(), zap.NewNop())(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/accounts/profile/", nil)
	req.AddCookie(&http.Cookie{Name: "staffly_session", Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestAuthenticateBearerSession(t *testing.T) {
	sessions, users, token := liveFixture(entity.RoleUser)
	var gotID uuid.UUID
	var gotRole entity.Role
	handler := Authenticate(sessions, users, middlewareConfig(), zap.NewNop())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotID, _ = utils.GetUserIDFromContext(r.Context())
			gotRole, _ = utils.GetRoleFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest(http.MethodGet, "/accounts/profile/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, users.user.ID, gotID)
	assert.Equal(t, entity.RoleUser, gotRole)
}

func TestAuthenticateRejectsDeactivatedUser(t *testing.T) {
	sessions, users, token := liveFixture(entity.RoleUser)
	users.user.IsActive = false
	var called bool
	handler := Authenticate(sessions, users, middlewareConfig(), zap.NewNop())(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/accounts/profile/", nil)
	req.AddCookie(&http.Cookie{Name: "staffly_session", Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuthenticatePathPolicy(t *testing.T) {
	sessions, users, token := liveFixture(entity.RoleUser)
	var called bool
	handler := Authenticate(sessions, users, middlewareConfig(), zap.NewNop())(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/accounts/users/", nil)
	req.AddCookie(&http.Cookie{Name: "staffly_session", Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)

	body := decodeBody(t, rec)
	data := body.Data.(map[string]any)
	assert.Equal(t, "/dashboard/user/", data["redirect"])
}

func TestAuthenticateAdminPassesPathPolicy(t *testing.T) {
	sessions, users, token := liveFixture(entity.RoleAdmin)
	var called bool
	handler := Authenticate(sessions, users, middlewareConfig(), zap.NewNop())(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/accounts/users/", nil)
	req.AddCookie(&http.Cookie{Name: "staffly_session", Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestLastSeenThrottle(t *testing.T) {
	now := time.Now()

	t.Run("never seen writes", func(t *testing.T) {
		assert.True(t, shouldTouchLastSeen(nil, now, time.Hour))
	})

	t.Run("seen 10 minutes ago skips", func(t *testing.T) {
		seen := now.Add(-10 * time.Minute)
		assert.False(t, shouldTouchLastSeen(&seen, now, time.Hour))
	})

	t.Run("seen 61 minutes ago writes", func(t *testing.T) {
		seen := now.Add(-61 * time.Minute)
		assert.True(t, shouldTouchLastSeen(&seen, now, time.Hour))
	})
}

func TestAuthenticateTouchesLastSeenOnce(t *testing.T) {
	sessions, users, token := liveFixture(entity.RoleUser)
	var called bool
	handler := Authenticate(sessions, users, middlewareConfig(), zap.NewNop())(okHandler(&called))

	// Two requests inside the window produce exactly one write.
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/accounts/profile/", nil)
		req.AddCookie(&http.Cookie{Name: "staffly_session", Value: token})
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, 1, users.lastSeenCalls)
}

func TestRequireCapabilityDenies(t *testing.T) {
	var called bool
	handler := RequireCapability(authz.ManageUsers, zap.NewNop())(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/accounts/users/", nil)
	ctx := utils.SetUserContext(req.Context(), uuid.New(), entity.RoleStaff)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestRequireCapabilityAllows(t *testing.T) {
	var called bool
	handler := RequireCapability(authz.ManageUsers, zap.NewNop())(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/accounts/users/", nil)
	ctx := utils.SetUserContext(req.Context(), uuid.New(), entity.RoleAdmin)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestAnonymousOnlyRedirectsLiveSession(t *testing.T) {
	sessions, _, token := liveFixture(entity.RoleUser)
	var called bool
	handler := AnonymousOnly(sessions, middlewareConfig(), zap.NewNop())(okHandler(&called))

	req := httptest.NewRequest(http.MethodPost, "/accounts/login/", nil)
	req.AddCookie(&http.Cookie{Name: "staffly_session", Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard/", rec.Header().Get("Location"))
	assert.False(t, called)
}

func TestAnonymousOnlyPassesWithoutSession(t *testing.T) {
	var called bool
	handler := AnonymousOnly(&fakeSessionRepo{}, middlewareConfig(), zap.NewNop())(okHandler(&called))

	req := httptest.NewRequest(http.MethodPost, "/accounts/login/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}
