package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"staffly/internal/apperrors"
	"staffly/internal/data/entity"
	"staffly/internal/data/repository"
)

// stubUserRepo is an in-memory UserRepository with the same filter
// semantics as the SQL implementation.
type stubUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newStubUserRepo(users ...*entity.User) *stubUserRepo {
	repo := &stubUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (r *stubUserRepo) Create(_ context.Context, user *entity.User) error {
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return apperrors.ErrDuplicateEmail
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *stubUserRepo) List(_ context.Context, filter repository.UserFilter) ([]*entity.User, error) {
	var matched []*entity.User
	for _, user := range r.users {
		if matchesFilter(user, filter) {
			clone := *user
			matched = append(matched, &clone)
		}
	}

	sortUsers(matched, filter.OrderBy)

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (r *stubUserRepo) Count(_ context.Context, filter repository.UserFilter) (int64, error) {
	var n int64
	for _, user := range r.users {
		if matchesFilter(user, filter) {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return apperrors.ErrNotFound
	}
	for _, existing := range r.users {
		if existing.ID != user.ID && strings.EqualFold(existing.Email, user.Email) {
			return apperrors.ErrDuplicateEmail
		}
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) UpdateLastSeen(_ context.Context, id uuid.UUID, seenAt time.Time) error {
	user, ok := r.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	user.LastSeenAt = &seenAt
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func matchesFilter(user *entity.User, filter repository.UserFilter) bool {
	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		haystacks := []string{user.Email, user.FirstName, user.LastName, user.Department}
		found := false
		for _, h := range haystacks {
			if strings.Contains(strings.ToLower(h), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.Role != "" && user.Role != filter.Role {
		return false
	}
	if len(filter.Roles) > 0 {
		found := false
		for _, role := range filter.Roles {
			if user.Role == role {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	switch filter.Status {
	case repository.StatusActive:
		if !user.IsActive {
			return false
		}
	case repository.StatusInactive:
		if user.IsActive {
			return false
		}
	}
	if filter.Department != "" && user.Department != filter.Department {
		return false
	}
	if filter.ExcludeID != uuid.Nil && user.ID == filter.ExcludeID {
		return false
	}
	if !filter.JoinedAfter.IsZero() && user.DateJoined.Before(filter.JoinedAfter) {
		return false
	}
	if !filter.SeenAfter.IsZero() {
		if user.LastSeenAt == nil || user.LastSeenAt.Before(filter.SeenAfter) {
			return false
		}
	}
	return true
}

func sortUsers(users []*entity.User, orderBy string) {
	desc := strings.HasPrefix(orderBy, "-")
	key := strings.TrimPrefix(orderBy, "-")

	var less func(a, b *entity.User) bool
	switch key {
	case "email":
		less = func(a, b *entity.User) bool { return a.Email < b.Email }
	case "first_name":
		less = func(a, b *entity.User) bool { return a.FirstName < b.FirstName }
	case "last_name":
		less = func(a, b *entity.User) bool { return a.LastName < b.LastName }
	case "role":
		less = func(a, b *entity.User) bool { return a.Role < b.Role }
	case "date_joined":
		less = func(a, b *entity.User) bool { return a.DateJoined.Before(b.DateJoined) }
	default:
		// Unknown keys fall back to newest joined first.
		sort.SliceStable(users, func(i, j int) bool {
			return users[i].DateJoined.After(users[j].DateJoined)
		})
		return
	}

	sort.SliceStable(users, func(i, j int) bool {
		if desc {
			return less(users[j], users[i])
		}
		return less(users[i], users[j])
	})
}

// stubSessionRepo records sessions in memory.
type stubSessionRepo struct {
	sessions map[uuid.UUID]*entity.Session
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (r *stubSessionRepo) Create(_ context.Context, session *entity.Session) error {
	clone := *session
	r.sessions[session.Token] = &clone
	return nil
}

func (r *stubSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}
	session, ok := r.sessions[id]
	if !ok || session.RevokedAt != nil || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	clone := *session
	return &clone, nil
}

func (r *stubSessionRepo) Revoke(_ context.Context, token string) error {
	id, err := uuid.Parse(token)
	if err != nil {
		return apperrors.ErrNotFound
	}
	session, ok := r.sessions[id]
	if !ok || session.RevokedAt != nil {
		return apperrors.ErrNotFound
	}
	now := time.Now()
	session.RevokedAt = &now
	return nil
}

func (r *stubSessionRepo) RevokeOtherUserSessions(_ context.Context, userID uuid.UUID, keepToken string) error {
	now := time.Now()
	for _, session := range r.sessions {
		if session.UserID == userID && session.Token.String() != keepToken && session.RevokedAt == nil {
			revokedAt := now
			session.RevokedAt = &revokedAt
		}
	}
	return nil
}

func (r *stubSessionRepo) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	return r.RevokeOtherUserSessions(context.Background(), userID, "")
}

func (r *stubSessionRepo) CleanExpiredSessions(_ context.Context) error {
	return nil
}

// live returns the user's sessions that are neither revoked nor expired.
func (r *stubSessionRepo) live(userID uuid.UUID) []*entity.Session {
	var out []*entity.Session
	for _, session := range r.sessions {
		if session.UserID == userID && session.RevokedAt == nil && session.ExpiresAt.After(time.Now()) {
			out = append(out, session)
		}
	}
	return out
}
