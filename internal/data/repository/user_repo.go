package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"staffly/internal/apperrors"
	"staffly/internal/data/entity"
	"staffly/pkg/database"
)

// UserFilter narrows directory and dashboard queries. Zero-value fields are
// no-ops, so any combination of absent filters is valid.
type UserFilter struct {
	// Search matches email, first name, last name or department as a
	// case-insensitive substring.
	Search string
	// Role filters on an exact role value.
	Role entity.Role
	// Roles filters on membership in a role set.
	Roles []entity.Role
	// Status is "", "active" or "inactive".
	Status string
	// Department filters on an exact department value.
	Department string
	// ExcludeID drops one user from the result set.
	ExcludeID uuid.UUID
	// JoinedAfter keeps users whose date_joined is at or after the instant.
	JoinedAfter time.Time
	// SeenAfter keeps users whose last_seen_at is at or after the instant.
	SeenAfter time.Time
	// OrderBy is a whitelisted sort key, optionally prefixed with "-" for
	// descending. Unknown keys fall back to newest-joined-first.
	OrderBy string
	Limit   int
	Offset  int
}

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, filter UserFilter) ([]*entity.User, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateLastSeen(ctx context.Context, id uuid.UUID, seenAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserRepository(db database.PgxIface, log *zap.Logger) UserRepository {
	return &userRepository{
		db:  db,
		log: log.With(zap.String("repository", "user")),
	}
}

var userColumns = []string{
	"id", "email", "password", "first_name", "last_name", "role",
	"is_active", "is_staff", "is_superuser",
	"phone", "department", "job_title", "bio", "avatar_path",
	"date_joined", "last_seen_at", "updated_at",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// sortColumns whitelists directory sort keys.
var sortColumns = map[string]string{
	"date_joined": "date_joined",
	"email":       "email",
	"first_name":  "first_name",
	"last_name":   "last_name",
	"role":        "role",
}

func orderClause(key string) string {
	desc := false
	if strings.HasPrefix(key, "-") {
		desc = true
		key = key[1:]
	}

	column, ok := sortColumns[key]
	if !ok {
		return "date_joined DESC, id"
	}
	if desc {
		return column + " DESC, id"
	}
	return column + ", id"
}

func (f UserFilter) apply(b sq.SelectBuilder) sq.SelectBuilder {
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		b = b.Where(sq.Or{
			sq.ILike{"email": pattern},
			sq.ILike{"first_name": pattern},
			sq.ILike{"last_name": pattern},
			sq.ILike{"department": pattern},
		})
	}
	if f.Role != "" {
		b = b.Where(sq.Eq{"role": f.Role})
	}
	if len(f.Roles) > 0 {
		b = b.Where(sq.Eq{"role": f.Roles})
	}
	switch f.Status {
	case StatusActive:
		b = b.Where(sq.Eq{"is_active": true})
	case StatusInactive:
		b = b.Where(sq.Eq{"is_active": false})
	}
	if f.Department != "" {
		b = b.Where(sq.Eq{"department": f.Department})
	}
	if f.ExcludeID != uuid.Nil {
		b = b.Where(sq.NotEq{"id": f.ExcludeID})
	}
	if !f.JoinedAfter.IsZero() {
		b = b.Where(sq.GtOrEq{"date_joined": f.JoinedAfter})
	}
	if !f.SeenAfter.IsZero() {
		b = b.Where(sq.GtOrEq{"last_seen_at": f.SeenAfter})
	}
	return b
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&user.IsActive,
		&user.IsStaff,
		&user.IsSuperuser,
		&user.Phone,
		&user.Department,
		&user.JobTitle,
		&user.Bio,
		&user.AvatarPath,
		&user.DateJoined,
		&user.LastSeenAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// isUniqueViolation reports whether err is the users.email unique constraint.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (ur *userRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password, first_name, last_name, role,
		                   is_active, is_staff, is_superuser,
		                   phone, department, job_title, bio, avatar_path,
		                   date_joined, last_seen_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`

	_, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Role,
		user.IsActive,
		user.IsStaff,
		user.IsSuperuser,
		user.Phone,
		user.Department,
		user.JobTitle,
		user.Bio,
		user.AvatarPath,
		user.DateJoined,
		user.LastSeenAt,
		user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			ur.log.Warn("Duplicate email on create", zap.String("email", user.Email))
			return apperrors.ErrDuplicateEmail
		}
		ur.log.Error("Failed to create user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return fmt.Errorf("create user %s: %w", user.Email, err)
	}

	return nil
}

func (ur *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query, args, err := psql.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find-by-id query: %w", err)
	}

	user, err := scanUser(ur.db.QueryRow(ctx, query, args...))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by ID",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return nil, fmt.Errorf("find user by ID %s: %w", id.String(), err)
	}

	return user, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query, args, err := psql.
		Select(userColumns...).
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find-by-email query: %w", err)
	}

	user, err := scanUser(ur.db.QueryRow(ctx, query, args...))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

// List retrieves users matching the filter, ordered and paginated.
func (ur *userRepository) List(ctx context.Context, filter UserFilter) ([]*entity.User, error) {
	b := filter.apply(psql.Select(userColumns...).From("users")).
		OrderBy(orderClause(filter.OrderBy))
	if filter.Limit > 0 {
		b = b.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		b = b.Offset(uint64(filter.Offset))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := ur.db.Query(ctx, query, args...)
	if err != nil {
		ur.log.Error("Failed to list users", zap.Error(err), zap.String("query", query))
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}

// Count returns the number of users matching the filter, ignoring paging.
func (ur *userRepository) Count(ctx context.Context, filter UserFilter) (int64, error) {
	filter.Limit = 0
	filter.Offset = 0

	query, args, err := filter.apply(psql.Select("COUNT(*)").From("users")).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var count int64
	if err := ur.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		ur.log.Error("Failed to count users", zap.Error(err))
		return 0, fmt.Errorf("count users: %w", err)
	}

	return count, nil
}

func (ur *userRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET email = $2, password = $3, first_name = $4, last_name = $5,
		    role = $6, is_active = $7, is_staff = $8, is_superuser = $9,
		    phone = $10, department = $11, job_title = $12, bio = $13,
		    avatar_path = $14, updated_at = $15
		WHERE id = $1
	`

	result, err := ur.db.Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Role,
		user.IsActive,
		user.IsStaff,
		user.IsSuperuser,
		user.Phone,
		user.Department,
		user.JobTitle,
		user.Bio,
		user.AvatarPath,
		user.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			ur.log.Warn("Duplicate email on update", zap.String("email", user.Email))
			return apperrors.ErrDuplicateEmail
		}
		ur.log.Error("Failed to update user",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return fmt.Errorf("update user %s: %w", user.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// UpdateLastSeen is a single-column write so the hourly throttle does not
// touch updated_at.
func (ur *userRepository) UpdateLastSeen(ctx context.Context, id uuid.UUID, seenAt time.Time) error {
	query := `UPDATE users SET last_seen_at = $2 WHERE id = $1`

	_, err := ur.db.Exec(ctx, query, id, seenAt)
	if err != nil {
		ur.log.Error("Failed to update last seen",
			zap.Error(err),
			zap.String("user_id", id.String()),
		)
		return fmt.Errorf("update last seen %s: %w", id.String(), err)
	}

	return nil
}

// Delete removes the row permanently. Deactivation is the soft path.
func (ur *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM users WHERE id = $1`

	result, err := ur.db.Exec(ctx, query, id)
	if err != nil {
		ur.log.Error("Failed to delete user",
			zap.Error(err),
			zap.String("id", id.String()),
		)
		return fmt.Errorf("delete user %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	ur.log.Info("User deleted", zap.String("id", id.String()))
	return nil
}
