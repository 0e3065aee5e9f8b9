package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
	RoleUser  Role = "USER"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleUser:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password"`
	FirstName    string    `db:"first_name"`
	LastName     string    `db:"last_name"`
	Role         Role      `db:"role"`
	IsActive     bool      `db:"is_active"`
	IsStaff      bool      `db:"is_staff"`
	IsSuperuser  bool      `db:"is_superuser"`

	Phone      string `db:"phone"`
	Department string `db:"department"`
	JobTitle   string `db:"job_title"`
	Bio        string `db:"bio"`
	AvatarPath string `db:"avatar_path"`

	DateJoined time.Time  `db:"date_joined"`
	LastSeenAt *time.Time `db:"last_seen_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

// FullName returns "first last", falling back to the email address
// when both name fields are blank.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// ShortName returns the first name, or the email local part.
func (u *User) ShortName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return u.Email
}

// Initials returns up to two uppercase letters for avatar placeholders.
func (u *User) Initials() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return strings.ToUpper(u.FirstName[:1] + u.LastName[:1])
	case len(u.FirstName) >= 2:
		return strings.ToUpper(u.FirstName[:2])
	case len(u.Email) >= 2:
		return strings.ToUpper(u.Email[:2])
	}
	return strings.ToUpper(u.Email)
}

// SyncRoleFlags keeps the elevated account flags consistent with the role.
// ADMIN accounts carry both flags; any other role carries neither.
func (u *User) SyncRoleFlags() {
	elevated := u.Role == RoleAdmin
	u.IsStaff = elevated
	u.IsSuperuser = elevated
}
