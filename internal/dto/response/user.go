package response

import (
	"time"

	"staffly/internal/data/entity"
)

type UserResponse struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	FullName    string      `json:"full_name"`
	Initials    string      `json:"initials"`
	Role        entity.Role `json:"role"`
	IsActive    bool        `json:"is_active"`
	IsStaff     bool        `json:"is_staff"`
	IsSuperuser bool        `json:"is_superuser"`
	Phone       string      `json:"phone,omitempty"`
	Department  string      `json:"department,omitempty"`
	JobTitle    string      `json:"job_title,omitempty"`
	Bio         string      `json:"bio,omitempty"`
	Avatar      string      `json:"avatar,omitempty"`
	DateJoined  time.Time   `json:"date_joined"`
	LastSeenAt  *time.Time  `json:"last_seen_at,omitempty"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		FullName:    user.FullName(),
		Initials:    user.Initials(),
		Role:        user.Role,
		IsActive:    user.IsActive,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
		Phone:       user.Phone,
		Department:  user.Department,
		JobTitle:    user.JobTitle,
		Bio:         user.Bio,
		Avatar:      user.AvatarPath,
		DateJoined:  user.DateJoined,
		LastSeenAt:  user.LastSeenAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

func UsersToResponse(users []*entity.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = UserToResponse(u)
	}
	return out
}

// DirectoryStats are the aggregate counts shown above the admin user list.
type DirectoryStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Inactive int64 `json:"inactive"`
}

type DirectoryResponse struct {
	PaginatedResponse[UserResponse]
	Stats DirectoryStats `json:"stats"`
}
