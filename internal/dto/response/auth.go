package response

import (
	"time"

	"staffly/internal/data/entity"
)

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	// Redirect is the role-appropriate landing page, or the caller's
	// preserved "next" destination.
	Redirect string       `json:"redirect"`
	User     UserResponse `json:"user"`
}

func AuthToResponse(user *entity.User, session *entity.Session, redirect string) *AuthResponse {
	resp := &AuthResponse{
		Redirect: redirect,
		User:     UserToResponse(user),
	}

	if session != nil {
		resp.Token = session.Token.String()
		resp.ExpiresAt = session.ExpiresAt
	}

	return resp
}
