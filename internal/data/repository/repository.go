package repository

import (
	"go.uber.org/zap"

	"staffly/pkg/database"
)

type Repository struct {
	User    UserRepository
	Session SessionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
	}
}
