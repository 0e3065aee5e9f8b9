package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"staffly/internal/adaptor"
	"staffly/internal/data/repository"
	"staffly/pkg/middleware"
	"staffly/pkg/utils"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// Login is for anonymous callers only; a live session gets bounced to
	// the dashboard router instead.
	r.With(middleware.AnonymousOnly(repo.Session, config, log)).
		Post("/accounts/login/", authHandler.Login)

	r.With(middleware.Authenticate(repo.Session, repo.User, config, log)).
		Post("/accounts/logout/", authHandler.Logout)
}
