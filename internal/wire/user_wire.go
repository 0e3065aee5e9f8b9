package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"staffly/internal/adaptor"
	"staffly/internal/authz"
	"staffly/internal/data/repository"
	"staffly/pkg/middleware"
	"staffly/pkg/utils"
)

func wireUsers(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// The whole user directory is admin territory.
	r.Route("/accounts/users", func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.Session, repo.User, config, log))
		r.Use(middleware.RequireCapability(authz.ManageUsers, log))

		r.Get("/", userHandler.Directory)
		r.Post("/create/", userHandler.Create)
		r.Get("/{id}/", userHandler.Detail)
		r.Put("/{id}/edit/", userHandler.Update)
		r.Post("/{id}/delete/", userHandler.Delete)
		r.Post("/{id}/toggle-status/", userHandler.ToggleStatus)
	})
}
