package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"staffly/internal/adaptor"
	"staffly/internal/data/repository"
	"staffly/pkg/middleware"
	"staffly/pkg/utils"
)

func wireProfile(
	r chi.Router,
	profileHandler *adaptor.ProfileHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// Profile self-service; any authenticated role.
	r.Route("/accounts/profile", func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.Session, repo.User, config, log))

		r.Get("/", profileHandler.Detail)
		r.Put("/edit/", profileHandler.Update)
		r.Post("/password/", profileHandler.ChangePassword)
		r.Post("/avatar/", profileHandler.UploadAvatar)
	})
}
