// internal/wire/wire.go
package wire

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"staffly/internal/adaptor"
	"staffly/internal/data/repository"
	"staffly/internal/usecase"
	"staffly/pkg/middleware"
	"staffly/pkg/storage"
	"staffly/pkg/utils"
)

// App holds the wired application.
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and the router.
func Wiring(repo *repository.Repository, config *utils.Config, avatars *storage.AvatarStore, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, avatars, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	wireAuth(r, handler.Auth, repo, config, logger)
	wireUsers(r, handler.User, repo, config, logger)
	wireProfile(r, handler.Profile, repo, config, logger)
	wireDashboard(r, handler.Dashboard, repo, config, logger)

	// Uploaded avatars are served straight from disk.
	avatarFS := http.FileServer(http.Dir(config.Storage.AvatarDir))
	r.Handle("/media/avatars/*", http.StripPrefix("/media/avatars/", avatarFS))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
