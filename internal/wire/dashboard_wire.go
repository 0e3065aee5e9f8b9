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

func wireDashboard(
	r chi.Router,
	dashboardHandler *adaptor.DashboardHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.Session, repo.User, config, log))

		r.Get("/", dashboardHandler.Route)
		r.With(middleware.RequireCapability(authz.ViewAnalytics, log)).
			Get("/admin/", dashboardHandler.Admin)
		r.With(middleware.RequireCapability(authz.AccessStaffFeatures, log)).
			Get("/staff/", dashboardHandler.Staff)
		r.Get("/user/", dashboardHandler.User)
	})
}
