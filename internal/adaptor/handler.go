package adaptor

import (
	"go.uber.org/zap"

	"staffly/internal/usecase"
	"staffly/pkg/utils"
)

type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Profile   *ProfileHandler
	Dashboard *DashboardHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, config, log),
		User:      NewUserHandler(service.User, log),
		Profile:   NewProfileHandler(service.Profile, log),
		Dashboard: NewDashboardHandler(service.Dashboard, log),
	}
}
