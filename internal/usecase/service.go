package usecase

import (
	"go.uber.org/zap"

	"staffly/internal/data/repository"
	"staffly/pkg/storage"
	"staffly/pkg/utils"
)

type Service struct {
	Auth      AuthService
	User      UserService
	Profile   ProfileService
	Dashboard DashboardService
}

func NewService(repo *repository.Repository, config *utils.Config, avatars *storage.AvatarStore, log *zap.Logger) *Service {
	return &Service{
		Auth:      NewAuthService(repo, config, log),
		User:      NewUserService(repo.User, log),
		Profile:   NewProfileService(repo.User, repo.Session, avatars, log),
		Dashboard: NewDashboardService(repo.User, log),
	}
}
