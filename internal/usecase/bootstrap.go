package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"staffly/internal/data/entity"
	"staffly/internal/data/repository"
	"staffly/pkg/utils"
)

// EnsureBootstrapAdmin creates the initial superuser when the system has no
// active ADMIN account and bootstrap credentials are configured. Idempotent
// across restarts.
func EnsureBootstrapAdmin(ctx context.Context, users repository.UserRepository, config utils.BootstrapConfig, log *zap.Logger) error {
	if config.AdminEmail == "" || config.AdminPassword == "" {
		log.Debug("No bootstrap admin configured")
		return nil
	}

	admins, err := users.Count(ctx, repository.UserFilter{
		Role:   entity.RoleAdmin,
		Status: repository.StatusActive,
	})
	if err != nil {
		return fmt.Errorf("count active admins: %w", err)
	}
	if admins > 0 {
		return nil
	}

	hash, err := utils.HashPassword(config.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}

	now := time.Now()
	admin := &entity.User{
		ID:           uuid.New(),
		Email:        utils.NormalizeEmail(config.AdminEmail),
		PasswordHash: hash,
		Role:         entity.RoleAdmin,
		IsActive:     true,
		DateJoined:   now,
		UpdatedAt:    now,
	}
	admin.SyncRoleFlags()

	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	log.Info("Bootstrap admin created",
		zap.String("user_id", admin.ID.String()),
		zap.String("email", admin.Email),
	)
	return nil
}
