package usecase

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"staffly/internal/apperrors"
	"staffly/internal/data/repository"
	"staffly/internal/dto/request"
	"staffly/internal/dto/response"
	"staffly/pkg/storage"
	"staffly/pkg/utils"
)

// ProfileService implements self-service for the authenticated user. Role,
// status and email are immutable here regardless of the submitted payload.
type ProfileService interface {
	Get(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
	Update(ctx context.Context, userID uuid.UUID, req *request.ProfileUpdateRequest) (*response.UserResponse, error)
	// ChangePassword verifies the old password, stores the new hash and
	// revokes every other session of the user; keepToken survives.
	ChangePassword(ctx context.Context, userID uuid.UUID, keepToken string, req *request.PasswordChangeRequest) error
	UpdateAvatar(ctx context.Context, userID uuid.UUID, ext string, file io.Reader) (*response.UserResponse, error)
}

type profileService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	avatars     *storage.AvatarStore
	log         *zap.Logger
}

func NewProfileService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	avatars *storage.AvatarStore,
	log *zap.Logger,
) ProfileService {
	return &profileService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		avatars:     avatars,
		log:         log,
	}
}

func (ps *profileService) Get(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := ps.userRepo.FindByID(ctx, userID)
	if err != nil {
		ps.log.Error("Failed to load profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (ps *profileService) Update(ctx context.Context, userID uuid.UUID, req *request.ProfileUpdateRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		ps.log.Warn("Profile update validation failed", zap.Any("errors", errs))
		return nil, apperrors.Validationf("%s", utils.FormatValidationErrors(errs))
	}

	user, err := ps.userRepo.FindByID(ctx, userID)
	if err != nil {
		ps.log.Error("Failed to load profile", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}

	// Only the profile fields; role, status and email stay as they are.
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Phone = req.Phone
	user.Department = req.Department
	user.JobTitle = req.JobTitle
	user.Bio = req.Bio
	user.UpdatedAt = time.Now()

	if err := ps.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	ps.log.Info("Profile updated", zap.String("user_id", user.ID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (ps *profileService) ChangePassword(ctx context.Context, userID uuid.UUID, keepToken string, req *request.PasswordChangeRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		ps.log.Warn("Password change validation failed", zap.Any("errors", errs))
		return apperrors.Validationf("%s", utils.FormatValidationErrors(errs))
	}

	user, err := ps.userRepo.FindByID(ctx, userID)
	if err != nil {
		ps.log.Error("Failed to load user for password change", zap.Error(err), zap.String("user_id", userID.String()))
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return apperrors.ErrNotFound
	}

	if !utils.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		ps.log.Warn("Password change with wrong current password", zap.String("user_id", userID.String()))
		return apperrors.Validationf("your current password is incorrect")
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		ps.log.Error("Failed to hash new password", zap.Error(err))
		return fmt.Errorf("failed to process password: %w", err)
	}

	user.PasswordHash = hash
	user.UpdatedAt = time.Now()

	if err := ps.userRepo.Update(ctx, user); err != nil {
		return err
	}

	// The current session stays alive; everything else is cut loose.
	if err := ps.sessionRepo.RevokeOtherUserSessions(ctx, userID, keepToken); err != nil {
		ps.log.Warn("Failed to revoke other sessions after password change",
			zap.Error(err), zap.String("user_id", userID.String()))
	}

	ps.log.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}

func (ps *profileService) UpdateAvatar(ctx context.Context, userID uuid.UUID, ext string, file io.Reader) (*response.UserResponse, error) {
	user, err := ps.userRepo.FindByID(ctx, userID)
	if err != nil {
		ps.log.Error("Failed to load user for avatar upload", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}

	name, err := ps.avatars.Save(userID, ext, file)
	if err != nil {
		return nil, err
	}

	user.AvatarPath = name
	user.UpdatedAt = time.Now()

	if err := ps.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	ps.log.Info("Avatar updated", zap.String("user_id", userID.String()), zap.String("avatar", name))

	resp := response.UserToResponse(user)
	return &resp, nil
}
