package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"staffly/internal/apperrors"
	"staffly/internal/data/entity"
	"staffly/internal/data/repository"
	"staffly/internal/dto/request"
	"staffly/internal/dto/response"
	"staffly/pkg/utils"
)

// DirectoryPageSize is the fixed page size of the admin user list.
const DirectoryPageSize = 10

// UserService implements the admin-only user management operations. The
// actor id identifies the admin performing the call; mutations against the
// actor's own account are rejected.
type UserService interface {
	Directory(ctx context.Context, req *request.DirectoryRequest) (*response.DirectoryResponse, error)
	Create(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	Get(ctx context.Context, id string) (*response.UserResponse, error)
	Update(ctx context.Context, actorID uuid.UUID, id string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	Delete(ctx context.Context, actorID uuid.UUID, id string) error
	ToggleStatus(ctx context.Context, actorID uuid.UUID, id string) (*response.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log,
	}
}

func (us *userService) Directory(ctx context.Context, req *request.DirectoryRequest) (*response.DirectoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Directory validation failed", zap.Any("errors", errs))
		return nil, apperrors.Validationf("%s", utils.FormatValidationErrors(errs))
	}

	page := req.Page
	if page < 1 {
		page = 1
	}

	filter := repository.UserFilter{
		Search:  req.Search,
		Role:    entity.Role(req.Role),
		Status:  req.Status,
		OrderBy: req.Ordering,
		Limit:   DirectoryPageSize,
		Offset:  utils.CalculateOffset(page, DirectoryPageSize),
	}

	users, err := us.userRepo.List(ctx, filter)
	if err != nil {
		us.log.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	matching, err := us.userRepo.Count(ctx, filter)
	if err != nil {
		us.log.Error("Failed to count matching users", zap.Error(err))
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	stats, err := us.directoryStats(ctx)
	if err != nil {
		return nil, err
	}

	return &response.DirectoryResponse{
		PaginatedResponse: *response.NewPaginatedResponse(
			response.UsersToResponse(users), page, DirectoryPageSize, matching),
		Stats: stats,
	}, nil
}

func (us *userService) directoryStats(ctx context.Context) (response.DirectoryStats, error) {
	var stats response.DirectoryStats
	var err error

	if stats.Total, err = us.userRepo.Count(ctx, repository.UserFilter{}); err != nil {
		us.log.Error("Failed to count users", zap.Error(err))
		return stats, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.Active, err = us.userRepo.Count(ctx, repository.UserFilter{Status: repository.StatusActive}); err != nil {
		us.log.Error("Failed to count active users", zap.Error(err))
		return stats, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.Inactive, err = us.userRepo.Count(ctx, repository.UserFilter{Status: repository.StatusInactive}); err != nil {
		us.log.Error("Failed to count inactive users", zap.Error(err))
		return stats, fmt.Errorf("failed to count users: %w", err)
	}

	return stats, nil
}

func (us *userService) Create(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Create user validation failed", zap.Any("errors", errs))
		return nil, apperrors.Validationf("%s", utils.FormatValidationErrors(errs))
	}

	role := entity.Role(req.Role)
	if role == "" {
		role = entity.RoleUser
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		us.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to process password: %w", err)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New(),
		Email:        utils.NormalizeEmail(req.Email),
		PasswordHash: hashedPassword,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		IsActive:     active,
		Phone:        req.Phone,
		Department:   req.Department,
		JobTitle:     req.JobTitle,
		Bio:          req.Bio,
		DateJoined:   now,
		UpdatedAt:    now,
	}
	// Elevated flags are written in the same INSERT as the role.
	user.SyncRoleFlags()

	if err := us.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	us.log.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) Get(ctx context.Context, id string) (*response.UserResponse, error) {
	user, err := us.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) Update(ctx context.Context, actorID uuid.UUID, id string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Update user validation failed", zap.Any("errors", errs))
		return nil, apperrors.Validationf("%s", utils.FormatValidationErrors(errs))
	}

	user, err := us.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	role := entity.Role(req.Role)

	// Admins cannot demote or deactivate themselves.
	if user.ID == actorID {
		if role != user.Role {
			return nil, apperrors.SelfActionf("you cannot change your own role")
		}
		if req.IsActive != nil && !*req.IsActive {
			return nil, apperrors.SelfActionf("you cannot deactivate your own account")
		}
	}

	user.Email = utils.NormalizeEmail(req.Email)
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.Role = role
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.Phone = req.Phone
	user.Department = req.Department
	user.JobTitle = req.JobTitle
	user.Bio = req.Bio
	user.UpdatedAt = time.Now()
	user.SyncRoleFlags()

	if err := us.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	us.log.Info("User updated",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) Delete(ctx context.Context, actorID uuid.UUID, id string) error {
	user, err := us.findUser(ctx, id)
	if err != nil {
		return err
	}

	if user.ID == actorID {
		return apperrors.SelfActionf("you cannot delete your own account")
	}

	if err := us.userRepo.Delete(ctx, user.ID); err != nil {
		return err
	}

	us.log.Info("User deleted",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)
	return nil
}

func (us *userService) ToggleStatus(ctx context.Context, actorID uuid.UUID, id string) (*response.UserResponse, error) {
	user, err := us.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if user.ID == actorID {
		return nil, apperrors.SelfActionf("you cannot deactivate your own account")
	}

	user.IsActive = !user.IsActive
	user.UpdatedAt = time.Now()

	if err := us.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	us.log.Info("User status toggled",
		zap.String("user_id", user.ID.String()),
		zap.Bool("is_active", user.IsActive),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) findUser(ctx context.Context, id string) (*entity.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.Validationf("invalid user id")
	}

	user, err := us.userRepo.FindByID(ctx, userID)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", id))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}

	return user, nil
}
