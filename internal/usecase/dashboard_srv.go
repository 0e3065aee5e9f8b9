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
	"staffly/internal/dto/response"
)

// staffColleagueLimit caps the colleague list on the staff dashboard.
const staffColleagueLimit = 10

type DashboardService interface {
	AdminOverview(ctx context.Context) (*response.AdminDashboardResponse, error)
	StaffOverview(ctx context.Context, userID uuid.UUID) (*response.StaffDashboardResponse, error)
	UserOverview(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)
}

type dashboardService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewDashboardService(userRepo repository.UserRepository, log *zap.Logger) DashboardService {
	return &dashboardService{
		userRepo: userRepo,
		log:      log,
	}
}

func (ds *dashboardService) AdminOverview(ctx context.Context) (*response.AdminDashboardResponse, error) {
	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var resp response.AdminDashboardResponse

	type countTarget struct {
		dst    *int64
		filter repository.UserFilter
	}
	counts := []countTarget{
		{&resp.TotalUsers, repository.UserFilter{}},
		{&resp.ActiveUsers, repository.UserFilter{Status: repository.StatusActive}},
		{&resp.InactiveUsers, repository.UserFilter{Status: repository.StatusInactive}},
		{&resp.AdminCount, repository.UserFilter{Role: entity.RoleAdmin}},
		{&resp.StaffCount, repository.UserFilter{Role: entity.RoleStaff}},
		{&resp.UserCount, repository.UserFilter{Role: entity.RoleUser}},
		{&resp.NewUsersWeek, repository.UserFilter{JoinedAfter: weekAgo}},
		{&resp.NewUsersMonth, repository.UserFilter{JoinedAfter: monthAgo}},
		{&resp.ActiveToday, repository.UserFilter{SeenAfter: startOfToday}},
	}

	for _, c := range counts {
		n, err := ds.userRepo.Count(ctx, c.filter)
		if err != nil {
			ds.log.Error("Failed to compute dashboard count", zap.Error(err))
			return nil, fmt.Errorf("failed to compute statistics: %w", err)
		}
		*c.dst = n
	}

	recent, err := ds.userRepo.List(ctx, repository.UserFilter{
		OrderBy: "-date_joined",
		Limit:   5,
	})
	if err != nil {
		ds.log.Error("Failed to list recent users", zap.Error(err))
		return nil, fmt.Errorf("failed to list recent users: %w", err)
	}
	resp.RecentUsers = response.UsersToResponse(recent)

	return &resp, nil
}

func (ds *dashboardService) StaffOverview(ctx context.Context, userID uuid.UUID) (*response.StaffDashboardResponse, error) {
	self, err := ds.userRepo.FindByID(ctx, userID)
	if err != nil {
		ds.log.Error("Failed to load user for staff dashboard", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if self == nil {
		return nil, apperrors.ErrNotFound
	}

	colleagues, err := ds.userRepo.List(ctx, repository.UserFilter{
		Roles:     []entity.Role{entity.RoleStaff, entity.RoleUser},
		Status:    repository.StatusActive,
		ExcludeID: self.ID,
		OrderBy:   "first_name",
		Limit:     staffColleagueLimit,
	})
	if err != nil {
		ds.log.Error("Failed to list colleagues", zap.Error(err))
		return nil, fmt.Errorf("failed to list colleagues: %w", err)
	}

	resp := &response.StaffDashboardResponse{
		Colleagues:        response.UsersToResponse(colleagues),
		DepartmentMembers: []response.UserResponse{},
	}

	if self.Department != "" {
		members, err := ds.userRepo.List(ctx, repository.UserFilter{
			Department: self.Department,
			Status:     repository.StatusActive,
			ExcludeID:  self.ID,
			OrderBy:    "first_name",
		})
		if err != nil {
			ds.log.Error("Failed to list department members", zap.Error(err))
			return nil, fmt.Errorf("failed to list department members: %w", err)
		}
		resp.DepartmentMembers = response.UsersToResponse(members)
	}

	return resp, nil
}

func (ds *dashboardService) UserOverview(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := ds.userRepo.FindByID(ctx, userID)
	if err != nil {
		ds.log.Error("Failed to load user dashboard", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrNotFound
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}
