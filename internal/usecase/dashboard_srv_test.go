package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"staffly/internal/apperrors"
	"staffly/internal/data/entity"
	"staffly/internal/data/repository"
	"staffly/pkg/utils"
)

func TestAdminOverviewCounts(t *testing.T) {
	now := time.Now()

	admin := testUser(t, "admin@example.com", "password123", entity.RoleAdmin, true)
	admin.DateJoined = now.AddDate(0, 0, -60)

	veteran := testUser(t, "veteran@example.com", "password123", entity.RoleStaff, true)
	veteran.DateJoined = now.AddDate(0, 0, -20)
	seenToday := now.Add(-time.Hour)
	veteran.LastSeenAt = &seenToday

	rookie := testUser(t, "rookie@example.com", "password123", entity.RoleUser, true)
	rookie.DateJoined = now.AddDate(0, 0, -2)

	former := testUser(t, "former@example.com", "password123", entity.RoleUser, false)
	former.DateJoined = now.AddDate(0, 0, -90)

	repo := newStubUserRepo(admin, veteran, rookie, former)
	service := NewDashboardService(repo, zap.NewNop())

	resp, err := service.AdminOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), resp.TotalUsers)
	assert.Equal(t, int64(3), resp.ActiveUsers)
	assert.Equal(t, int64(1), resp.InactiveUsers)
	assert.Equal(t, int64(1), resp.AdminCount)
	assert.Equal(t, int64(1), resp.StaffCount)
	assert.Equal(t, int64(2), resp.UserCount)
	assert.Equal(t, int64(1), resp.NewUsersWeek)
	assert.Equal(t, int64(2), resp.NewUsersMonth)
	assert.Equal(t, int64(1), resp.ActiveToday)

	// Recent users come newest first.
	require.Len(t, resp.RecentUsers, 4)
	assert.Equal(t, "rookie@example.com", resp.RecentUsers[0].Email)
}

func TestStaffOverviewColleagues(t *testing.T) {
	self := testUser(t, "me@example.com", "password123", entity.RoleStaff, true)
	self.Department = "Engineering"

	peer := testUser(t, "peer@example.com", "password123", entity.RoleStaff, true)
	peer.FirstName = "Alice"
	peer.Department = "Engineering"

	member := testUser(t, "member@example.com", "password123", entity.RoleUser, true)
	member.FirstName = "Bob"
	member.Department = "Sales"

	admin := testUser(t, "admin@example.com", "password123", entity.RoleAdmin, true)
	inactive := testUser(t, "gone@example.com", "password123", entity.RoleStaff, false)
	inactive.Department = "Engineering"

	repo := newStubUserRepo(self, peer, member, admin, inactive)
	service := NewDashboardService(repo, zap.NewNop())

	resp, err := service.StaffOverview(context.Background(), self.ID)
	require.NoError(t, err)

	// Colleagues are active STAFF and USER accounts, never the caller,
	// never admins, never deactivated accounts.
	require.Len(t, resp.Colleagues, 2)
	assert.Equal(t, "peer@example.com", resp.Colleagues[0].Email)
	assert.Equal(t, "member@example.com", resp.Colleagues[1].Email)

	// Department members share the caller's department only.
	require.Len(t, resp.DepartmentMembers, 1)
	assert.Equal(t, "peer@example.com", resp.DepartmentMembers[0].Email)
}

func TestStaffOverviewWithoutDepartment(t *testing.T) {
	self := testUser(t, "me@example.com", "password123", entity.RoleStaff, true)
	repo := newStubUserRepo(self)
	service := NewDashboardService(repo, zap.NewNop())

	resp, err := service.StaffOverview(context.Background(), self.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.DepartmentMembers)
}

func TestUserOverview(t *testing.T) {
	self := testUser(t, "me@example.com", "password123", entity.RoleUser, true)
	service := NewDashboardService(newStubUserRepo(self), zap.NewNop())

	resp, err := service.UserOverview(context.Background(), self.ID)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", resp.Email)
}

func TestEnsureBootstrapAdmin(t *testing.T) {
	repo := newStubUserRepo()
	config := utils.BootstrapConfig{
		AdminEmail:    "Root@Example.com",
		AdminPassword: "bootstrap123",
	}
	ctx := context.Background()

	require.NoError(t, EnsureBootstrapAdmin(ctx, repo, config, zap.NewNop()))

	admin, err := repo.FindByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.True(t, admin.IsStaff)
	assert.True(t, admin.IsSuperuser)
	assert.True(t, utils.CheckPasswordHash("bootstrap123", admin.PasswordHash))

	// A second run is a no-op while an active admin exists.
	require.NoError(t, EnsureBootstrapAdmin(ctx, repo, config, zap.NewNop()))
	count, err := repo.Count(ctx, repository.UserFilter{Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestEnsureBootstrapAdminSkipsWhenUnconfigured(t *testing.T) {
	repo := newStubUserRepo()

	require.NoError(t, EnsureBootstrapAdmin(context.Background(), repo, utils.BootstrapConfig{}, zap.NewNop()))

	count, err := repo.Count(context.Background(), repository.UserFilter{Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestBootstrapAdminNotRecreatedAfterDeactivation(t *testing.T) {
	repo := newStubUserRepo()
	config := utils.BootstrapConfig{AdminEmail: "root@example.com", AdminPassword: "bootstrap123"}
	ctx := context.Background()

	require.NoError(t, EnsureBootstrapAdmin(ctx, repo, config, zap.NewNop()))

	existing := testUser(t, "other-admin@example.com", "password123", entity.RoleAdmin, true)
	require.NoError(t, repo.Create(ctx, existing))

	first, err := repo.FindByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	first.IsActive = false
	require.NoError(t, repo.Update(ctx, first))

	// Another active admin still exists, so nothing is created.
	require.NoError(t, EnsureBootstrapAdmin(ctx, repo, config, zap.NewNop()))
	count, err := repo.Count(ctx, repository.UserFilter{Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestStaffOverviewMissingUser(t *testing.T) {
	service := NewDashboardService(newStubUserRepo(), zap.NewNop())

	_, err := service.StaffOverview(context.Background(), testUser(t, "x@example.com", "password123", entity.RoleStaff, true).ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
