package response

// AdminDashboardResponse carries the system analytics shown to admins.
type AdminDashboardResponse struct {
	TotalUsers    int64 `json:"total_users"`
	ActiveUsers   int64 `json:"active_users"`
	InactiveUsers int64 `json:"inactive_users"`

	AdminCount int64 `json:"admin_count"`
	StaffCount int64 `json:"staff_count"`
	UserCount  int64 `json:"user_count"`

	NewUsersWeek  int64 `json:"new_users_week"`
	NewUsersMonth int64 `json:"new_users_month"`
	ActiveToday   int64 `json:"active_today"`

	RecentUsers []UserResponse `json:"recent_users"`
}

// StaffDashboardResponse is the limited view for staff members.
type StaffDashboardResponse struct {
	Colleagues        []UserResponse `json:"colleagues"`
	DepartmentMembers []UserResponse `json:"department_members"`
}
