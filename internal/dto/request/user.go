package request

// CreateUserRequest is the admin-only creation form.
type CreateUserRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	FirstName       string `json:"first_name" validate:"max=150"`
	LastName        string `json:"last_name" validate:"max=150"`
	Role            string `json:"role" validate:"omitempty,oneof=ADMIN STAFF USER"`
	IsActive        *bool  `json:"is_active"`
	Phone           string `json:"phone" validate:"max=20"`
	Department      string `json:"department" validate:"max=100"`
	JobTitle        string `json:"job_title" validate:"max=100"`
	Bio             string `json:"bio" validate:"max=500"`
}

// UpdateUserRequest is the admin-only edit form; it may change any field
// including role and status.
type UpdateUserRequest struct {
	Email      string `json:"email" validate:"required,email"`
	FirstName  string `json:"first_name" validate:"max=150"`
	LastName   string `json:"last_name" validate:"max=150"`
	Role       string `json:"role" validate:"required,oneof=ADMIN STAFF USER"`
	IsActive   *bool  `json:"is_active"`
	Phone      string `json:"phone" validate:"max=20"`
	Department string `json:"department" validate:"max=100"`
	JobTitle   string `json:"job_title" validate:"max=100"`
	Bio        string `json:"bio" validate:"max=500"`
}

// DirectoryRequest carries the admin user-list filters. Every field is
// optional; absent filters are no-ops.
type DirectoryRequest struct {
	Search   string `json:"search"`
	Role     string `json:"role"`
	Status   string `json:"status" validate:"omitempty,oneof=active inactive"`
	Ordering string `json:"ordering"`
	Page     int    `json:"page" validate:"omitempty,min=1"`
}
