package request

// ProfileUpdateRequest is the self-service form. It deliberately has no
// role, status or email fields; extra keys in the submitted payload are
// discarded by the decoder.
type ProfileUpdateRequest struct {
	FirstName  string `json:"first_name" validate:"max=150"`
	LastName   string `json:"last_name" validate:"max=150"`
	Phone      string `json:"phone" validate:"max=20"`
	Department string `json:"department" validate:"max=100"`
	JobTitle   string `json:"job_title" validate:"max=100"`
	Bio        string `json:"bio" validate:"max=500"`
}

type PasswordChangeRequest struct {
	OldPassword        string `json:"old_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,min=8"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required,eqfield=NewPassword"`
}
