package handler

// createUserRequest uses the admin-console password rule (6-character
// minimum), which is deliberately weaker than registration's strong rule.
type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30,username"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin super-admin"`
}

type updateUserRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=30,username"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin super-admin"`
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}
