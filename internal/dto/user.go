package dto

// Admin user management payloads.

type CreateUserRequest struct {
	Name       string `json:"name"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Status     string `json:"status"`
}

type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Role       *string `json:"role"`
	Department *string `json:"department"`
	Status     *string `json:"status"`
	Password   *string `json:"password"`
}
