package handler

import "github.com/learnly/course-platform/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"required,oneof=admin teacher student"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	User *domain.PublicUser `json:"user"`
}

type usersResponse struct {
	Users []*domain.PublicUser `json:"users"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin teacher student"`
}

type messageResponse struct {
	Message string `json:"message"`
}
