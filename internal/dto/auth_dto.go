package dto

import (
	"time"

	"authcore/internal/entity"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type RegisterResponse struct {
	Msg    string `json:"msg"`
	UserID string `json:"userId"`
}

type ConfirmEmailRequest struct {
	Token string `json:"token" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Msg   string `json:"msg"`
	Token string `json:"token"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest serves the code flow: the emailed code must be
// presented alongside the new password.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// ResetPasswordLinkRequest serves the signed-link flow; the token rides in
// the URL.
type ResetPasswordLinkRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

type MessageResponse struct {
	Msg string `json:"msg"`
}

type CreateGroupRequest struct {
	Name string `json:"name" validate:"required"`
}

type GroupResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions,omitempty"`
}

type CreatePermissionRequest struct {
	Name string `json:"name" validate:"required"`
}

type PermissionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Username    string     `json:"username,omitempty"`
	FirstName   string     `json:"first_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	IsAdmin     bool       `json:"isAdmin"`
	IsActive    bool       `json:"is_active"`
	IsStaff     bool       `json:"is_staff"`
	IsSuperuser bool       `json:"is_superuser"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func UserResponseFromEntity(user *entity.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		IsAdmin:     user.IsAdmin,
		IsActive:    user.IsActive,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
		LastLogin:   user.LastLogin,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

func UserResponsesFromEntities(users []entity.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, UserResponseFromEntity(&users[i]))
	}
	return responses
}

func GroupResponseFromEntity(group *entity.Group) GroupResponse {
	return GroupResponse{ID: group.ID, Name: group.Name, Permissions: group.Permissions}
}

func GroupResponsesFromEntities(groups []entity.Group) []GroupResponse {
	responses := make([]GroupResponse, 0, len(groups))
	for i := range groups {
		responses = append(responses, GroupResponseFromEntity(&groups[i]))
	}
	return responses
}

func PermissionResponseFromEntity(permission *entity.Permission) PermissionResponse {
	return PermissionResponse{ID: permission.ID, Name: permission.Name}
}

func PermissionResponsesFromEntities(permissions []entity.Permission) []PermissionResponse {
	responses := make([]PermissionResponse, 0, len(permissions))
	for i := range permissions {
		responses = append(responses, PermissionResponseFromEntity(&permissions[i]))
	}
	return responses
}
