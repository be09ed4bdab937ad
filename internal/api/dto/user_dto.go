package dto

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	Email    string      `json:"email"`
	FullName string      `json:"full_name"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role,omitempty"`
	TeamID   *int64      `json:"team_id,omitempty"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries an issued bearer token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the public user representation; the password hash never
// leaves the service layer.
type UserResponse struct {
	ID        int64       `json:"id"`
	Email     string      `json:"email"`
	FullName  string      `json:"full_name"`
	Role      domain.Role `json:"role"`
	IsActive  bool        `json:"is_active"`
	TeamID    *int64      `json:"team_id"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		TeamID:    u.TeamID,
		CreatedAt: u.CreatedAt,
	}
}

// NewUserList maps a slice of domain users.
func NewUserList(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}

// UpdateUserRequest payload; absent fields are left untouched.
type UpdateUserRequest struct {
	FullName *string      `json:"full_name,omitempty"`
	Email    *string      `json:"email,omitempty"`
	Role     *domain.Role `json:"role,omitempty"`
	IsActive *bool        `json:"is_active,omitempty"`
	TeamID   *int64       `json:"team_id,omitempty"`
}
