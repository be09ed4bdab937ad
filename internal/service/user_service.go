package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util"
)

// UserService covers user directory operations.
type UserService struct {
	users repository.UserRepository
	teams repository.TeamRepository
}

// UserUpdateInput carries partial user updates; nil fields are left untouched.
type UserUpdateInput struct {
	FullName *string
	Email    *string
	Role     *domain.Role
	IsActive *bool
	TeamID   *int64
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, teams repository.TeamRepository) *UserService {
	return &UserService{users: users, teams: teams}
}

// ListUsers returns a page of users (admin/manager gated at the route).
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// GetUser fetches one user. Callers may read their own profile; admins and
// managers may read anyone.
func (s *UserService) GetUser(ctx context.Context, identity domain.Identity, userID int64) (*domain.User, error) {
	if identity.UserID != userID {
		switch identity.Role {
		case domain.RoleAdmin, domain.RoleManager:
		default:
			return nil, apperrors.NewForbidden("not enough permissions")
		}
	}
	return s.fetch(ctx, userID)
}

// UpdateUser applies partial updates. Users may update themselves; only
// admins may update others, and only admins may touch role or active flags.
func (s *UserService) UpdateUser(ctx context.Context, identity domain.Identity, userID int64, input UserUpdateInput) (*domain.User, error) {
	if identity.UserID != userID && identity.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("not enough permissions")
	}
	if (input.Role != nil || input.IsActive != nil) && identity.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("role changes require admin")
	}

	user, err := s.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = strings.TrimSpace(*input.FullName)
	}
	if input.Email != nil {
		user.Email = strings.TrimSpace(strings.ToLower(*input.Email))
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": *input.Role})
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.TeamID != nil {
		user.TeamID = input.TeamID
	}

	if err := s.users.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewValidationError("email already registered", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// DeleteUser removes an account (admin gated at the route). Deleting your own
// account is rejected.
func (s *UserService) DeleteUser(ctx context.Context, identity domain.Identity, userID int64) error {
	if identity.UserID == userID {
		return apperrors.NewValidationError("cannot delete your own account", nil)
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

// TeamMembers lists a team's members. Team members, the team's manager and
// admins may look.
func (s *UserService) TeamMembers(ctx context.Context, identity domain.Identity, teamID int64) ([]domain.User, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("team", map[string]any{"team_id": teamID})
		}
		return nil, apperrors.MapError(err)
	}

	allowed := identity.Role == domain.RoleAdmin ||
		identity.InTeam(team.ID) ||
		(team.ManagerID != nil && *team.ManagerID == identity.UserID)
	if !allowed {
		return nil, apperrors.NewForbidden("not enough permissions")
	}

	members, err := s.users.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return members, nil
}

func (s *UserService) fetch(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}
