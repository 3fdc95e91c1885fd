package usecase

import (
	"context"
	"time"

	"moviematrix/internal/authz"
	"moviematrix/internal/data/repository"
	"moviematrix/internal/dto/request"
	"moviematrix/internal/dto/response"
	"moviematrix/pkg/apperrors"
	"moviematrix/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*response.UserResponse, error)
	GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	UpdateUser(ctx context.Context, targetID string, actor authz.Actor, req *request.UpdateUserRequest) (*response.UserResponse, error)
	ChangePassword(ctx context.Context, targetID string, actor authz.Actor, req *request.ChangePasswordRequest) error
	DeleteUser(ctx context.Context, targetID string, actor authz.Actor) error
}

type userService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewUserService(repo *repository.Repository, log *zap.Logger) UserService {
	return &userService{
		repo: repo,
		log:  log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetProfile(ctx context.Context, userID string) (*response.UserResponse, error) {
	// Parse userID
	id, err := uuid.Parse(userID)
	if err != nil {
		us.log.Warn("Invalid user ID", zap.String("user_id", userID), zap.Error(err))
		return nil, apperrors.Validation("invalid user ID")
	}

	// Find user
	user, err := us.repo.User.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", userID))
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	// Set defaults
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = 10
	}
	if req.PerPage > 100 {
		req.PerPage = 100
	}

	// Get users with pagination
	users, err := us.repo.User.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		us.log.Error("Failed to get all users", zap.Error(err))
		return nil, err
	}

	total, err := us.repo.User.CountAll(ctx)
	if err != nil {
		us.log.Error("Failed to count users", zap.Error(err))
		return nil, err
	}

	// Build responses
	userResponses := make([]response.UserResponse, 0, len(users))
	for _, user := range users {
		userResponses = append(userResponses, response.UserToResponse(user))
	}

	return response.NewPaginatedResponse(userResponses, req.Page, req.PerPage, total), nil
}

func (us *userService) UpdateUser(ctx context.Context, targetID string, actor authz.Actor, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Update user validation failed", zap.Any("errors", errs))
		return nil, apperrors.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(targetID)
	if err != nil {
		return nil, apperrors.Validation("invalid user ID")
	}

	// 2. Find target user
	user, err := us.repo.User.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", targetID))
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound("user not found")
	}

	// 3. Authorization: only the user themselves or an admin
	if !authz.Can(actor, authz.ActionUpdate, authz.Resource{Type: authz.ResourceUser, OwnerID: user.ID}) {
		us.log.Warn("Update user denied",
			zap.String("actor_id", actor.ID.String()),
			zap.String("user_id", targetID))
		return nil, apperrors.Forbidden("not allowed to update this user")
	}

	// 4. Uniqueness rechecks when identity fields change
	if req.Username != nil && *req.Username != user.Username {
		existing, err := us.repo.User.FindByUsername(ctx, *req.Username)
		if err != nil {
			us.log.Error("Failed to check username", zap.Error(err), zap.String("username", *req.Username))
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.Conflict("username already taken")
		}
		user.Username = *req.Username
	}
	if req.Email != nil && *req.Email != user.Email {
		existing, err := us.repo.User.FindByEmail(ctx, *req.Email)
		if err != nil {
			us.log.Error("Failed to check email", zap.Error(err), zap.String("email", *req.Email))
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.Conflict("email already registered")
		}
		user.Email = *req.Email
	}

	// 5. Apply remaining fields
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = req.LastName
	}
	if req.Age != nil {
		user.Age = req.Age
	}
	user.UpdatedAt = time.Now()

	// 6. Persist
	if err := us.repo.User.Update(ctx, user); err != nil {
		us.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", targetID))
		return nil, err
	}

	us.log.Info("User updated", zap.String("user_id", user.ID.String()))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (us *userService) ChangePassword(ctx context.Context, targetID string, actor authz.Actor, req *request.ChangePasswordRequest) error {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		us.log.Warn("Change password validation failed", zap.Any("errors", errs))
		return apperrors.Validation("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(targetID)
	if err != nil {
		return apperrors.Validation("invalid user ID")
	}

	// 2. Find target user
	user, err := us.repo.User.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", targetID))
		return err
	}
	if user == nil {
		return apperrors.NotFound("user not found")
	}

	// 3. Authorization
	if !authz.Can(actor, authz.ActionUpdate, authz.Resource{Type: authz.ResourceUser, OwnerID: user.ID}) {
		return apperrors.Forbidden("not allowed to change this password")
	}

	// 4. Verify current password, admins skip the check for other accounts
	if actor.ID == user.ID {
		if req.CurrentPassword == "" {
			return apperrors.Validation("current_password is required")
		}
		if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
			us.log.Warn("Wrong current password", zap.String("user_id", targetID))
			return apperrors.Unauthenticated("current password is incorrect")
		}
	}

	// 5. Hash and store the new password
	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		us.log.Error("Failed to hash password", zap.Error(err))
		return err
	}
	user.PasswordHash = hashed
	user.UpdatedAt = time.Now()

	if err := us.repo.User.Update(ctx, user); err != nil {
		us.log.Error("Failed to update password", zap.Error(err), zap.String("user_id", targetID))
		return err
	}

	// 6. Revoke existing sessions so old tokens stop working
	if err := us.repo.Session.RevokeAllUserSessions(ctx, user.ID); err != nil {
		us.log.Warn("Failed to revoke sessions after password change",
			zap.Error(err), zap.String("user_id", targetID))
	}

	us.log.Info("Password changed", zap.String("user_id", user.ID.String()))
	return nil
}

func (us *userService) DeleteUser(ctx context.Context, targetID string, actor authz.Actor) error {
	id, err := uuid.Parse(targetID)
	if err != nil {
		return apperrors.Validation("invalid user ID")
	}

	// 1. Find target user
	user, err := us.repo.User.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to find user", zap.Error(err), zap.String("user_id", targetID))
		return err
	}
	if user == nil {
		return apperrors.NotFound("user not found")
	}

	// 2. Authorization
	if !authz.Can(actor, authz.ActionDelete, authz.Resource{Type: authz.ResourceUser, OwnerID: user.ID}) {
		us.log.Warn("Delete user denied",
			zap.String("actor_id", actor.ID.String()),
			zap.String("user_id", targetID))
		return apperrors.Forbidden("not allowed to delete this user")
	}

	// 3. Cascade delete: sessions, reviews, owned movies, then the user
	if err := us.repo.User.DeleteCascade(ctx, id); err != nil {
		us.log.Error("Failed to delete user", zap.Error(err), zap.String("user_id", targetID))
		return err
	}

	us.log.Info("User deleted", zap.String("user_id", targetID))
	return nil
}
