package service

import (
	"context"
	"errors"
	"fmt"

	"safety_reports/internal/model"
	"safety_reports/internal/repository"
	"safety_reports/internal/utils"

	"go.uber.org/zap"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthService provides account and credential related services
type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.Profile, error)
	Login(ctx context.Context, req model.LoginRequest) (string, error)
	GetProfile(ctx context.Context, userID int) (*model.Profile, error)
	UpdateProfile(ctx context.Context, userID int, req model.UpdateProfileRequest) (*model.Profile, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwtUtil  *utils.JWTUtil
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, jwtUtil *utils.JWTUtil, logger *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		jwtUtil:  jwtUtil,
		logger:   logger,
	}
}

// Register creates a new user account
func (s *authService) Register(ctx context.Context, req model.RegisterRequest) (*model.Profile, error) {
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user in repository: %w", err)
	}

	s.logger.Info("User registered", zap.Int("user_id", user.ID))
	return user.Profile(), nil
}

// Login authenticates a user and returns a signed token. Unknown email and
// wrong password produce the same error so callers cannot tell which one failed.
func (s *authService) Login(ctx context.Context, req model.LoginRequest) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		return "", ErrInvalidCredentials // User not found
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return "", ErrInvalidCredentials // Password mismatch
	}

	token, err := s.jwtUtil.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User logged in", zap.Int("user_id", user.ID))
	return token, nil
}

// GetProfile returns the non-secret fields of a user
func (s *authService) GetProfile(ctx context.Context, userID int) (*model.Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user.Profile(), nil
}

// UpdateProfile applies partial profile changes, re-hashing the password if one is supplied
func (s *authService) UpdateProfile(ctx context.Context, userID int, req model.UpdateProfileRequest) (*model.Profile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user for update: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != user.Email {
		existing, err := s.userRepo.FindByEmail(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email availability: %w", err)
		}
		if existing != nil {
			return nil, ErrEmailTaken
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		hashedPassword, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hashedPassword
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user in repository: %w", err)
	}

	s.logger.Info("User profile updated", zap.Int("user_id", user.ID))
	return user.Profile(), nil
}
