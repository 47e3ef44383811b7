package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"merx/internal/core/apperror"
	"merx/internal/core/id"
	"merx/pkg/logger"
)

const (
	maxFailedLogins = 5
	lockDuration    = 15 * time.Minute
)

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"user"`
}

// Service handles authentication.
type Service struct {
	repo Repository
	jwt  *JWTService
}

// NewService creates a new auth service.
func NewService(repo Repository, jwtService *JWTService) *Service {
	return &Service{repo: repo, jwt: jwtService}
}

// Login authenticates by email and password and issues an access token.
// Failed attempts count toward a temporary lockout.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			// same error as a wrong password, no account probing
			return nil, apperror.NewUnauthorized("invalid email or password")
		}
		return nil, err
	}

	if err := user.CanLogin(); err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		user.RecordFailedLogin(maxFailedLogins, lockDuration)
		if updateErr := s.repo.Update(ctx, user); updateErr != nil {
			logger.Warn(ctx, "record failed login", "error", updateErr)
		}
		return nil, apperror.NewUnauthorized("invalid email or password")
	}

	user.RecordSuccessfulLogin()
	if err := s.repo.Update(ctx, user); err != nil {
		logger.Warn(ctx, "record successful login", "error", err)
	}

	token, expiresAt, err := s.jwt.GenerateAccessToken(user)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "user logged in", "user_id", user.ID, "email", user.Email)

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}

// GetByID retrieves a user by ID.
func (s *Service) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

// CreateUser registers a user with a bcrypt-hashed password.
func (s *Service) CreateUser(ctx context.Context, email, password, name string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewDuplicate("user", "email", email)
	}

	if len(password) < 8 {
		return nil, apperror.NewValidation("password must be at least 8 characters").
			WithDetail("field", "password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := NewUser(email, string(hash), role)
	user.Name = name
	if err := user.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
