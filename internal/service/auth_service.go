package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"secaware/internal/auth"
	apperrors "secaware/internal/errors"
	"secaware/internal/model"
	"secaware/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// A missing account and a wrong password are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidSession is returned when a session token cannot be parsed.
	ErrInvalidSession = errors.New("invalid session token")
)

// RegisterInput carries the registration profile fields.
type RegisterInput struct {
	FullName   string
	Email      string
	Password   string
	Department string
	JobRole    string
}

// AuthService handles registration, login, and session termination.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
	sessions auth.SessionStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenService, sessions auth.SessionStoreInterface) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		sessions: sessions,
	}
}

// Register creates a new user with a hashed password and the fixed role "user".
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
		Department:   in.Department,
		JobRole:      in.JobRole,
		Role:         model.RoleUser,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent registration can slip past the pre-check; the unique
		// index on email is authoritative and reads as the same conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and establishes a session. The returned token
// carries a role snapshot taken now; the session id is registered server-side.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	sessionID, token, err := s.tokens.Generate(user)
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}

	if err := s.sessions.Create(ctx, sessionID, user.ID, user.Email, auth.SessionTTL); err != nil {
		return "", nil, fmt.Errorf("register session: %w", err)
	}

	return token, user, nil
}

// Logout removes the session from the registry. Terminating an already dead
// session is not an error.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return ErrInvalidSession
	}
	return s.sessions.Delete(ctx, claims.ID)
}
