package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Lloyd952/horror-haven/internal/dto"
	"github.com/Lloyd952/horror-haven/internal/model"
	"github.com/Lloyd952/horror-haven/internal/repository"
	"github.com/Lloyd952/horror-haven/pkg/apperror"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MaxUsernameLength caps usernames on the registration path. The column
// itself allows longer names for administrative accounts.
const MaxUsernameLength = 12

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*model.User, error)
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	sessionTTL  time.Duration
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, sessionTTL time.Duration) AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 14 * 24 * time.Hour
	}

	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
	}
}

func (s *authService) Register(ctx context.Context, input dto.RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, apperror.Validation("username is required")
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return nil, apperror.Validation(fmt.Sprintf("username must be %d characters or fewer", MaxUsernameLength))
	}
	if input.Password != input.Password2 {
		return nil, apperror.Validation("passwords don't match")
	}

	count, err := s.userRepo.CountByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperror.Conflict("username already taken")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(401, "invalid credentials", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.New(401, "invalid credentials", apperror.ErrUnauthorized)
	}

	expiresAt := time.Now().Add(s.sessionTTL)
	session := &model.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	user.PasswordHash = ""

	return &dto.AuthResponse{
		Token:     session.Token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.sessionTTL.Seconds()),
		User:      user,
	}, nil
}

// Logout deletes the session row. Unknown or empty tokens are fine:
// logging out twice never errors.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.Delete(ctx, token)
}
