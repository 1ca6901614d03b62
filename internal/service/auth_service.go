package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/assignment-tracker/internal/dto"
	"github.com/noah-isme/assignment-tracker/internal/models"
	"github.com/noah-isme/assignment-tracker/internal/repository"
)

// SessionClaims is the payload of issued bearer tokens.
type SessionClaims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService implements the mock login. Any credentials are accepted; the session only
// decides which views a caller can reach.
type AuthService interface {
	Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (dto.SessionResponse, error)
}

type authService struct {
	sessions  repository.SessionRepository
	students  repository.StudentRepository
	validator *validator.Validate
	secret    []byte
	ttl       time.Duration
	issuer    string
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService constructs the session service.
func NewAuthService(sessions repository.SessionRepository, students repository.StudentRepository, validate *validator.Validate, secret string, ttl time.Duration, issuer string, logger zerolog.Logger) AuthService {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}

	return &authService{
		sessions:  sessions,
		students:  students,
		validator: validate,
		secret:    []byte(secret),
		ttl:       ttl,
		issuer:    issuer,
		logger:    logger.With().Str("component", "auth_service").Logger(),
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LoginResponse{}, err
	}

	email := strings.TrimSpace(payload.Email)
	id := uuid.NewString()
	if payload.Role == models.RoleStudent {
		student, err := s.students.GetByEmail(ctx, email)
		switch {
		case err == nil:
			id = student.ID
		case !errors.Is(err, repository.ErrNotFound):
			return dto.LoginResponse{}, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.LoginResponse{}, fmt.Errorf("hash password: %w", err)
	}

	session := models.SessionUser{
		Email:    email,
		Password: string(hash),
		Role:     payload.Role,
		ID:       id,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return dto.LoginResponse{}, err
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := SessionClaims{
		Role:  session.Role,
		Email: session.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.ID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return dto.LoginResponse{}, fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info().Str("user_id", session.ID).Str("role", session.Role).Msg("session started")

	return dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.UTC(),
		User:      newSessionResponse(session),
	}, nil
}

func (s *authService) Logout(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}

func (s *authService) Me(ctx context.Context) (dto.SessionResponse, error) {
	session, err := s.sessions.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.SessionResponse{}, ErrNoSession
		}
		return dto.SessionResponse{}, err
	}
	return newSessionResponse(session), nil
}

func newSessionResponse(session models.SessionUser) dto.SessionResponse {
	return dto.SessionResponse{ID: session.ID, Email: session.Email, Role: session.Role}
}
