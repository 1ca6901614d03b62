package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/assignment-tracker/internal/dto"
	"github.com/noah-isme/assignment-tracker/internal/models"
)

func TestAuthServiceStudentLoginUsesRosterID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	student := f.addStudent(t, "Ada", "ada@example.com")

	svc := NewAuthService(f.sessions, f.students, NewValidator(), "secret", time.Hour, "tracker", testLogger())

	resp, err := svc.Login(ctx, dto.LoginRequest{Email: "ADA@example.com", Password: "pw", Role: models.RoleStudent})
	require.NoError(t, err)
	require.Equal(t, student.ID, resp.User.ID)
	require.NotEmpty(t, resp.Token)

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(resp.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	require.Equal(t, student.ID, claims.Subject)
	require.Equal(t, models.RoleStudent, claims.Role)

	stored, err := f.sessions.Get(ctx)
	require.NoError(t, err)
	require.NotEqual(t, "pw", stored.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("pw")))

	me, err := svc.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, resp.User, me)

	require.NoError(t, svc.Logout(ctx))
	_, err = svc.Me(ctx)
	require.ErrorIs(t, err, ErrNoSession)
}

func TestAuthServiceUnknownStudentGetsFreshID(t *testing.T) {
	f := newFixture(t)
	svc := NewAuthService(f.sessions, f.students, NewValidator(), "secret", time.Hour, "tracker", testLogger())

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Email: "new@example.com", Password: "pw", Role: models.RoleStudent})
	require.NoError(t, err)
	require.NotEmpty(t, resp.User.ID)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "not-an-email", Password: "pw", Role: models.RoleAdmin})
	require.Error(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: "a@b.co", Password: "pw", Role: "guest"})
	require.Error(t, err)
}
