package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketAPI/internal/config"
	"marketAPI/internal/models"
	"marketAPI/internal/repository"
)

func newTestAuthService(now time.Time) (*authService, *MockUserRepository) {
	userRepo := new(MockUserRepository)
	cfg := &config.Config{
		JWTSecretKey:  "test-secret-key",
		TokenDuration: 7 * 24 * time.Hour,
	}

	svc := NewAuthService(userRepo, cfg).(*authService)
	svc.now = func() time.Time { return now }
	return svc, userRepo
}

func TestAuthService_IssueAndVerifyToken(t *testing.T) {
	now := time.Now()
	svc, _ := newTestAuthService(now)

	token, err := svc.IssueToken(42)
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.WithinDuration(t, now.Add(7*24*time.Hour), token.Expires, time.Second)

	userID, err := svc.VerifyToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestAuthService_VerifyToken_Expired(t *testing.T) {
	issued := time.Now().Add(-8 * 24 * time.Hour)
	svc, _ := newTestAuthService(issued)

	token, err := svc.IssueToken(1)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.VerifyToken(token.Token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_VerifyToken_Rejects(t *testing.T) {
	svc, _ := newTestAuthService(time.Now())

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	foreignToken, err := foreign.SignedString([]byte("another-secret"))
	require.NoError(t, err)

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "1"})
	noExpiryToken, err := noExpiry.SignedString([]byte("test-secret-key"))
	require.NoError(t, err)

	badSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	badSubjectToken, err := badSubject.SignedString([]byte("test-secret-key"))
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":      "not-a-token",
		"empty":        "",
		"wrong secret": foreignToken,
		"no expiry":    noExpiryToken,
		"bad subject":  badSubjectToken,
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.VerifyToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	svc, userRepo := newTestAuthService(time.Now())
	ctx := context.Background()

	userRepo.On("CreateUser", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Username == "alice" && u.Email == "alice@example.com"
	}), "password123").Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*models.User).UserID = 9
	})

	user, token, err := svc.Register(ctx, RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.Equal(t, 9, user.UserID)
	assert.False(t, user.Joined.IsZero())

	userID, err := svc.VerifyToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, 9, userID)
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, userRepo := newTestAuthService(time.Now())
	ctx := context.Background()

	userRepo.On("CreateUser", ctx, mock.Anything, "password123").
		Return(&repository.UniqueViolationError{Field: "email"})

	_, _, err := svc.Register(ctx, RegisterRequest{Username: "alice", Email: "a@b.c", Password: "password123"})

	var unique *repository.UniqueViolationError
	require.ErrorAs(t, err, &unique)
	assert.Equal(t, "email", unique.Field)
}

func TestAuthService_Login(t *testing.T) {
	svc, userRepo := newTestAuthService(time.Now())
	ctx := context.Background()

	userRepo.On("VerifyPassword", ctx, "alice@example.com", "password123").
		Return(&models.User{UserID: 3, Username: "alice"}, nil)

	user, token, err := svc.Login(ctx, "alice@example.com", "password123")

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, token.Token)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, userRepo := newTestAuthService(time.Now())
	ctx := context.Background()

	userRepo.On("VerifyPassword", ctx, "nobody@example.com", "x").Return(nil, repository.ErrUserNotFound)
	userRepo.On("VerifyPassword", ctx, "alice@example.com", "wrong").Return(nil, repository.ErrWrongPassword)
	userRepo.On("VerifyPassword", ctx, "down@example.com", "x").Return(nil, errors.New("connection reset"))

	_, _, err := svc.Login(ctx, "nobody@example.com", "x")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "down@example.com", "x")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Me(t *testing.T) {
	svc, userRepo := newTestAuthService(time.Now())
	ctx := context.Background()

	userRepo.On("GetUserByID", ctx, 3).Return(&models.User{UserID: 3, Username: "alice"}, nil)

	user, err := svc.Me(ctx, 3)

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}
