package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"marketAPI/internal/config"
	"marketAPI/internal/models"
	"marketAPI/internal/repository"
)

type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

// Token is a signed access token together with its expiry instant.
type Token struct {
	Token   string
	Expires time.Time
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.User, *Token, error)
	Login(ctx context.Context, email, password string) (*models.User, *Token, error)
	IssueToken(userID int) (*Token, error)
	VerifyToken(tokenString string) (int, error)
	Me(ctx context.Context, userID int) (*models.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*models.User, *Token, error) {
	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Joined:   s.now(),
	}

	if err := s.userRepo.CreateUser(ctx, user, req.Password); err != nil {
		return nil, nil, err
	}

	token, err := s.IssueToken(user.UserID)
	if err != nil {
		return nil, nil, err
	}

	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*models.User, *Token, error) {
	user, err := s.userRepo.VerifyPassword(ctx, email, password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrWrongPassword) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("failed to verify password: %w", err)
	}

	token, err := s.IssueToken(user.UserID)
	if err != nil {
		return nil, nil, err
	}

	return user, token, nil
}

// IssueToken signs an HS256 token whose subject is the decimal user id.
func (s *authService) IssueToken(userID int) (*Token, error) {
	issued := s.now()
	expires := issued.Add(s.cfg.TokenDuration)

	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Token{Token: tokenString, Expires: expires}, nil
}

// VerifyToken checks signature and expiry and returns the user id from the
// subject claim. Every failure collapses into ErrInvalidToken.
func (s *authService) VerifyToken(tokenString string) (int, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return userID, nil
}

func (s *authService) Me(ctx context.Context, userID int) (*models.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}
