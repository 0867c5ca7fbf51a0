package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"marketAPI/internal/models"
)

// ErrWrongPassword is returned by VerifyPassword when the hash does not match.
var ErrWrongPassword = errors.New("wrong password")

const passwordCost = 12

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	// create password hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hashedPassword)
	if user.Joined.IsZero() {
		user.Joined = time.Now()
	}

	query := `
		INSERT INTO app_user (username, email, password, joined)
		VALUES ($1, $2, $3, $4)
		RETURNING user_id
	`

	err = r.db.QueryRowxContext(ctx, query, user.Username, user.Email, user.PasswordHash, user.Joined).
		Scan(&user.UserID)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", mapStoreError("app_user", err))
	}

	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int) (*models.User, error) {
	var user models.User

	query := `SELECT user_id, username, email, password, joined FROM app_user WHERE user_id = $1`

	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := `SELECT user_id, username, email, password, joined FROM app_user WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

func (r *userRepository) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	// checking that the password hash is the same
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}

	return user, nil
}
