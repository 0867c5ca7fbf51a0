package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"marketAPI/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID int) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
}

type ProductRepository interface {
	Random(ctx context.Context, limit int) ([]models.ProductSummary, error)
	List(ctx context.Context, filter ProductFilter, limit, offset int) ([]models.ProductSummary, error)
	Count(ctx context.Context, filter ProductFilter) (int, error)
	GetByID(ctx context.Context, productID int) (*models.ProductDetail, error)
	GetOwnerID(ctx context.Context, productID int) (int, error)
	GetImages(ctx context.Context, productID int) ([]string, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, productID int) ([]string, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	ListByProduct(ctx context.Context, productID int) ([]models.Message, error)
	ListThread(ctx context.Context, productID, ownerID, counterpartID int) ([]models.Message, error)
}

type Repository struct {
	User     UserRepository
	Category CategoryRepository
	Product  ProductRepository
	Message  MessageRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:     NewUserRepository(db),
		Category: NewCategoryRepository(db),
		Product:  NewProductRepository(db),
		Message:  NewMessageRepository(db),
	}
}
