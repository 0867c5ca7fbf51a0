package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"marketAPI/internal/models"
)

const summaryColumns = `product_id, title, description, price, images[1] AS image, location, listed`

// ProductFilter narrows a listing. Nil fields are not applied; all set
// fields are AND-ed.
type ProductFilter struct {
	Query      *string
	CategoryID *int
	UserID     *int
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching q as a literal,
// lower-cased substring.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"
}

// where renders the filter as a WHERE clause whose placeholders start at $1.
func (f ProductFilter) where() (string, []any) {
	var conds []string
	var args []any

	if f.Query != nil {
		args = append(args, containsPattern(*f.Query))
		n := len(args)
		conds = append(conds, fmt.Sprintf("(LOWER(title) LIKE $%d OR LOWER(description) LIKE $%d)", n, n))
	}
	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		conds = append(conds, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if f.UserID != nil {
		args = append(args, *f.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type productRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Random(ctx context.Context, limit int) ([]models.ProductSummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM product ORDER BY random() LIMIT $1`

	products := []models.ProductSummary{}
	if err := r.db.SelectContext(ctx, &products, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get random products: %w", err)
	}

	return products, nil
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter, limit, offset int) ([]models.ProductSummary, error) {
	where, args := filter.where()
	query := fmt.Sprintf(`SELECT %s FROM product%s ORDER BY listed DESC, product_id DESC LIMIT $%d OFFSET $%d`,
		summaryColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	products := []models.ProductSummary{}
	if err := r.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

func (r *productRepository) Count(ctx context.Context, filter ProductFilter) (int, error) {
	where, args := filter.where()
	query := `SELECT COUNT(product_id) FROM product` + where

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}

func (r *productRepository) GetByID(ctx context.Context, productID int) (*models.ProductDetail, error) {
	query := `
		SELECT product.product_id, product.title, product.description, product.price, product.images,
			product.listed, product.location, app_user.user_id, app_user.username, category.name AS category
		FROM product
		JOIN category ON product.category_id = category.category_id
		JOIN app_user ON product.user_id = app_user.user_id
		WHERE product.product_id = $1
	`

	var product models.ProductDetail
	if err := r.db.GetContext(ctx, &product, query, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

func (r *productRepository) GetOwnerID(ctx context.Context, productID int) (int, error) {
	var ownerID int
	if err := r.db.GetContext(ctx, &ownerID, `SELECT user_id FROM product WHERE product_id = $1`, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrProductNotFound
		}
		return 0, fmt.Errorf("failed to get product owner: %w", err)
	}

	return ownerID, nil
}

func (r *productRepository) GetImages(ctx context.Context, productID int) ([]string, error) {
	var images pq.StringArray
	if err := r.db.GetContext(ctx, &images, `SELECT images FROM product WHERE product_id = $1`, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product images: %w", err)
	}

	return images, nil
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO product (user_id, category_id, title, description, price, images, listed, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING product_id
	`

	if product.Listed.IsZero() {
		product.Listed = time.Now()
	}
	if product.Images == nil {
		product.Images = pq.StringArray{}
	}

	err := r.db.QueryRowxContext(ctx, query,
		product.UserID,
		product.CategoryID,
		product.Title,
		product.Description,
		product.Price,
		product.Images,
		product.Listed,
		product.Location,
	).Scan(&product.ProductID)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", mapStoreError("product", err))
	}

	return nil
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE product
		SET title = $2, category_id = $3, description = $4, price = $5, location = $6, images = $7
		WHERE product_id = $1
	`

	if product.Images == nil {
		product.Images = pq.StringArray{}
	}

	result, err := r.db.ExecContext(ctx, query,
		product.ProductID,
		product.Title,
		product.CategoryID,
		product.Description,
		product.Price,
		product.Location,
		product.Images,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", mapStoreError("product", err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes the product and returns the image URLs it held.
func (r *productRepository) Delete(ctx context.Context, productID int) ([]string, error) {
	var images pq.StringArray
	err := r.db.GetContext(ctx, &images, `DELETE FROM product WHERE product_id = $1 RETURNING images`, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	return images, nil
}
