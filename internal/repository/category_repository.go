package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"marketAPI/internal/models"
)

type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}

	err := r.db.SelectContext(ctx, &categories, `SELECT category_id, name FROM category ORDER BY category_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return categories, nil
}
