package service

import (
	"context"

	"marketAPI/internal/models"
	"marketAPI/internal/repository"
)

type CategoryService interface {
	List(ctx context.Context) ([]models.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (c *categoryService) List(ctx context.Context) ([]models.Category, error) {
	return c.categoryRepo.List(ctx)
}
