package test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"marketAPI/internal/models"
	"marketAPI/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req service.RegisterRequest) (*models.User, *service.Token, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*service.Token), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*models.User, *service.Token, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*service.Token), args.Error(2)
}

func (m *MockAuthService) IssueToken(userID int) (*service.Token, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Token), args.Error(1)
}

func (m *MockAuthService) VerifyToken(tokenString string) (int, error) {
	args := m.Called(tokenString)
	return args.Int(0), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, userID int) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Random(ctx context.Context) ([]models.ProductSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProductSummary), args.Error(1)
}

func (m *MockProductService) List(ctx context.Context, req service.PageRequest) (*models.ProductPage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductPage), args.Error(1)
}

func (m *MockProductService) ListByCategory(ctx context.Context, categoryID int, req service.PageRequest) (*models.ProductPage, error) {
	args := m.Called(ctx, categoryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductPage), args.Error(1)
}

func (m *MockProductService) Search(ctx context.Context, query string, categoryID *int, req service.PageRequest) (*models.ProductPage, error) {
	args := m.Called(ctx, query, categoryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductPage), args.Error(1)
}

func (m *MockProductService) ListByUser(ctx context.Context, userID int, req service.PageRequest) (*models.ProductPage, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductPage), args.Error(1)
}

func (m *MockProductService) GetOne(ctx context.Context, productID int, viewer models.Viewer) (*models.ProductDetail, error) {
	args := m.Called(ctx, productID, viewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductDetail), args.Error(1)
}

func (m *MockProductService) CheckAuthor(ctx context.Context, productID, userID int) error {
	args := m.Called(ctx, productID, userID)
	return args.Error(0)
}

func (m *MockProductService) Create(ctx context.Context, req service.CreateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, req service.UpdateProductRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockProductService) Delete(ctx context.Context, productID, userID int) error {
	args := m.Called(ctx, productID, userID)
	return args.Error(0)
}

type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) Send(ctx context.Context, req service.SendMessageRequest) (*models.Message, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
