package service

import (
	"marketAPI/internal/config"
	"marketAPI/internal/queue"
	"marketAPI/internal/repository"
	"marketAPI/internal/storage"
)

type Service struct {
	Auth     AuthService
	Product  ProductService
	Message  MessageService
	Category CategoryService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, publisher queue.Publisher) *Service {
	return &Service{
		Auth:     NewAuthService(rep.User, cfg),
		Product:  NewProductService(rep.Product, rep.Message, storage),
		Message:  NewMessageService(rep.Message, publisher),
		Category: NewCategoryService(rep.Category),
	}
}
