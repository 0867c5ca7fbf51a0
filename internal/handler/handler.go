package handlers

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"marketAPI/internal/config"
	"marketAPI/internal/service"
)

// HealthChecker reports whether the database answers.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type Handlers struct {
	AuthService     service.AuthService
	ProductService  service.ProductService
	MessageService  service.MessageService
	CategoryService service.CategoryService
	DB              HealthChecker
	Cfg             *config.Config
	Validate        *validator.Validate
}

func NewHandlers(service *service.Service, db HealthChecker, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:     service.Auth,
		ProductService:  service.Product,
		MessageService:  service.Message,
		CategoryService: service.Category,
		DB:              db,
		Cfg:             config,
		Validate:        NewValidator(),
	}
}

// NewValidator reports fields by their json or form names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return field.Name
	})
	return v
}
