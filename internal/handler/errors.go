package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"marketAPI/internal/repository"
	"marketAPI/internal/service"
	"marketAPI/internal/storage"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeServiceError maps domain errors to their status and public message.
func writeServiceError(w http.ResponseWriter, err error) {
	var unique *repository.UniqueViolationError

	switch {
	case errors.As(err, &unique):
		writeError(w, unique.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, "Incorrect username or password", http.StatusBadRequest)
	case errors.Is(err, service.ErrTooManyImages):
		writeError(w, "Maximum of 3 images allowed", http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidToken):
		writeError(w, "You are not logged in", http.StatusUnauthorized)
	case errors.Is(err, service.ErrNotAuthor):
		writeError(w, "You are not the author", http.StatusUnauthorized)
	case errors.Is(err, repository.ErrUserNotFound):
		writeError(w, "You are not logged in", http.StatusUnauthorized)
	case errors.Is(err, repository.ErrReceiverNotFound):
		writeError(w, "Receiver not found", http.StatusBadRequest)
	case errors.Is(err, repository.ErrCategoryNotFound):
		writeError(w, "Category not found", http.StatusBadRequest)
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, notFoundMessage(err), http.StatusNotFound)
	case errors.Is(err, storage.ErrUpload):
		log.Printf("ERROR: %v", err)
		writeError(w, "Image upload error", http.StatusInternalServerError)
	case errors.Is(err, storage.ErrDelete):
		log.Printf("ERROR: %v", err)
		writeError(w, "Image deletion error", http.StatusInternalServerError)
	default:
		log.Printf("ERROR: %v", err)
		writeError(w, "Internal server error", http.StatusInternalServerError)
	}
}

func notFoundMessage(err error) string {
	var notFound *repository.NotFoundError
	if !errors.As(err, &notFound) || notFound.Entity == "" {
		return "Not found"
	}
	return strings.ToUpper(notFound.Entity[:1]) + notFound.Entity[1:] + " not found"
}

// validationMessage renders the first failed rule of a validator error.
func validationMessage(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err.Error()
	}

	fe := errs[0]
	field := fmt.Sprintf("%q", fe.Field())
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		if isString {
			return fmt.Sprintf("%s length must be at least %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("%s length must be less than or equal to %s characters long", field, fe.Param())
		}
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	}

	return fmt.Sprintf("%s is invalid", field)
}
