package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// ErrNotFound is returned when the referenced row does not exist.
var ErrNotFound = errors.New("not found")

// NotFoundError names the missing entity. It matches ErrNotFound.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

var (
	ErrProductNotFound  = &NotFoundError{Entity: "product"}
	ErrUserNotFound     = &NotFoundError{Entity: "user"}
	ErrReceiverNotFound = &NotFoundError{Entity: "receiver"}
	ErrCategoryNotFound = &NotFoundError{Entity: "category"}
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// UniqueViolationError reports a duplicate value for a unique column.
type UniqueViolationError struct {
	Field string
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

// uniqueField extracts the column from a Postgres constraint name such as
// "app_user_email_key".
func uniqueField(table, constraint string) string {
	field := strings.TrimPrefix(constraint, table+"_")
	field = strings.TrimSuffix(field, "_key")
	if field == "" {
		return "value"
	}
	return field
}

// referencedEntity picks the missing entity from a foreign key constraint
// name such as "message_receiver_fkey".
func referencedEntity(table, constraint string) error {
	column := strings.TrimPrefix(constraint, table+"_")
	column = strings.TrimSuffix(column, "_fkey")

	switch column {
	case "product_id":
		return ErrProductNotFound
	case "receiver":
		return ErrReceiverNotFound
	case "category_id":
		return ErrCategoryNotFound
	}
	return ErrUserNotFound
}

// mapStoreError translates driver errors into repository errors.
func mapStoreError(table string, err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case pgUniqueViolation:
		return &UniqueViolationError{Field: uniqueField(table, pqErr.Constraint)}
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %s", referencedEntity(table, pqErr.Constraint), pqErr.Constraint)
	}

	return err
}
