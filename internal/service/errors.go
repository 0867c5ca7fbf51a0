package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotAuthor          = errors.New("you are not the author")
	ErrTooManyImages      = errors.New("maximum of 3 images allowed")
)
