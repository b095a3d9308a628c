package domain

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalid       = errors.New("invalid value")
	ErrEmptyCart     = errors.New("cart is empty")
	ErrAlreadyVoted  = errors.New("already voted")
	ErrOrderClosed   = errors.New("order is in terminal status")
)
