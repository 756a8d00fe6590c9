package domain

import "errors"

var (
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrNotFound       = errors.New("not found")

	ErrUserNotFound       = errors.New("user not found")
	ErrServiceUnavailable = errors.New("service unavailable")
)
