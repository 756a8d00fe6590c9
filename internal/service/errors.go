package service

import "errors"

var (
	ErrCodeAlreadySent       = errors.New("confirmation code already sent")
	ErrCodeNotFound          = errors.New("confirmation code not found")
	ErrCodeNotValid          = errors.New("confirmation code invalid or expired")
	ErrRecreateWithoutCode   = errors.New("no existing confirmation code to recreate")
	ErrEmailAlreadyConfirmed = errors.New("email already confirmed")
	ErrPasswordMismatch      = errors.New("passwords do not match")
)
