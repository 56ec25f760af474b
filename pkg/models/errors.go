package models

import "errors"

// Common errors for account, message, and token operations.
var (
	// User errors
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateUser  = errors.New("user already exists")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrNoFreeUIN      = errors.New("no free uin available")

	// Message errors
	ErrMessageNotFound = errors.New("message not found")

	// Token errors
	ErrTokenNotFound  = errors.New("token not found or expired")
	ErrInvalidCaptcha = errors.New("captcha answer does not match")
)
