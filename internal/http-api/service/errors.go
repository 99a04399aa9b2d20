package service

import "errors"

// Sentinel errors for the request boundary. Handlers classify with
// errors.Is and shape the fail envelope; everything else is treated as
// an unexpected fault.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
	ErrValidation         = errors.New("validation failed")
	ErrNameInUse          = errors.New("username already in use")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("wrong username or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
	ErrUserBanned         = errors.New("user is banned")
	ErrWrongCode          = errors.New("wrong or expired verification code")
)
