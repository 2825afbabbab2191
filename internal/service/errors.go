package service

import "errors"

var (
	ErrMissingFields        = errors.New("please provide name, email and password")
	ErrEmailTaken           = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAccountNotVerified   = errors.New("account not verified")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired token")
	ErrUnknownEmail         = errors.New("email does not exist")
	ErrResetTokenExpired    = errors.New("token has expired, request a new reset link")
	ErrResetTokenInvalid    = errors.New("invalid or expired token")
	ErrUserNotFound         = errors.New("user not found")
	ErrNameTaken            = errors.New("name already exists")
)
