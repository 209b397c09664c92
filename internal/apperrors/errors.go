package apperrors

import (
	"errors"
)

var (
	ErrInvalidToken         = errors.New("token is invalid or expired")
	ErrRevokedToken         = errors.New("token has been revoked")
	ErrAccessTokenRequired  = errors.New("access token required")
	ErrRefreshTokenRequired = errors.New("refresh token required")

	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")

	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrInsufficientPermissions = errors.New("insufficient permissions")

	// Declared for future login gating, no flow raises it yet
	ErrAccountNotVerified = errors.New("account not verified")

	// Password and its confirmation do not match
	ErrInvalidPassword = errors.New("passwords do not match")

	ErrBookNotFound = errors.New("book not found")

	ErrReviewNotFound = errors.New("review not found")

	ErrTagNotFound      = errors.New("tag not found")
	ErrTagAlreadyExists = errors.New("tag already exists")
)
