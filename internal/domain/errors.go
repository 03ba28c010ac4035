package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("Invalid login credentials") //nolint:staticcheck // shown verbatim on the login form
	ErrUserInactive       = errors.New("User is inactive")          //nolint:staticcheck // shown verbatim on the login form
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrRateLimited        = errors.New("too many requests")
	ErrUnsupportedExport  = errors.New("unsupported export format")
)
