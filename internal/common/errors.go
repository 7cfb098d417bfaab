// Package common defines shared constants and sentinel errors used across
// the server and the CLI client. Callers should use errors.Is to match these
// values.
package common

import (
	"errors"
	"fmt"
)

var (

	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// service specific errors
	ErrorInternal      = errors.New("internal error")
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrorAlreadyExists = errors.New("already exists")
	ErrorValidation    = errors.New("validation error")

	// ErrStoreUnavailable is returned instead of raw driver errors.
	ErrStoreUnavailable = fmt.Errorf("%w: store unavailable", ErrorInternal)

	// credential-specific errors
	ErrInvalidUsername    = fmt.Errorf("%w: username contains invalid characters", ErrorValidation)
	ErrInvalidEmail       = fmt.Errorf("%w: invalid email", ErrorValidation)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrorUnauthorized)

	// token-specific errors
	ErrMalformedHeader = fmt.Errorf("%w: invalid authorization header", ErrorUnauthorized)
	ErrTokenNotFound   = fmt.Errorf("%w: invalid or expired token", ErrorUnauthorized)
	ErrBadSignature    = fmt.Errorf("%w: invalid token", ErrorUnauthorized)
	ErrOrphanedToken   = fmt.Errorf("%w: user connected to this token does not exist", ErrorUnauthorized)
	ErrTokenExpired    = fmt.Errorf("%w: token expired", ErrorUnauthorized)
	ErrUserVanished    = fmt.Errorf("%w: user no longer exists", ErrorUnauthorized)

	ErrRateLimited = errors.New("too many requests")
)
