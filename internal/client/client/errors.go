package client

import "errors"

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrAlreadyExists = errors.New("user already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrRateLimited   = errors.New("too many attempts, try again later")
	ErrNotLoggedIn   = errors.New("not logged in")
)
