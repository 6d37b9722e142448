package service

import "errors"

var (
	// ErrBadInput reports a malformed id, recipe body or search combination
	ErrBadInput = errors.New("bad input")
	// ErrNotFound reports that no recipe has the requested id
	ErrNotFound = errors.New("recipe not found")
	// ErrForbidden reports that the caller does not own the recipe
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthorized reports missing or invalid credentials
	ErrUnauthorized = errors.New("invalid credentials")
	// ErrUserExists reports a registration for an email already in use
	ErrUserExists = errors.New("user already exists")
)
