package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrAuthDisabled indicates a token operation was attempted while no
	// signing secret is configured
	ErrAuthDisabled = errors.New("authentication is not enabled")

	// ErrEmptyCredentials indicates a login attempt with an empty or
	// whitespace-only username or password
	ErrEmptyCredentials = errors.New("empty credentials")
)
