package auth

import "errors"

var (
	// ErrTokenInvalid indicates a token failed signature, expiry or shape
	// validation.
	ErrTokenInvalid = errors.New("auth: token invalid")

	// ErrClientEmpty indicates a token was requested without a client name.
	ErrClientEmpty = errors.New("auth: client name required")
)
