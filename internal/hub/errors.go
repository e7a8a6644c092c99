package hub

import "errors"

// Domain errors for the hub package.
var (
	// ErrAuthFailed is returned when the hub rejects the access token.
	ErrAuthFailed = errors.New("hub: authentication failed")

	// ErrEntryNotFound is returned when the hub has no config entry for
	// the requested ID or title.
	ErrEntryNotFound = errors.New("hub: config entry not found")

	// ErrClosed is returned when a call is made on a closed client.
	ErrClosed = errors.New("hub: client closed")

	// ErrCommandFailed is returned when the hub reports a command failure
	// with no more specific mapping.
	ErrCommandFailed = errors.New("hub: command failed")
)
