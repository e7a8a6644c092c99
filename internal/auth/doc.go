// Package auth issues and validates API access tokens.
//
// Slotboard serves one dashboard to trusted hosts, so the model is
// deliberately small: HS256 tokens signed with the shared secret from
// configuration, identifying a named client. There are no user accounts,
// roles or refresh tokens; a compromised token expires on its own and the
// secret can be rotated in configuration.
package auth
