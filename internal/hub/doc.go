// Package hub is the websocket client for the smart-home hub that owns
// the entity registry and the access-control integration's metadata.
//
// The protocol is a JSON command API over one websocket connection: an
// auth handshake (auth_required → auth → auth_ok), then numbered command
// frames answered by result frames carrying the same ID. The client
// multiplexes concurrent calls over the connection and fans out per-entry
// fetches with an errgroup, awaiting all of them before returning.
//
// Deliberately absent: retries, backoff and partial results. A fetch
// either succeeds whole or fails whole, and connection loss fails every
// pending call. The dashboard service layers its own fallback (the
// snapshot store) on top; this package stays a thin, honest transport.
package hub
