package hub

import "encoding/json"

// Message types used in the hub websocket protocol. The hub correlates
// command frames with result frames by numeric ID; auth frames carry no ID.
const (
	msgAuthRequired = "auth_required"
	msgAuth         = "auth"
	msgAuthOK       = "auth_ok"
	msgAuthInvalid  = "auth_invalid"
	msgResult       = "result"

	cmdConfigEntries = "config_entries/list"
	cmdRegistryList  = "entity_registry/list"
	cmdEntryMetadata = "access_control/entry_metadata"
	cmdLockList      = "access_control/lock_list"
	cmdResourceList  = "lovelace/resources"
	cmdCoreState     = "core/state"
)

// frame is the wire representation of every hub message, inbound and
// outbound. Unused fields marshal away.
type frame struct {
	ID          int             `json:"id,omitempty"`
	Type        string          `json:"type"`
	AccessToken string          `json:"access_token,omitempty"`
	EntryID     string          `json:"entry_id,omitempty"`
	Message     string          `json:"message,omitempty"` // auth_invalid detail
	Success     *bool           `json:"success,omitempty"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       *frameError     `json:"error,omitempty"`
}

// frameError is the structured error a failed command carries.
type frameError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ConfigEntry is one access-control configuration entry as listed by the
// hub.
type ConfigEntry struct {
	EntryID string `json:"entry_id"`
	Title   string `json:"title"`
}

// resource is one row of the hub's dashboard resource list.
type resource struct {
	URL string `json:"url"`
}

// coreState is the hub's lifecycle state response.
type coreState struct {
	State string `json:"state"` // "starting" or "running"
}

// errorCodeNotFound is the hub error code for a missing config entry.
const errorCodeNotFound = "not_found"
