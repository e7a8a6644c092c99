package mqtt

import (
	"fmt"
	"strings"
)

// Topic prefixes. Hub-side bridges publish change events under
// slotboard/hub/...; the service itself publishes lifecycle status under
// slotboard/system/....
const (
	// TopicPrefixHub is the base for hub change-event topics.
	TopicPrefixHub = "slotboard/hub"

	// TopicPrefixSystem is the base for service lifecycle topics.
	TopicPrefixSystem = "slotboard/system"
)

// Topics provides builders for Slotboard MQTT topics. Using these helpers
// keeps topic naming consistent between the service and the hub-side
// publisher.
type Topics struct{}

// HubRegistry returns the topic for registry-wide change events (entities
// added, removed or renamed).
//
// Example: slotboard/hub/registry
func (Topics) HubRegistry() string {
	return fmt.Sprintf("%s/registry", TopicPrefixHub)
}

// HubEntry returns the topic for one entry's change events (slot metadata
// or code changes).
//
// Example: slotboard/hub/entries/abc123
func (Topics) HubEntry(entryID string) string {
	return fmt.Sprintf("%s/entries/%s", TopicPrefixHub, entryID)
}

// AllHubEntries returns a pattern matching every entry's change events.
//
// Pattern: slotboard/hub/entries/+
func (Topics) AllHubEntries() string {
	return fmt.Sprintf("%s/entries/+", TopicPrefixHub)
}

// EntryIDFromTopic extracts the entry ID from a per-entry change topic.
// Returns "" for topics outside the entries hierarchy, including deeper
// subtopics that a wildcard subscription would not match anyway.
func EntryIDFromTopic(topic string) string {
	id, ok := strings.CutPrefix(topic, TopicPrefixHub+"/entries/")
	if !ok || id == "" || strings.Contains(id, "/") {
		return ""
	}
	return id
}

// SystemStatus returns the service status topic.
//
// Example: slotboard/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}
