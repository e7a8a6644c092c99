// Package mqtt provides the MQTT client for the hub change-event feed.
//
// The hub side publishes a message whenever the entity registry or an
// entry's slot metadata changes; Slotboard subscribes and invalidates its
// render cache so the next request refetches over the websocket. The feed
// is advisory: a missed message only delays an invalidation, it never
// corrupts state.
//
// Topic layout:
//
//	slotboard/hub/registry      registry-wide changes
//	slotboard/hub/entries/+     per-entry changes
//	slotboard/system/status     this service's online/offline status (retained)
//
// The client reconnects automatically with exponential backoff and
// restores its subscriptions on reconnect.
package mqtt
