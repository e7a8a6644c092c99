// Package dashboard orchestrates render passes.
//
// It sits between the transport layers and the pure strategy engine:
//
//	api ──► dashboard.Service ──► hub (websocket)
//	                │                  │ fetch registry + metadata + locks
//	                │                  ▼
//	                ├──────────► snapshot store (fallback replay)
//	                │
//	                └──────────► strategy (decode / sort / classify / assemble)
//
// A render pass is all or nothing. Fresh hub data and stored snapshots are
// never mixed in one tree: when any part of the fetch fails, the whole
// pass falls back to the snapshot store, and when that cannot satisfy the
// request either, the caller gets a terminal error view. Every failure
// mode maps to a well-formed tree, so the HTTP layer never has to invent
// one.
//
// The service keeps one in-memory tree for the configured default options,
// caching only complete hub-sourced renders; placeholder, error and
// snapshot-backed trees are transient and re-evaluated on every request.
// MQTT registry notifications call Invalidate to drop the cache, per-entry
// notifications call InvalidateEntry to also evict that entry's snapshot,
// and an explicit refresh clears the whole snapshot store.
package dashboard
