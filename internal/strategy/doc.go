// Package strategy implements the dashboard generation engine for
// Slotboard.
//
// The engine is a pure, synchronous transformation: given a registry
// snapshot, per-entry slot metadata and a configuration object, it
// reconstructs the logical structure of a multi-slot access-control
// integration (entry → code slot → role) and emits the nested
// view/section/card tree the host dashboard renderer consumes.
//
// # Architecture
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                      strategy engine                        │
//	│                                                             │
//	│  RawOptions ──▶ Resolve ──▶ Options                         │
//	│                               │                             │
//	│  RawEntity ──▶ Decode ──▶ Sort ──▶ ClassifyAll              │
//	│  (decode.go)   (order.go)          (classify.go)            │
//	│                               │                             │
//	│                               ▼                             │
//	│              Assemble (assemble.go) ──▶ Tree                │
//	│                                                             │
//	└─────────────────────────────────────────────────────────────┘
//
// # Key Types
//
//   - RawEntity: one registry row, carrying its compound unique key
//   - Entity: the decoded record (entry, slot, role, optional lock)
//   - SlotBucket: one slot's entities grouped by semantic purpose
//   - Options: the effective configuration after alias resolution
//   - Tree / View / Section / Card: the output configuration tree
//
// # Guarantees
//
// Every function here is total over its inputs: the engine performs no
// I/O, holds no state between calls, and never panics or returns an error
// from the assembly path. Degenerate inputs (empty registry, missing
// entries, hub still starting) map to well-formed placeholder trees built
// in placeholder.go. Records whose compound key cannot be decoded are
// reported to the caller for logging and excluded from the tree.
//
// Concurrency: the engine has no suspension points and no shared state;
// values it returns are never mutated afterwards, so results may be shared
// freely across goroutines.
package strategy
