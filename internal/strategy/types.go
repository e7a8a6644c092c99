package strategy

// KeyDelimiter separates the segments of a compound unique key as assigned
// by the access-control integration: "entryID|slot|role" with an optional
// fourth segment naming the lock entity the record is scoped to.
const KeyDelimiter = "|"

// Role is the semantic purpose of one entity within a code slot, encoded as
// the third segment of its compound key.
type Role string

// Known roles, in strategy sort priority order. Unknown roles sort after all
// known ones and land in the primary bucket.
const (
	RoleName         Role = "name"
	RoleEnabled      Role = "enabled"
	RolePIN          Role = "pin"
	RoleActive       Role = "active"
	RoleNumberOfUses Role = "number_of_uses"
	RoleStartDate    Role = "start_date"
	RoleEndDate      Role = "end_date"
	RoleSynced       Role = "synced"
	RoleStatus       Role = "status"
	RoleEvent        Role = "event"
)

// conditionRoles restrict when a slot's code is usable. Order here is the
// display order within the conditions group.
var conditionRoles = []Role{RoleNumberOfUses, RoleStartDate, RoleEndDate}

// lockQualified reports whether entities with this role carry a fourth key
// segment naming the lock they are scoped to.
func (r Role) lockQualified() bool {
	return r == RoleSynced || r == RoleStatus || r == RoleEvent
}

// condition reports whether the role is one of the slot condition roles.
func (r Role) condition() bool {
	for _, c := range conditionRoles {
		if r == c {
			return true
		}
	}
	return false
}

// RawEntity is one row of the hub's entity registry, scoped to an
// access-control configuration entry. Supplied wholesale per render pass and
// never mutated by the engine.
type RawEntity struct {
	EntityID     string `json:"entity_id"`
	DisplayName  string `json:"name,omitempty"`          // user-assigned name, may be empty
	FallbackName string `json:"original_name,omitempty"` // integration-assigned name
	CompoundKey  string `json:"unique_id"`
}

// Entity is a RawEntity decoded into its structured form. Slot and Role are
// always set after decoding; LockEntityID only for lock-qualified roles.
// Malformed marks records whose compound key could not be fully parsed
// (non-numeric slot segment or empty role); such records never match a slot
// bucket and are excluded from assembly.
type Entity struct {
	EntityID     string
	Name         string // resolved display name, see decode.go
	EntryID      string
	Slot         int
	Role         Role
	LockEntityID string // empty unless Role.lockQualified()
	Malformed    bool
}

// SlotMetadata is the hub-supplied configuration for the slots of one entry:
// which slot numbers exist and, per slot, an optional calendar entity
// backing date conditions. A slot may be configured yet have no entities.
type SlotMetadata map[int]string

// EntryMetadata describes one access-control configuration entry as reported
// by the hub.
type EntryMetadata struct {
	EntryID string       `json:"entry_id"`
	Title   string       `json:"title"`
	Locks   []string     `json:"locks"` // lock entity IDs managed by this entry
	Slots   SlotMetadata `json:"slots"`
}

// SlotBucket groups one slot's entities by semantic purpose. The union of
// the buckets is exactly the set of well-formed entities decoded for the
// slot; every entity lands in exactly one bucket.
type SlotBucket struct {
	Slot        int
	Primary     []Entity        // name, enabled, pin and anything unrecognised
	Conditions  []Entity        // number_of_uses, start_date, end_date
	LockStatus  []Entity        // synced and status, one per lock
	SingleRole  map[Role]Entity // active and event, at most one per role
	CalendarRef string          // calendar entity for this slot, "" when none
}

// LockRef identifies one lock (secondary entity) for the aggregate overview
// view. Name is the hub display name used for sorting.
type LockRef struct {
	EntityID string `json:"entity_id"`
	Name     string `json:"name"`
}
