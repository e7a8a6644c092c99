package strategy

import "sort"

// rolePriority fixes the display order of roles within a slot. Declared
// once; everything that orders or groups entities derives from this table.
var rolePriority = map[Role]int{
	RoleName:         0,
	RoleEnabled:      1,
	RolePIN:          2,
	RoleActive:       3,
	RoleNumberOfUses: 4,
	RoleStartDate:    5,
	RoleEndDate:      6,
	RoleSynced:       7,
	RoleStatus:       8,
	RoleEvent:        9,
}

// unknownRolePriority sorts unrecognised roles after every known one.
const unknownRolePriority = 100

func priorityOf(r Role) int {
	if p, ok := rolePriority[r]; ok {
		return p
	}
	return unknownRolePriority
}

// Compare establishes a strict total order over decoded entities: slot
// number ascending, then role priority, then lock entity ID for the
// lock-qualified roles. It returns only -1 or 1, never 0, so unstable sort
// implementations cannot reorder equal-rank entities between runs.
//
// The lock tie-break is lexicographic ascending except for the synced role,
// which compares descending. That asymmetry is long-standing observed
// behaviour; it is pinned by a regression test and must not be "fixed"
// casually, because stored dashboards depend on the resulting row order.
func Compare(a, b Entity) int {
	if a.Slot != b.Slot {
		if a.Slot < b.Slot {
			return -1
		}
		return 1
	}

	pa, pb := priorityOf(a.Role), priorityOf(b.Role)
	if pa != pb {
		if pa < pb {
			return -1
		}
		return 1
	}

	if a.Role.lockQualified() && a.LockEntityID != b.LockEntityID {
		if a.Role == RoleSynced {
			// Descending for synced only.
			if a.LockEntityID > b.LockEntityID {
				return -1
			}
			return 1
		}
		if a.LockEntityID < b.LockEntityID {
			return -1
		}
		return 1
	}

	// Fallback keeps the comparator strict.
	return 1
}

// Sort orders entities in place under Compare. sort.SliceStable is used so
// the arbitrary fallback branch of Compare cannot shuffle genuinely
// identical records between runs.
func Sort(entities []Entity) {
	sort.SliceStable(entities, func(i, j int) bool {
		return Compare(entities[i], entities[j]) < 0
	})
}
