package strategy

import (
	"testing"
)

func entity(slot int, role Role, lock string) Entity {
	return Entity{EntityID: "sensor.x", Slot: slot, Role: role, LockEntityID: lock}
}

func TestCompareSlotOrder(t *testing.T) {
	a := entity(1, RoleEvent, "lock.z")
	b := entity(2, RoleName, "")
	if got := Compare(a, b); got != -1 {
		t.Errorf("Compare(slot 1, slot 2) = %d, want -1", got)
	}
	if got := Compare(b, a); got != 1 {
		t.Errorf("Compare(slot 2, slot 1) = %d, want 1", got)
	}
}

func TestCompareRolePriority(t *testing.T) {
	// Pairs in expected order within one slot.
	ordered := []Entity{
		entity(1, RoleName, ""),
		entity(1, RoleEnabled, ""),
		entity(1, RolePIN, ""),
		entity(1, RoleActive, ""),
		entity(1, RoleNumberOfUses, ""),
		entity(1, RoleStartDate, ""),
		entity(1, RoleEndDate, ""),
		entity(1, RoleSynced, "lock.a"),
		entity(1, RoleStatus, "lock.a"),
		entity(1, RoleEvent, "lock.a"),
		entity(1, Role("mystery"), ""),
	}
	for i := 0; i < len(ordered)-1; i++ {
		a, b := ordered[i], ordered[i+1]
		if got := Compare(a, b); got != -1 {
			t.Errorf("Compare(%s, %s) = %d, want -1", a.Role, b.Role, got)
		}
		if got := Compare(b, a); got != 1 {
			t.Errorf("Compare(%s, %s) = %d, want 1", b.Role, a.Role, got)
		}
	}
}

func TestCompareLockTieBreak(t *testing.T) {
	tests := []struct {
		name string
		a, b Entity
		want int
	}{
		{
			name: "status ascending",
			a:    entity(1, RoleStatus, "lock.a"),
			b:    entity(1, RoleStatus, "lock.b"),
			want: -1,
		},
		{
			name: "event ascending",
			a:    entity(1, RoleEvent, "lock.a"),
			b:    entity(1, RoleEvent, "lock.b"),
			want: -1,
		},
		{
			// Long-standing asymmetry: synced compares descending.
			// Pinned here so a well-meaning cleanup cannot flip stored
			// dashboard row order.
			name: "synced descending",
			a:    entity(1, RoleSynced, "lock.a"),
			b:    entity(1, RoleSynced, "lock.b"),
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare() = %d, want %d", got, tt.want)
			}
			if got := Compare(tt.b, tt.a); got != -tt.want {
				t.Errorf("Compare() reversed = %d, want %d", got, -tt.want)
			}
		})
	}
}

func TestCompareNeverZero(t *testing.T) {
	entities := []Entity{
		entity(1, RoleName, ""),
		entity(1, RoleName, ""),
		entity(2, RolePIN, ""),
		entity(2, RoleStatus, "lock.a"),
		entity(2, RoleStatus, "lock.a"),
		entity(3, Role("mystery"), ""),
	}
	for _, a := range entities {
		for _, b := range entities {
			if got := Compare(a, b); got != -1 && got != 1 {
				t.Errorf("Compare(%+v, %+v) = %d, want -1 or 1", a, b, got)
			}
		}
	}
}

func TestSortOrdersBySlotRegardlessOfInput(t *testing.T) {
	entities := []Entity{
		entity(3, RoleName, ""),
		entity(1, RoleStatus, "lock.b"),
		entity(2, RoleEnabled, ""),
		entity(1, RoleName, ""),
		entity(1, RoleStatus, "lock.a"),
	}
	Sort(entities)

	wantSlots := []int{1, 1, 1, 2, 3}
	for i, e := range entities {
		if e.Slot != wantSlots[i] {
			t.Fatalf("position %d: slot %d, want %d", i, e.Slot, wantSlots[i])
		}
	}
	if entities[0].Role != RoleName {
		t.Errorf("slot 1 first role = %s, want name", entities[0].Role)
	}
	if entities[1].LockEntityID != "lock.a" || entities[2].LockEntityID != "lock.b" {
		t.Errorf("status rows not ascending by lock: %s then %s",
			entities[1].LockEntityID, entities[2].LockEntityID)
	}
}
