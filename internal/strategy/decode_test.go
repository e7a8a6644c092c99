package strategy

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		raw   RawEntity
		title string
		want  Entity
	}{
		{
			name: "slot-scoped entity without lock qualifier",
			raw: RawEntity{
				EntityID:    "switch.front_door_slot_3_enabled",
				DisplayName: "Enabled",
				CompoundKey: "A|3|enabled",
			},
			want: Entity{
				EntityID: "switch.front_door_slot_3_enabled",
				Name:     "Enabled",
				EntryID:  "A",
				Slot:     3,
				Role:     RoleEnabled,
			},
		},
		{
			name: "lock-qualified entity",
			raw: RawEntity{
				EntityID:    "sensor.front_door_slot_3_status",
				DisplayName: "Status",
				CompoundKey: "A|3|status|lock.x",
			},
			want: Entity{
				EntityID:     "sensor.front_door_slot_3_status",
				Name:         "Status",
				EntryID:      "A",
				Slot:         3,
				Role:         RoleStatus,
				LockEntityID: "lock.x",
			},
		},
		{
			name: "non-numeric slot is malformed",
			raw: RawEntity{
				EntityID:    "sensor.bad",
				DisplayName: "Bad",
				CompoundKey: "A|three|status",
			},
			want: Entity{
				EntityID:  "sensor.bad",
				Name:      "Bad",
				EntryID:   "A",
				Slot:      -1,
				Role:      RoleStatus,
				Malformed: true,
			},
		},
		{
			name: "missing role is malformed",
			raw: RawEntity{
				EntityID:    "sensor.bad",
				DisplayName: "Bad",
				CompoundKey: "A|3",
			},
			want: Entity{
				EntityID:  "sensor.bad",
				Name:      "Bad",
				EntryID:   "A",
				Slot:      3,
				Malformed: true,
			},
		},
		{
			name: "negative slot is malformed",
			raw: RawEntity{
				EntityID:    "sensor.bad",
				DisplayName: "Bad",
				CompoundKey: "A|-2|pin",
			},
			want: Entity{
				EntityID:  "sensor.bad",
				Name:      "Bad",
				EntryID:   "A",
				Slot:      -1,
				Role:      RolePIN,
				Malformed: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.raw, tt.title)
			if got != tt.want {
				t.Errorf("Decode() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveName(t *testing.T) {
	tests := []struct {
		name  string
		raw   RawEntity
		title string
		want  string
	}{
		{
			name: "display name preferred",
			raw: RawEntity{
				EntityID:     "sensor.x",
				DisplayName:  "custom name",
				FallbackName: "Original",
				CompoundKey:  "A|1|name",
			},
			want: "Custom name",
		},
		{
			name: "fallback name when display empty",
			raw: RawEntity{
				EntityID:     "sensor.x",
				FallbackName: "original name",
				CompoundKey:  "A|1|name",
			},
			want: "Original name",
		},
		{
			name: "entity id when both names empty",
			raw: RawEntity{
				EntityID:    "sensor.some_thing",
				CompoundKey: "A|1|name",
			},
			want: "Sensor.some_thing",
		},
		{
			name: "code slot prefix stripped case-insensitively",
			raw: RawEntity{
				EntityID:    "sensor.x",
				DisplayName: "CODE SLOT 2: enabled",
				CompoundKey: "A|2|enabled",
			},
			want: "Enabled",
		},
		{
			name: "entry title prefix stripped",
			raw: RawEntity{
				EntityID:    "sensor.x",
				DisplayName: "Front Door Code slot 2 PIN",
				CompoundKey: "A|2|pin",
			},
			title: "Front Door",
			want:  "PIN",
		},
		{
			name: "stripping everything reverts to unstripped name",
			raw: RawEntity{
				EntityID:    "sensor.x",
				DisplayName: "Code slot 4",
				CompoundKey: "A|4|name",
			},
			want: "Code slot 4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.raw, tt.title)
			if got.Name != tt.want {
				t.Errorf("Decode().Name = %q, want %q", got.Name, tt.want)
			}
		})
	}
}
