package strategy

import "sort"

// Classify groups one slot's entities into the semantic buckets the
// assembler renders from. Input entities are expected to already be in
// Compare order; the first-wins rule for single-role entities depends on
// that.
//
// Every entity whose Slot matches lands in exactly one bucket, so the union
// of the buckets is a permutation of the matching input subset. Malformed
// records carry Slot -1 and therefore never match.
func Classify(slot int, entities []Entity, meta SlotMetadata) SlotBucket {
	bucket := SlotBucket{
		Slot:        slot,
		SingleRole:  make(map[Role]Entity),
		CalendarRef: meta[slot],
	}

	for _, e := range entities {
		if e.Slot != slot {
			continue
		}
		switch {
		case e.Role.condition():
			bucket.Conditions = append(bucket.Conditions, e)
		case e.Role == RoleSynced || e.Role == RoleStatus:
			bucket.LockStatus = append(bucket.LockStatus, e)
		case e.Role == RoleActive || e.Role == RoleEvent:
			if _, seen := bucket.SingleRole[e.Role]; seen {
				// Duplicate single-role entity: keep the first under
				// sort order, surface the rest as primary rows rather
				// than dropping them.
				bucket.Primary = append(bucket.Primary, e)
				continue
			}
			bucket.SingleRole[e.Role] = e
		default:
			bucket.Primary = append(bucket.Primary, e)
		}
	}

	return bucket
}

// ClassifyAll builds one bucket per slot configured in the metadata, in
// ascending slot order. A configured slot with no entities still yields a
// (mostly empty) bucket, so the dashboard shows every provisioned slot.
func ClassifyAll(entities []Entity, meta SlotMetadata) []SlotBucket {
	slots := make([]int, 0, len(meta))
	for slot := range meta {
		slots = append(slots, slot)
	}
	sort.Ints(slots)

	buckets := make([]SlotBucket, 0, len(slots))
	for _, slot := range slots {
		buckets = append(buckets, Classify(slot, entities, meta))
	}
	return buckets
}
