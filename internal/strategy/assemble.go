package strategy

import (
	"fmt"
	"sort"
	"strings"
)

// DashboardTitle is the title of every tree this package produces.
const DashboardTitle = "Access codes"

// maskedRowType is the host row widget that renders a code obscured.
const maskedRowType = "custom:masked-row"

// Input bundles one render pass's worth of hub data.
type Input struct {
	Entries []EntryInput
	Locks   []LockRef // overview candidates across entries; may repeat
	Fold    bool      // fold enhancement resource detected on the host
}

// EntryInput is the raw material for one configuration entry's view.
type EntryInput struct {
	Meta     EntryMetadata
	Entities []RawEntity
}

// EntryBuckets is one entry's classified slot structure, ready to render.
type EntryBuckets struct {
	Meta    EntryMetadata
	Buckets []SlotBucket
}

// Build runs the full pipeline for one render pass: decode, sort, classify,
// assemble. It returns the tree plus any records whose compound key failed
// to decode, so the caller can log them; malformed records are excluded
// from the tree but never cause a failure.
func Build(in Input, opts Options) (Tree, []Entity) {
	var malformed []Entity
	entries := make([]EntryBuckets, 0, len(in.Entries))

	for _, entry := range in.Entries {
		entities := make([]Entity, 0, len(entry.Entities))
		for _, raw := range entry.Entities {
			e := Decode(raw, entry.Meta.Title)
			if e.Malformed {
				malformed = append(malformed, e)
				continue
			}
			entities = append(entities, e)
		}
		Sort(entities)
		entries = append(entries, EntryBuckets{
			Meta:    entry.Meta,
			Buckets: ClassifyAll(entities, entry.Meta.Slots),
		})
	}

	return Assemble(entries, in.Locks, opts, in.Fold), malformed
}

// Assemble combines classified entries, the lock list and the resolved
// options into the final dashboard tree. It performs no I/O and never
// fails: degenerate inputs produce placeholder views instead.
func Assemble(entries []EntryBuckets, locks []LockRef, opts Options, fold bool) Tree {
	if len(entries) == 0 {
		return EmptyTree()
	}

	tree := Tree{Title: DashboardTitle}
	for _, entry := range entries {
		tree.Views = append(tree.Views, entryView(entry, opts, fold))
	}

	if opts.LockOverview {
		tree.Views = append(tree.Views, lockOverviewView(locks))
	}

	// A single view hides its own tab chrome in the host renderer; a
	// zero-content placeholder view forces the tab bar to appear.
	if len(tree.Views) == 1 {
		tree.Views = append(tree.Views, placeholderView())
	}

	return tree
}

// entryView builds the view for one configuration entry: per-slot sections
// in rich mode, a single flat entity list in legacy mode.
func entryView(entry EntryBuckets, opts Options, fold bool) View {
	view := View{
		Title: entry.Meta.Title,
		Path:  Slugify(entry.Meta.Title),
		Icon:  "mdi:lock-smart",
	}

	if len(entry.Buckets) == 0 {
		view.Cards = []Card{{
			Type:    "markdown",
			Content: fmt.Sprintf("No code slots are configured for **%s** yet.", entry.Meta.Title),
		}}
		return view
	}

	if opts.RichSlots {
		view.Type = "sections"
		for _, bucket := range entry.Buckets {
			view.Sections = append(view.Sections, slotSection(bucket, opts, fold))
		}
		return view
	}

	// Legacy mode: one entities card, slots separated by section rows.
	var rows []EntityRow
	for _, bucket := range entry.Buckets {
		rows = append(rows, EntityRow{Type: "section", Label: slotLabel(bucket.Slot)})
		rows = append(rows, slotRows(bucket, opts, fold)...)
	}
	view.Cards = []Card{{Type: "entities", Title: entry.Meta.Title, Entities: rows}}
	return view
}

// slotSection renders one slot bucket as a grid section.
func slotSection(bucket SlotBucket, opts Options, fold bool) Section {
	return Section{
		Type:  "grid",
		Title: slotLabel(bucket.Slot),
		Cards: []Card{{
			Type:     "entities",
			Entities: slotRows(bucket, opts, fold),
		}},
	}
}

func slotLabel(slot int) string {
	return fmt.Sprintf("Code slot %d", slot)
}

// slotRows flattens one bucket into display rows in role-priority order:
// primary rows, the active flag, then the optional groups, then the event
// row. Empty groups contribute nothing, not even their label.
func slotRows(bucket SlotBucket, opts Options, fold bool) []EntityRow {
	var rows []EntityRow

	for _, e := range bucket.Primary {
		if row, ok := primaryRow(e, opts); ok {
			rows = append(rows, row)
		}
	}
	if active, ok := bucket.SingleRole[RoleActive]; ok {
		rows = append(rows, entityRow(active))
	}
	if opts.ShowCalendar && bucket.CalendarRef != "" {
		rows = append(rows, EntityRow{Entity: bucket.CalendarRef, Name: "Calendar"})
	}

	if opts.ShowConditions {
		rows = appendGroup(rows, "Conditions", entityRows(bucket.Conditions),
			fold, !opts.collapsed(GroupConditions))
	}
	if opts.ShowLockStatus {
		synced, status := splitLockStatus(bucket.LockStatus)
		open := !opts.collapsed(GroupLockStatus)
		rows = appendGroup(rows, "Sync", entityRows(synced), fold, open)
		rows = appendGroup(rows, "Status", entityRows(status), fold, open)
	}
	if opts.ShowEvents {
		if event, ok := bucket.SingleRole[RoleEvent]; ok {
			rows = append(rows, entityRow(event))
		}
	}

	return rows
}

// primaryRow renders one primary-bucket entity, applying the code display
// mode to the PIN row. The second return is false when the row is hidden.
func primaryRow(e Entity, opts Options) (EntityRow, bool) {
	if e.Role != RolePIN {
		return entityRow(e), true
	}
	switch opts.CodeDisplay {
	case CodeHidden:
		return EntityRow{}, false
	case CodeMasked:
		return EntityRow{Type: maskedRowType, Entity: e.EntityID, Name: e.Name}, true
	default:
		return entityRow(e), true
	}
}

// appendGroup emits one labelled sub-group. With the fold enhancement
// available the group renders as a divider plus a collapsible composite;
// without it, as a plain section label followed by the rows. An empty
// group is silent.
func appendGroup(rows []EntityRow, label string, group []EntityRow, fold, open bool) []EntityRow {
	if len(group) == 0 {
		return rows
	}
	if fold {
		return append(rows,
			EntityRow{Type: "divider"},
			EntityRow{
				Type:     foldRowType,
				Head:     &EntityRow{Type: "section", Label: label},
				Entities: group,
				Open:     open,
			},
		)
	}
	rows = append(rows, EntityRow{Type: "section", Label: label})
	return append(rows, group...)
}

// splitLockStatus separates the lock-status bucket into its two display
// groups while preserving Compare order within each.
func splitLockStatus(entities []Entity) (synced, status []Entity) {
	for _, e := range entities {
		if e.Role == RoleSynced {
			synced = append(synced, e)
			continue
		}
		status = append(status, e)
	}
	return synced, status
}

func entityRow(e Entity) EntityRow {
	return EntityRow{Entity: e.EntityID, Name: e.Name}
}

func entityRows(entities []Entity) []EntityRow {
	rows := make([]EntityRow, 0, len(entities))
	for _, e := range entities {
		rows = append(rows, entityRow(e))
	}
	return rows
}

// lockOverviewView aggregates one card per distinct lock across every
// entry, deduplicated by entity ID and sorted by display name without
// regard to case.
func lockOverviewView(locks []LockRef) View {
	seen := make(map[string]bool, len(locks))
	unique := make([]LockRef, 0, len(locks))
	for _, l := range locks {
		if seen[l.EntityID] {
			continue
		}
		seen[l.EntityID] = true
		unique = append(unique, l)
	}
	sort.SliceStable(unique, func(i, j int) bool {
		return strings.ToLower(unique[i].Name) < strings.ToLower(unique[j].Name)
	})

	view := View{
		Title: "Locks",
		Path:  "locks",
		Icon:  "mdi:lock",
	}
	if len(unique) == 0 {
		view.Cards = []Card{{
			Type:    "markdown",
			Content: "No locks are associated with any configuration entry.",
		}}
		return view
	}
	for _, l := range unique {
		view.Cards = append(view.Cards, Card{Type: "lock", Entity: l.EntityID, Title: l.Name})
	}
	return view
}
