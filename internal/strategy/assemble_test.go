package strategy

import (
	"strings"
	"testing"
)

// defaultOptions resolves an empty RawOptions, matching the built-in
// defaults of Resolve.
func defaultOptions() Options {
	return Resolve(RawOptions{})
}

func rawEntity(id, key, name string) RawEntity {
	return RawEntity{EntityID: id, DisplayName: name, CompoundKey: key}
}

func frontDoorEntry(slots SlotMetadata) EntryInput {
	return EntryInput{
		Meta: EntryMetadata{
			EntryID: "A",
			Title:   "Front Door",
			Locks:   []string{"lock.front"},
			Slots:   slots,
		},
	}
}

func TestAssembleEmptyRegistry(t *testing.T) {
	tree, _ := Build(Input{}, defaultOptions())

	if len(tree.Views) != 1 {
		t.Fatalf("views = %d, want exactly 1", len(tree.Views))
	}
	cards := tree.Views[0].Cards
	if len(cards) != 1 || cards[0].Type != "markdown" {
		t.Fatalf("empty-state view cards = %+v, want single markdown card", cards)
	}
	if !strings.Contains(cards[0].Content, "No access control entries found") {
		t.Errorf("empty-state message = %q, missing fixed heading", cards[0].Content)
	}
}

func TestAssembleSingleEntryGetsPlaceholderView(t *testing.T) {
	opts := defaultOptions()
	opts.LockOverview = false

	entry := frontDoorEntry(SlotMetadata{})
	tree, _ := Build(Input{Entries: []EntryInput{entry}}, opts)

	if len(tree.Views) != 2 {
		t.Fatalf("views = %d, want content view plus placeholder", len(tree.Views))
	}
	if tree.Views[0].Path != "front-door" {
		t.Errorf("content view path = %q, want %q", tree.Views[0].Path, "front-door")
	}
	placeholder := tree.Views[1]
	if placeholder.Path != "placeholder" {
		t.Errorf("placeholder path = %q, want %q", placeholder.Path, "placeholder")
	}
	if len(placeholder.Cards) != 0 || len(placeholder.Sections) != 0 {
		t.Errorf("placeholder view has content: %+v", placeholder)
	}
}

func TestAssembleRichSlotSectionsAscending(t *testing.T) {
	first := frontDoorEntry(SlotMetadata{1: "", 2: "", 3: ""})
	// Input entity order deliberately scrambled across slots.
	first.Entities = []RawEntity{
		rawEntity("sensor.s3_name", "A|3|name", "Name"),
		rawEntity("sensor.s1_name", "A|1|name", "Name"),
		rawEntity("switch.s2_enabled", "A|2|enabled", "Enabled"),
		rawEntity("switch.s1_enabled", "A|1|enabled", "Enabled"),
	}
	second := EntryInput{
		Meta: EntryMetadata{EntryID: "B", Title: "Garage", Slots: SlotMetadata{1: ""}},
	}

	tree, _ := Build(Input{Entries: []EntryInput{first, second}}, defaultOptions())

	view := tree.Views[0]
	if view.Type != "sections" {
		t.Fatalf("rich mode view type = %q, want sections", view.Type)
	}
	if len(view.Sections) != 3 {
		t.Fatalf("sections = %d, want one per slot (3)", len(view.Sections))
	}
	wantTitles := []string{"Code slot 1", "Code slot 2", "Code slot 3"}
	for i, section := range view.Sections {
		if section.Title != wantTitles[i] {
			t.Errorf("section %d title = %q, want %q", i, section.Title, wantTitles[i])
		}
	}
	// Slot 1 rows come out in role-priority order regardless of input order.
	rows := view.Sections[0].Cards[0].Entities
	if len(rows) != 2 || rows[0].Entity != "sensor.s1_name" || rows[1].Entity != "switch.s1_enabled" {
		t.Errorf("slot 1 rows out of order: %+v", rows)
	}
}

func TestAssembleCalendarRow(t *testing.T) {
	entry := frontDoorEntry(SlotMetadata{1: "calendar.front_slot_1", 2: ""})
	entry.Entities = []RawEntity{
		rawEntity("sensor.s1_name", "A|1|name", "Name"),
		rawEntity("sensor.s2_name", "A|2|name", "Name"),
	}

	opts := defaultOptions()
	opts.ShowCalendar = true
	tree, _ := Build(Input{Entries: []EntryInput{entry}}, opts)

	// The calendar row follows the slot's primary rows.
	rows := tree.Views[0].Sections[0].Cards[0].Entities
	if len(rows) != 2 || rows[1].Entity != "calendar.front_slot_1" || rows[1].Name != "Calendar" {
		t.Errorf("slot 1 rows = %+v, want name row then calendar row", rows)
	}

	// A slot without a calendar entity gets no row even when enabled.
	rows = tree.Views[0].Sections[1].Cards[0].Entities
	if len(rows) != 1 || rows[0].Entity != "sensor.s2_name" {
		t.Errorf("slot 2 rows = %+v, want name row only", rows)
	}

	// Disabled by default: the metadata alone produces nothing.
	tree, _ = Build(Input{Entries: []EntryInput{entry}}, defaultOptions())
	rows = tree.Views[0].Sections[0].Cards[0].Entities
	if len(rows) != 1 || rows[0].Entity != "sensor.s1_name" {
		t.Errorf("slot 1 rows with calendar disabled = %+v, want name row only", rows)
	}
}

func TestAssembleLockOverviewDedupAndSort(t *testing.T) {
	entries := []EntryInput{
		frontDoorEntry(SlotMetadata{1: ""}),
		{Meta: EntryMetadata{EntryID: "B", Title: "Garage", Slots: SlotMetadata{1: ""}}},
	}
	locks := []LockRef{
		{EntityID: "lock.shared", Name: "shared lock"},
		{EntityID: "lock.front", Name: "Front"},
		{EntityID: "lock.shared", Name: "shared lock"}, // duplicate across entries
		{EntityID: "lock.back", Name: "back"},
	}

	tree, _ := Build(Input{Entries: entries, Locks: locks}, defaultOptions())

	overview := tree.Views[len(tree.Views)-1]
	if overview.Path != "locks" {
		t.Fatalf("last view path = %q, want locks", overview.Path)
	}
	if len(overview.Cards) != 3 {
		t.Fatalf("overview cards = %d, want 3 deduplicated locks", len(overview.Cards))
	}
	wantOrder := []string{"lock.back", "lock.front", "lock.shared"}
	for i, card := range overview.Cards {
		if card.Entity != wantOrder[i] {
			t.Errorf("card %d entity = %q, want case-insensitive name order %q",
				i, card.Entity, wantOrder[i])
		}
	}
}

func TestAssembleLockOverviewEmpty(t *testing.T) {
	tree, _ := Build(Input{Entries: []EntryInput{frontDoorEntry(SlotMetadata{1: ""})}}, defaultOptions())

	overview := tree.Views[len(tree.Views)-1]
	if len(overview.Cards) != 1 || overview.Cards[0].Type != "markdown" {
		t.Fatalf("empty overview = %+v, want single informational card", overview.Cards)
	}
}

func slotOneRows(t *testing.T, tree Tree) []EntityRow {
	t.Helper()
	view := tree.Views[0]
	if len(view.Sections) == 0 || len(view.Sections[0].Cards) == 0 {
		t.Fatalf("no slot section cards in view: %+v", view)
	}
	return view.Sections[0].Cards[0].Entities
}

func TestAssembleFoldWrapping(t *testing.T) {
	entry := frontDoorEntry(SlotMetadata{1: ""})
	entry.Entities = []RawEntity{
		rawEntity("sensor.uses", "A|1|number_of_uses", "Number of uses"),
		rawEntity("sensor.start", "A|1|start_date", "Start date"),
	}

	opts := defaultOptions()

	// Without the fold capability: plain section label, rows unwrapped.
	plain, _ := Build(Input{Entries: []EntryInput{entry}}, opts)
	rows := slotOneRows(t, plain)
	if len(rows) != 3 {
		t.Fatalf("plain rows = %d, want label plus two rows", len(rows))
	}
	if rows[0].Type != "section" || rows[0].Label != "Conditions" {
		t.Errorf("plain group label row = %+v", rows[0])
	}

	// With it: divider, then a collapsible composite holding the rows.
	folded, _ := Build(Input{Entries: []EntryInput{entry}, Fold: true}, opts)
	rows = slotOneRows(t, folded)
	if len(rows) != 2 {
		t.Fatalf("folded rows = %d, want divider plus fold", len(rows))
	}
	if rows[0].Type != "divider" {
		t.Errorf("fold not preceded by divider: %+v", rows[0])
	}
	foldRow := rows[1]
	if foldRow.Type != foldRowType || foldRow.Head == nil || foldRow.Head.Label != "Conditions" {
		t.Errorf("fold row = %+v", foldRow)
	}
	if len(foldRow.Entities) != 2 {
		t.Errorf("fold row entities = %d, want 2", len(foldRow.Entities))
	}
	if foldRow.Open {
		t.Error("conditions start collapsed by default, fold row should not be open")
	}
}

func TestAssembleFoldOpenWhenNotCollapsed(t *testing.T) {
	entry := frontDoorEntry(SlotMetadata{1: ""})
	entry.Entities = []RawEntity{
		rawEntity("sensor.uses", "A|1|number_of_uses", "Number of uses"),
	}
	opts := Resolve(RawOptions{Collapsed: listPtr([]string{})})

	tree, _ := Build(Input{Entries: []EntryInput{entry}, Fold: true}, opts)
	rows := slotOneRows(t, tree)
	if !rows[1].Open {
		t.Error("fold row should start open when collapsed list is empty")
	}
}

func TestAssembleEmptyGroupsAreSilent(t *testing.T) {
	entry := frontDoorEntry(SlotMetadata{1: ""})
	entry.Entities = []RawEntity{
		rawEntity("sensor.name", "A|1|name", "Name"),
	}

	tree, _ := Build(Input{Entries: []EntryInput{entry}}, defaultOptions())
	for _, row := range slotOneRows(t, tree) {
		if row.Type == "section" || row.Type == "divider" || row.Type == foldRowType {
			t.Errorf("empty group rendered chrome row: %+v", row)
		}
	}
}

func TestAssembleCodeDisplayModes(t *testing.T) {
	entry := frontDoorEntry(SlotMetadata{1: ""})
	entry.Entities = []RawEntity{
		rawEntity("text.pin", "A|1|pin", "PIN"),
	}

	tests := []struct {
		name     string
		mode     CodeDisplay
		wantRows int
		wantType string
	}{
		{name: "shown", mode: CodeShown, wantRows: 1, wantType: ""},
		{name: "masked", mode: CodeMasked, wantRows: 1, wantType: maskedRowType},
		{name: "hidden", mode: CodeHidden, wantRows: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultOptions()
			opts.CodeDisplay = tt.mode

			tree, _ := Build(Input{Entries: []EntryInput{entry}}, opts)
			rows := slotOneRows(t, tree)
			if len(rows) != tt.wantRows {
				t.Fatalf("rows = %d, want %d", len(rows), tt.wantRows)
			}
			if tt.wantRows > 0 && rows[0].Type != tt.wantType {
				t.Errorf("pin row type = %q, want %q", rows[0].Type, tt.wantType)
			}
		})
	}
}

func TestAssembleLegacyListMode(t *testing.T) {
	entry := frontDoorEntry(SlotMetadata{1: "", 2: ""})
	entry.Entities = []RawEntity{
		rawEntity("sensor.s1_name", "A|1|name", "Name"),
		rawEntity("sensor.s2_name", "A|2|name", "Name"),
	}
	opts := Resolve(RawOptions{RichSlots: boolPtr(false)})

	tree, _ := Build(Input{Entries: []EntryInput{entry}}, opts)

	view := tree.Views[0]
	if len(view.Sections) != 0 {
		t.Fatalf("legacy mode emitted sections: %+v", view.Sections)
	}
	if len(view.Cards) != 1 || view.Cards[0].Type != "entities" {
		t.Fatalf("legacy mode cards = %+v, want one entities card", view.Cards)
	}
	rows := view.Cards[0].Entities
	// Section row per slot, entity row each.
	wantLabels := []string{"Code slot 1", "Code slot 2"}
	labelIdx := 0
	for _, row := range rows {
		if row.Type == "section" {
			if labelIdx >= len(wantLabels) || row.Label != wantLabels[labelIdx] {
				t.Errorf("unexpected section row %+v at index %d", row, labelIdx)
			}
			labelIdx++
		}
	}
	if labelIdx != 2 {
		t.Errorf("section rows = %d, want 2", labelIdx)
	}
}

func TestBuildReportsMalformedRecords(t *testing.T) {
	entry := frontDoorEntry(SlotMetadata{1: ""})
	entry.Entities = []RawEntity{
		rawEntity("sensor.ok", "A|1|name", "Name"),
		rawEntity("sensor.bad", "A|one|name", "Broken"),
	}

	tree, malformed := Build(Input{Entries: []EntryInput{entry}}, defaultOptions())

	if len(malformed) != 1 || malformed[0].EntityID != "sensor.bad" {
		t.Fatalf("malformed = %+v, want the one broken record", malformed)
	}
	for _, row := range slotOneRows(t, tree) {
		if row.Entity == "sensor.bad" {
			t.Error("malformed record leaked into the tree")
		}
	}
}

func TestAssembleEntryWithNoSlots(t *testing.T) {
	entry := frontDoorEntry(SlotMetadata{})
	tree, _ := Build(Input{Entries: []EntryInput{entry}}, defaultOptions())

	view := tree.Views[0]
	if len(view.Cards) != 1 || view.Cards[0].Type != "markdown" {
		t.Fatalf("no-slot entry view = %+v, want informational card", view.Cards)
	}
	if !strings.Contains(view.Cards[0].Content, "Front Door") {
		t.Errorf("no-slot message %q does not name the entry", view.Cards[0].Content)
	}
}
