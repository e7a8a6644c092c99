package strategy

// CodeDisplay controls how a slot's PIN entity is presented.
type CodeDisplay string

const (
	CodeShown  CodeDisplay = "shown"  // PIN rendered as plain text
	CodeMasked CodeDisplay = "masked" // PIN rendered but obscured
	CodeHidden CodeDisplay = "hidden" // PIN row omitted entirely
)

// Collapsible group names accepted in the collapsed list.
const (
	GroupConditions = "conditions"
	GroupLockStatus = "lock_status"
)

// defaultCollapsed applies only when the collapsed list is absent entirely.
// A present-but-empty list means nothing starts collapsed.
var defaultCollapsed = []string{GroupConditions, GroupLockStatus}

// EntrySelector picks one configuration entry by ID or by title. Exactly
// one of the two must be set; Validate enforces this.
type EntrySelector struct {
	ID    string `yaml:"id,omitempty" json:"id,omitempty"`
	Title string `yaml:"title,omitempty" json:"title,omitempty"`
}

// Validate reports whether the selector names exactly one lookup key.
func (s EntrySelector) Validate() error {
	if s.ID != "" && s.Title != "" {
		return ErrSelectorConflict
	}
	if s.ID == "" && s.Title == "" {
		return ErrSelectorEmpty
	}
	return nil
}

// String returns whichever key the selector was given, for error messages.
func (s EntrySelector) String() string {
	if s.ID != "" {
		return s.ID
	}
	return s.Title
}

// RawOptions is the caller-supplied dashboard configuration. Every field is
// optional; nil means "not set", which matters because the resolver must
// distinguish an explicit false from an absent value. Deprecated aliases
// are accepted alongside their replacements and lose to them per option.
type RawOptions struct {
	Entries []EntrySelector `yaml:"entries" json:"entries,omitempty"`

	CodeDisplay    *string   `yaml:"code_display" json:"code_display,omitempty"`
	ShowConditions *bool     `yaml:"show_conditions" json:"show_conditions,omitempty"`
	ShowLockStatus *bool     `yaml:"show_lock_status" json:"show_lock_status,omitempty"`
	ShowEvents     *bool     `yaml:"show_events" json:"show_events,omitempty"`
	ShowCalendar   *bool     `yaml:"show_calendar" json:"show_calendar,omitempty"`
	LockOverview   *bool     `yaml:"lock_overview" json:"lock_overview,omitempty"`
	RichSlots      *bool     `yaml:"rich_slots" json:"rich_slots,omitempty"`
	Collapsed      *[]string `yaml:"collapsed" json:"collapsed,omitempty"`

	// Deprecated: use CodeDisplay. true maps to "shown", false to "hidden".
	ShowCode *bool `yaml:"show_code" json:"show_code,omitempty"`
	// Deprecated: use ShowConditions.
	IncludeConditionSensors *bool `yaml:"include_condition_sensors" json:"include_condition_sensors,omitempty"`
	// Deprecated: use ShowLockStatus.
	IncludeLockSensors *bool `yaml:"include_lock_sensors" json:"include_lock_sensors,omitempty"`
	// Deprecated: use LockOverview.
	LocksView *bool `yaml:"locks_view" json:"locks_view,omitempty"`
	// Deprecated: use RichSlots. Inverted sense: fold_slots true selected
	// the legacy single-list rendering.
	FoldSlots *bool `yaml:"fold_slots" json:"fold_slots,omitempty"`
}

// Options is the fully resolved configuration one render pass runs under.
type Options struct {
	Entries []EntrySelector

	CodeDisplay    CodeDisplay
	ShowConditions bool
	ShowLockStatus bool
	ShowEvents     bool
	ShowCalendar   bool
	LockOverview   bool
	RichSlots      bool
	Collapsed      []string
}

// Resolve merges caller options, deprecated aliases and defaults into one
// effective option set. Precedence per option is new name, then alias, then
// default, and each option resolves independently: setting one new option
// never suppresses an alias's effect on a different option.
//
// Resolve is pure and idempotent; identical inputs always yield
// structurally equal output.
func Resolve(raw RawOptions) Options {
	return Options{
		Entries:        raw.Entries,
		CodeDisplay:    pick(parseCodeDisplay(raw.CodeDisplay), mapShowCode(raw.ShowCode), CodeMasked),
		ShowConditions: pick(raw.ShowConditions, raw.IncludeConditionSensors, true),
		ShowLockStatus: pick(raw.ShowLockStatus, raw.IncludeLockSensors, true),
		ShowEvents:     pick(raw.ShowEvents, nil, true),
		ShowCalendar:   pick(raw.ShowCalendar, nil, false),
		LockOverview:   pick(raw.LockOverview, raw.LocksView, true),
		RichSlots:      pick(raw.RichSlots, invert(raw.FoldSlots), true),
		Collapsed:      pickList(raw.Collapsed, defaultCollapsed),
	}
}

// pick implements the new/legacy/default precedence triple for one option.
func pick[T any](opt, legacy *T, def T) T {
	if opt != nil {
		return *opt
	}
	if legacy != nil {
		return *legacy
	}
	return def
}

// pickList resolves the collapsed-group list: an absent list takes the
// default, a present list (even empty) replaces it outright.
func pickList(opt *[]string, def []string) []string {
	if opt == nil {
		out := make([]string, len(def))
		copy(out, def)
		return out
	}
	out := make([]string, len(*opt))
	copy(out, *opt)
	return out
}

// parseCodeDisplay maps a raw string to the enum, treating unknown values
// as absent so the alias and default still apply.
func parseCodeDisplay(s *string) *CodeDisplay {
	if s == nil {
		return nil
	}
	switch CodeDisplay(*s) {
	case CodeShown, CodeMasked, CodeHidden:
		v := CodeDisplay(*s)
		return &v
	}
	return nil
}

// mapShowCode translates the deprecated show_code boolean into the enum.
func mapShowCode(b *bool) *CodeDisplay {
	if b == nil {
		return nil
	}
	v := CodeHidden
	if *b {
		v = CodeShown
	}
	return &v
}

// invert flips an optional boolean, used for aliases with inverted sense.
func invert(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := !*b
	return &v
}

// collapsed reports whether the named group starts collapsed under the
// resolved options.
func (o Options) collapsed(group string) bool {
	for _, g := range o.Collapsed {
		if g == group {
			return true
		}
	}
	return false
}
