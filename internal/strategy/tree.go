package strategy

// Tree is the full dashboard configuration handed to the host renderer.
// Produced fresh per render pass and never mutated afterwards.
type Tree struct {
	Title string `json:"title"`
	Views []View `json:"views"`
}

// View is one dashboard tab. It carries either Sections (rich slot mode and
// the lock overview) or Cards (legacy list mode and placeholder views),
// never both.
type View struct {
	Title    string    `json:"title"`
	Path     string    `json:"path"`
	Icon     string    `json:"icon,omitempty"`
	Type     string    `json:"type,omitempty"` // "sections" when Sections is used
	Sections []Section `json:"sections,omitempty"`
	Cards    []Card    `json:"cards,omitempty"`
}

// Section is one grid group within a sections view. A section holds either
// literal Cards or a Strategy reference the host resolves later; hosts must
// accept both shapes.
type Section struct {
	Type     string       `json:"type"` // "grid"
	Title    string       `json:"title,omitempty"`
	Cards    []Card       `json:"cards,omitempty"`
	Strategy *StrategyRef `json:"strategy,omitempty"`
}

// StrategyRef names a parameterized unit the host expands into cards at
// render time.
type StrategyRef struct {
	Type    string         `json:"type"`
	Options map[string]any `json:"options,omitempty"`
}

// Card is one widget in a view or section. Type selects the host widget;
// the remaining fields are that widget's options and marshal only when set.
// Composite widgets (entities lists, folds) nest rows and cards.
type Card struct {
	Type     string      `json:"type"`
	Title    string      `json:"title,omitempty"`
	Content  string      `json:"content,omitempty"` // markdown cards
	Entity   string      `json:"entity,omitempty"`  // single-entity cards
	Entities []EntityRow `json:"entities,omitempty"`
	Cards    []Card      `json:"cards,omitempty"` // vertical-stack
	Head     *EntityRow  `json:"head,omitempty"`  // fold-entity-row header
}

// EntityRow is one line of an entities card: either a plain entity
// reference, a labelled section divider, or a nested fold composite.
type EntityRow struct {
	Type     string      `json:"type,omitempty"` // "", "section", "divider", or a custom row type
	Entity   string      `json:"entity,omitempty"`
	Name     string      `json:"name,omitempty"`
	Label    string      `json:"label,omitempty"` // section rows
	Head     *EntityRow  `json:"head,omitempty"`  // fold rows
	Entities []EntityRow `json:"entities,omitempty"`
	Open     bool        `json:"open,omitempty"` // fold rows start expanded
}

// foldRowType is the custom row widget provided by the optional fold
// enhancement resource. Whether the host has it is detected externally and
// passed to Assemble.
const foldRowType = "custom:fold-entity-row"
