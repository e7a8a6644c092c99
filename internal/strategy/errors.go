package strategy

import "errors"

// Domain errors for the strategy package. These cover configuration
// mistakes only; the assembly path itself never returns errors and always
// produces a well-formed tree.
var (
	// ErrSelectorConflict is returned when an entry selector sets both id
	// and title. The two are mutually exclusive lookup keys.
	ErrSelectorConflict = errors.New("strategy: entry selector sets both id and title")

	// ErrSelectorEmpty is returned when an entry selector sets neither id
	// nor title.
	ErrSelectorEmpty = errors.New("strategy: entry selector sets neither id nor title")
)
