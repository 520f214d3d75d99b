package css

import "errors"

// Error kinds surfaced by the engine. Callers match with errors.Is; every
// failure is wrapped around exactly one of these sentinels.
var (
	// ErrParse reports malformed selector text.
	ErrParse = errors.New("selector parse error")
	// ErrInvalidValue reports a numeric or color argument outside the
	// accepted domain, or a value of the wrong type for a rule method.
	ErrInvalidValue = errors.New("invalid value")
	// ErrConfiguration reports an impossible builder configuration, e.g. a
	// grid without axes or a media scope without bounds.
	ErrConfiguration = errors.New("invalid configuration")
	// ErrNotFound reports name-keyed style access with an unregistered name.
	ErrNotFound = errors.New("style not found")
)
