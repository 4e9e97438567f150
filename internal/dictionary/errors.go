package dictionary

import "errors"

// Dictionary loading error sentinels.
var (
	ErrNotObject = errors.New("dictionary must be a JSON object of acronym to entry")
	ErrEmptyKey  = errors.New("dictionary contains an empty key")
)
