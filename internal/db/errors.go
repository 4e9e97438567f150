package db

import "errors"

// Domain-level database error sentinels.
var (
	ErrEmptyTerm = errors.New("lookup term is empty")
)
