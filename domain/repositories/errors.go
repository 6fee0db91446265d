package repositories

import "errors"

// Store-agnostic errors. Implementations translate driver errors to these.
var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
)
