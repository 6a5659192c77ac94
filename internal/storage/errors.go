package storage

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a uniqueness violation (an email that is already taken).
	ErrConflict = errors.New("conflict")
	// ErrEditConflict reports that the record changed since it was read.
	ErrEditConflict = errors.New("edit conflict")
)
