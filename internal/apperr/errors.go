package apperr

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrDuplicateTag      = errors.New("duplicate tag short name")
	ErrUnknownTag        = errors.New("unknown tag")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrConflictingFlags  = errors.New("conflicting flags")
)
