package data

import "errors"

// Sentinel errors returned by the stores. Services translate these into
// the categorical taxonomy; stores stay transport- and policy-free.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)
