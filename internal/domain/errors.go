package domain

import "errors"

// Sentinel errors for the mutation and sync paths. Callers match with
// errors.Is; wrapping adds the operation context.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidSchedule    = errors.New("invalid schedule")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrStaleVersion       = errors.New("stale version")
	ErrUnknownVersion     = errors.New("unknown version")
	ErrDivergedHistory    = errors.New("diverged history")
	ErrTimeout            = errors.New("remote operation timed out")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
