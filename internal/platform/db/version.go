package db

import "errors"

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("not found")

// ErrVersionConflict is returned when an update carries a stale version_id.
// Handlers surface it as HTTP 409 so the client can re-fetch and re-apply
// instead of silently losing a concurrent edit.
var ErrVersionConflict = errors.New("version conflict: record was modified by another request")

// Versioned is implemented by records that carry an optimistic-concurrency
// version. Repositories bump the version on every successful update and
// reject updates whose version does not match the stored row.
type Versioned interface {
	GetVersionID() int
	SetVersionID(v int)
}
