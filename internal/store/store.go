// ABOUTME: Store interface and data types for Apo persistence
// ABOUTME: Defines Scope, MemoryLog, StateSnapshot and the Store interface

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// DefaultRecentLimit bounds scoped log retrieval when the caller passes
// no explicit limit.
const DefaultRecentLimit = 50

// Scope identifies one caller's slice of the store. It is reconstructed
// from request parameters on every call and never stored as an entity.
//
// The secret is a plaintext query-string password, not a verified
// credential: a mismatch silently selects nothing. This is the accepted
// authorization model for this service, not an oversight.
type Scope struct {
	OwnerID   string
	SubjectID string
	Secret    string
}

// Valid reports whether all three scope components are present.
func (s Scope) Valid() bool {
	return s.OwnerID != "" && s.SubjectID != "" && s.Secret != ""
}

// MemoryLog is one immutable, append-only text record within a scope.
type MemoryLog struct {
	ID        int64 // monotonically increasing, assigned by the store
	OwnerID   string
	SubjectID string
	Secret    string // stored plaintext, equality-checked on delete
	Content   string
	CreatedAt time.Time
}

// StateSnapshot is the single current-state blob for a scope, replaced
// wholesale on every write. The blob is opaque bytes to the store.
type StateSnapshot struct {
	OwnerID   string
	SubjectID string
	Secret    string
	JSONBlob  string
	UpdatedAt time.Time
}

// Store defines scoped persistence for memory logs and state snapshots.
// No operation may cross scopes: every read and write filters on the
// exact (owner, subject, secret) triple.
type Store interface {
	// AppendLog inserts a new log entry under the scope and returns it
	// with its assigned ID and creation time.
	AppendLog(ctx context.Context, scope Scope, content string) (*MemoryLog, error)

	// ListRecentLogs returns the scope's entries newest first, at most
	// limit rows. A non-positive limit falls back to DefaultRecentLimit.
	// A secret mismatch yields an empty slice, not an error.
	ListRecentLogs(ctx context.Context, scope Scope, limit int) ([]*MemoryLog, error)

	// DeleteLog removes the entry with the given ID if its stored secret
	// equals the supplied one. Returns whether a deletion occurred.
	DeleteLog(ctx context.Context, id int64, secret string) (bool, error)

	// UpsertSnapshot creates or fully replaces the scope's snapshot.
	// Last writer wins; no merge, no history.
	UpsertSnapshot(ctx context.Context, scope Scope, blob string) error

	// GetSnapshot returns the scope's snapshot or ErrNotFound.
	GetSnapshot(ctx context.Context, scope Scope) (*StateSnapshot, error)

	Close() error
}
