// Package store provides persistent storage for Apo using SQLite.
//
// # Data Model
//
// All data is partitioned by a Scope: the (owner_id, subject_id, secret)
// triple supplied with every request. Two models hang off a scope:
//
//   - MemoryLog: immutable, append-only text entries, retrieved newest
//     first and deletable one at a time after a secret match
//   - StateSnapshot: a single opaque JSON blob per scope, fully replaced
//     on every write (last writer wins, no history)
//
// The secret is stored in plaintext and compared with plain equality.
// It is a deliberate weak-authorization predicate for low-stakes
// ephemeral data, not a credential: a mismatched secret selects zero
// rows instead of raising an error, so the existence of other scopes'
// data is never revealed. Do not "harden" this without changing the
// service contract.
//
// # SQLite Configuration
//
// The store uses SQLite with WAL mode for concurrent reads:
//
//	PRAGMA journal_mode=WAL;
//
// Use NewSQLiteStore(":memory:") for tests.
//
// All methods accept context.Context for cancellation support.
package store
