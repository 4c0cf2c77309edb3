// ABOUTME: State snapshot store methods for upsert and scoped point lookup
// ABOUTME: One row per scope triple, fully replaced on every write (last writer wins)

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// UpsertSnapshot creates or fully replaces the scope's snapshot blob.
// The single-statement upsert keeps each write atomic; two racing writers
// resolve to whichever commit lands last, with no merge.
func (s *SQLiteStore) UpsertSnapshot(ctx context.Context, scope Scope, blob string) error {
	now := time.Now().UTC()

	query := `
		INSERT INTO state_snapshots (owner_id, subject_id, secret, json_blob, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (owner_id, subject_id, secret)
		DO UPDATE SET json_blob = excluded.json_blob, updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		scope.OwnerID,
		scope.SubjectID,
		scope.Secret,
		blob,
		now,
	)
	if err != nil {
		return fmt.Errorf("upserting snapshot: %w", err)
	}

	return nil
}

// GetSnapshot returns the scope's snapshot, or ErrNotFound when the exact
// triple has never been written (a wrong secret looks the same as absence).
func (s *SQLiteStore) GetSnapshot(ctx context.Context, scope Scope) (*StateSnapshot, error) {
	query := `
		SELECT owner_id, subject_id, secret, json_blob, updated_at
		FROM state_snapshots
		WHERE owner_id = ? AND subject_id = ? AND secret = ?
	`

	var snap StateSnapshot
	err := s.db.QueryRowContext(ctx, query,
		scope.OwnerID,
		scope.SubjectID,
		scope.Secret,
	).Scan(&snap.OwnerID, &snap.SubjectID, &snap.Secret, &snap.JSONBlob, &snap.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}

	return &snap, nil
}
