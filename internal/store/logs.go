// ABOUTME: Memory log store methods for append, scoped retrieval and delete
// ABOUTME: All reads and writes filter on the exact (owner, subject, secret) triple

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// AppendLog inserts a new memory log entry under the given scope.
// The ID is assigned by SQLite and is monotonically increasing.
func (s *SQLiteStore) AppendLog(ctx context.Context, scope Scope, content string) (*MemoryLog, error) {
	now := time.Now().UTC()

	query := `
		INSERT INTO memory_logs (owner_id, subject_id, secret, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	res, err := s.db.ExecContext(ctx, query,
		scope.OwnerID,
		scope.SubjectID,
		scope.Secret,
		content,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting memory log: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading inserted log id: %w", err)
	}

	return &MemoryLog{
		ID:        id,
		OwnerID:   scope.OwnerID,
		SubjectID: scope.SubjectID,
		Secret:    scope.Secret,
		Content:   content,
		CreatedAt: now,
	}, nil
}

// ListRecentLogs returns the scope's entries newest first, bounded by limit.
// A secret mismatch selects nothing; the caller sees an empty slice either way.
func (s *SQLiteStore) ListRecentLogs(ctx context.Context, scope Scope, limit int) ([]*MemoryLog, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	query := `
		SELECT id, owner_id, subject_id, secret, content, created_at
		FROM memory_logs
		WHERE owner_id = ? AND subject_id = ? AND secret = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query,
		scope.OwnerID,
		scope.SubjectID,
		scope.Secret,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying memory logs: %w", err)
	}
	defer rows.Close()

	var logs []*MemoryLog
	for rows.Next() {
		var l MemoryLog
		if err := rows.Scan(&l.ID, &l.OwnerID, &l.SubjectID, &l.Secret, &l.Content, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning memory log: %w", err)
		}
		logs = append(logs, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating memory logs: %w", err)
	}

	return logs, nil
}

// DeleteLog removes the entry with the given ID if its stored secret equals
// the supplied one. A wrong secret is indistinguishable from a missing row.
func (s *SQLiteStore) DeleteLog(ctx context.Context, id int64, secret string) (bool, error) {
	var stored string
	err := s.db.QueryRowContext(ctx,
		`SELECT secret FROM memory_logs WHERE id = ?`, id,
	).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up memory log %d: %w", id, err)
	}

	// Plain equality, not a constant-time compare. The secret is a
	// low-stakes query-string password by contract.
	if stored != secret {
		return false, nil
	}

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM memory_logs WHERE id = ? AND secret = ?`, id, secret,
	)
	if err != nil {
		return false, fmt.Errorf("deleting memory log %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading delete result: %w", err)
	}

	return n > 0, nil
}
