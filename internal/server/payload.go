// ABOUTME: Bridge payload types, snapshot decoding and scoped data assembly
// ABOUTME: Shared by the push bridge, the callback bridge and the manager view

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sameyume-creator/Apo/internal/store"
)

// dateFormat matches the original service's display format.
const dateFormat = "2006-01-02 15:04"

// messageTypeSync is the discriminator the embedding page filters on.
// It filters by message shape rather than origin, so the type string is
// part of the wire contract.
const messageTypeSync = "LOG_DATA_SYNC"

// logItem is one serialized log entry in a bridge payload.
type logItem struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	Date    string `json:"date"`
}

// snapshotState holds the conventionally-recognized snapshot sub-structures.
// The store treats the blob as opaque bytes; decoding happens only here,
// at the read edge.
type snapshotState struct {
	UserInfo   map[string]any `json:"user_info,omitempty"`
	Skills     []any          `json:"skills,omitempty"`
	Reputation map[string]any `json:"reputation,omitempty"`
	Status     map[string]any `json:"status,omitempty"`
}

// bridgePayload is the structured message pushed to the embedding page.
type bridgePayload struct {
	Type       string         `json:"type"`
	Status     string         `json:"status"` // "success" or "empty"
	Logs       []logItem      `json:"logs"`
	State      *snapshotState `json:"state,omitempty"`
	StateError string         `json:"state_error,omitempty"`
	Message    string         `json:"message,omitempty"`
}

// decodeSnapshot parses a snapshot blob into its conventional structure.
func decodeSnapshot(blob string) (*snapshotState, error) {
	var state snapshotState
	if err := json.Unmarshal([]byte(blob), &state); err != nil {
		return nil, fmt.Errorf("decoding snapshot blob: %w", err)
	}
	return &state, nil
}

// collectPayload fetches the scope's recent logs and snapshot and builds
// the bridge payload. A malformed snapshot becomes a visible state_error
// marker rather than a failure; a store error is returned to the caller,
// who decides how to surface it.
func (s *Server) collectPayload(ctx context.Context, scope store.Scope) (*bridgePayload, error) {
	logs, err := s.store.ListRecentLogs(ctx, scope, s.recentLimit())
	if err != nil {
		return nil, fmt.Errorf("listing memory logs: %w", err)
	}

	payload := &bridgePayload{
		Type: messageTypeSync,
		Logs: make([]logItem, 0, len(logs)),
	}
	for _, l := range logs {
		payload.Logs = append(payload.Logs, logItem{
			ID:      l.ID,
			Content: l.Content,
			Date:    l.CreatedAt.Format(dateFormat),
		})
	}

	snap, err := s.store.GetSnapshot(ctx, scope)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// no snapshot for this scope
	case err != nil:
		return nil, fmt.Errorf("fetching snapshot: %w", err)
	default:
		state, decodeErr := decodeSnapshot(snap.JSONBlob)
		if decodeErr != nil {
			payload.StateError = "state snapshot is not valid JSON"
			s.logger.Warn("snapshot blob failed to decode",
				"owner", scope.OwnerID, "subject", scope.SubjectID, "error", decodeErr)
		} else {
			payload.State = state
		}
	}

	if len(payload.Logs) == 0 {
		payload.Status = "empty"
	} else {
		payload.Status = "success"
	}

	return payload, nil
}
