// ABOUTME: Tests for state snapshot upsert and scoped lookup
// ABOUTME: Covers create, full replace (last-write-wins), idempotence and scope isolation

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertSnapshot_CreateAndGet(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	scope := Scope{OwnerID: "u1", SubjectID: "c1", Secret: "pw1"}

	err := s.UpsertSnapshot(ctx, scope, `{"status":{"hp":"10"}}`)
	require.NoError(t, err)

	snap, err := s.GetSnapshot(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, `{"status":{"hp":"10"}}`, snap.JSONBlob)
	assert.False(t, snap.UpdatedAt.IsZero())
}

func TestUpsertSnapshot_LastWriteWins(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	scope := Scope{OwnerID: "u1", SubjectID: "c1", Secret: "pw1"}

	require.NoError(t, s.UpsertSnapshot(ctx, scope, `{"status":{"hp":"10"}}`))
	require.NoError(t, s.UpsertSnapshot(ctx, scope, `{"status":{"hp":"5"}}`))

	snap, err := s.GetSnapshot(ctx, scope)
	require.NoError(t, err)

	// Full replacement, never a merge of both writes.
	assert.Equal(t, `{"status":{"hp":"5"}}`, snap.JSONBlob)
}

func TestUpsertSnapshot_Idempotent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	scope := Scope{OwnerID: "u1", SubjectID: "c1", Secret: "pw1"}
	blob := `{"skills":["swordplay","alchemy"]}`

	for i := 0; i < 3; i++ {
		require.NoError(t, s.UpsertSnapshot(ctx, scope, blob))
	}

	snap, err := s.GetSnapshot(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, blob, snap.JSONBlob)
}

func TestGetSnapshot_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetSnapshot(context.Background(), Scope{OwnerID: "u1", SubjectID: "c1", Secret: "pw1"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetSnapshot_SecretMismatchIsAbsence(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertSnapshot(ctx, Scope{OwnerID: "u1", SubjectID: "c1", Secret: "pw1"}, `{}`))

	_, err := s.GetSnapshot(ctx, Scope{OwnerID: "u1", SubjectID: "c1", Secret: "wrong"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertSnapshot_ScopesAreIndependent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	a := Scope{OwnerID: "u1", SubjectID: "c1", Secret: "pw1"}
	b := Scope{OwnerID: "u1", SubjectID: "c1", Secret: "pw2"}

	require.NoError(t, s.UpsertSnapshot(ctx, a, `{"user_info":{"name":"A"}}`))
	require.NoError(t, s.UpsertSnapshot(ctx, b, `{"user_info":{"name":"B"}}`))

	snapA, err := s.GetSnapshot(ctx, a)
	require.NoError(t, err)
	snapB, err := s.GetSnapshot(ctx, b)
	require.NoError(t, err)

	assert.Equal(t, `{"user_info":{"name":"A"}}`, snapA.JSONBlob)
	assert.Equal(t, `{"user_info":{"name":"B"}}`, snapB.JSONBlob)
}
