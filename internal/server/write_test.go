// ABOUTME: Tests for the write gateway handler
// ABOUTME: Covers append/upsert effects, silent no-ops and the fixed GIF response

package server

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sameyume-creator/Apo/internal/config"
	"github.com/sameyume-creator/Apo/internal/store"
)

func TestSave_AppendsLog(t *testing.T) {
	s, st := setupTestServer(t)

	rec := get(t, s, "/save?u=u1&c=c1&pw=pw1&d=hello")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/gif", rec.Header().Get("Content-Type"))
	assert.Equal(t, pixelGIF, rec.Body.Bytes())

	logs, err := st.ListRecentLogs(context.Background(), store.Scope{OwnerID: "u1", SubjectID: "c1", Secret: "pw1"}, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "hello", logs[0].Content)
}

func TestSave_UpsertsSnapshot(t *testing.T) {
	s, st := setupTestServer(t)

	get(t, s, `/save?u=u1&c=c1&pw=pw1&s=%7B%22status%22%3A%7B%22hp%22%3A%2210%22%7D%7D`)

	snap, err := st.GetSnapshot(context.Background(), store.Scope{OwnerID: "u1", SubjectID: "c1", Secret: "pw1"})
	require.NoError(t, err)
	assert.Equal(t, `{"status":{"hp":"10"}}`, snap.JSONBlob)
}

func TestSave_BothWritesInOneRequest(t *testing.T) {
	s, st := setupTestServer(t)
	scope := store.Scope{OwnerID: "u1", SubjectID: "c1", Secret: "pw1"}

	get(t, s, `/save?u=u1&c=c1&pw=pw1&d=remember+this&s=%7B%22skills%22%3A%5B%22magic%22%5D%7D`)

	logs, err := st.ListRecentLogs(context.Background(), scope, 10)
	require.NoError(t, err)
	assert.Len(t, logs, 1)

	snap, err := st.GetSnapshot(context.Background(), scope)
	require.NoError(t, err)
	assert.Equal(t, `{"skills":["magic"]}`, snap.JSONBlob)
}

func TestSave_MissingScopeIsSilentNoOp(t *testing.T) {
	s, st := setupTestServer(t)

	for _, target := range []string{
		"/save?c=c1&pw=pw1&d=orphan",
		"/save?u=u1&pw=pw1&d=orphan",
		"/save?u=u1&c=c1&d=orphan",
	} {
		rec := get(t, s, target)

		// The caller's rendering pipeline must never observe a failure.
		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.Equal(t, pixelGIF, rec.Body.Bytes(), target)
	}

	logs, err := st.ListRecentLogs(context.Background(), store.Scope{OwnerID: "u1", SubjectID: "c1", Secret: "pw1"}, 10)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestSave_NoPayloadIsNoOp(t *testing.T) {
	s, st := setupTestServer(t)

	rec := get(t, s, "/save?u=u1&c=c1&pw=pw1")
	assert.Equal(t, http.StatusOK, rec.Code)

	logs, err := st.ListRecentLogs(context.Background(), store.Scope{OwnerID: "u1", SubjectID: "c1", Secret: "pw1"}, 10)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestSave_PersistenceFailureStillServesGIF(t *testing.T) {
	s := New(config.Default(), failingStore{})

	rec := get(t, s, "/save?u=u1&c=c1&pw=pw1&d=hello")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pixelGIF, rec.Body.Bytes())
}

func TestPixelGIF_IsValidGIFHeader(t *testing.T) {
	require.Greater(t, len(pixelGIF), 6)
	assert.Equal(t, "GIF89a", string(pixelGIF[:6]))
}
