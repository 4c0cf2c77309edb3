// ABOUTME: Write gateway handler invoked as an image-load side effect
// ABOUTME: Appends log text and/or upserts the state snapshot, always serving a fixed GIF

package server

import (
	"encoding/base64"
	"net/http"
)

// pixelGIF is a transparent 1x1 GIF. The write endpoint always answers
// with this payload so the caller's rendering pipeline never observes a
// failure.
var pixelGIF = func() []byte {
	b, err := base64.StdEncoding.DecodeString(
		"R0lGODlhAQABAIAAAAAAAP///yH5BAEAAAAALAAAAAABAAEAAAIBRAA7")
	if err != nil {
		panic("decoding pixel gif: " + err.Error())
	}
	return b
}()

// handleSave accepts GET /save?u=&c=&pw=&d=&s=.
//
// u, c and pw must all be non-empty or the call is a silent no-op. A
// non-empty d appends a log entry; a non-empty s replaces the scope's
// snapshot. Persistence failures are logged and swallowed: the response
// is the pixel GIF regardless of outcome.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	scope := scopeFromQuery(r)
	logText := q.Get("d")
	stateBlob := q.Get("s")

	if scope.Valid() {
		if logText != "" {
			if _, err := s.store.AppendLog(r.Context(), scope, logText); err != nil {
				s.logger.Error("appending memory log failed",
					"owner", scope.OwnerID, "subject", scope.SubjectID, "error", err)
			}
		}

		if stateBlob != "" {
			if err := s.store.UpsertSnapshot(r.Context(), scope, stateBlob); err != nil {
				s.logger.Error("upserting snapshot failed",
					"owner", scope.OwnerID, "subject", scope.SubjectID, "error", err)
			}
		}
	}

	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pixelGIF)
}
