// ABOUTME: Read bridge handlers for the push and callback transmission variants
// ABOUTME: Serves documents that transmit scoped data to their embedding page exactly once

package server

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"regexp"
)

// defaultCallback is the function name invoked by /bridge.js when the
// caller names none.
const defaultCallback = "handleServerData"

// callbackNameRe bounds what may appear as a function reference in the
// callback response. The response body is executable code, so an
// unchecked name would be a script injection.
var callbackNameRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$.]*$`)

// handleBridge serves the push variant: an HTML document that, once
// loaded in a nested frame, posts the scoped payload to its parent with
// target origin "*", then idles. Reloading re-fetches and re-pushes
// current state; nothing accumulates.
func (s *Server) handleBridge(w http.ResponseWriter, r *http.Request) {
	scope := scopeFromQuery(r)

	payload, err := s.collectPayload(r.Context(), scope)
	if err != nil {
		s.logger.Error("bridge payload failed", "error", err)
		s.renderErrorPage(w, "memory fetch failed")
		return
	}

	// json.Marshal HTML-escapes < > & into \u00xx sequences, which keeps
	// the embedded payload from terminating the surrounding script.
	encoded, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("bridge payload encoding failed", "error", err)
		s.renderErrorPage(w, "memory fetch failed")
		return
	}

	allowFraming(w)
	s.renderBridgePage(w, template.JS(encoded))
}

// handleBridgeJS serves the callback variant: a script body that invokes
// a caller-named function with the payload, for sandboxes where a script
// include is the only available transport.
func (s *Server) handleBridgeJS(w http.ResponseWriter, r *http.Request) {
	scope := scopeFromQuery(r)

	callback := r.URL.Query().Get("callback")
	if callback == "" {
		callback = defaultCallback
	}
	if !callbackNameRe.MatchString(callback) {
		s.logger.Warn("rejecting callback name", "callback", callback)
		callback = defaultCallback
	}

	payload, err := s.collectPayload(r.Context(), scope)
	if err != nil {
		s.logger.Error("callback payload failed", "error", err)
		payload = &bridgePayload{
			Type:    messageTypeSync,
			Status:  "error",
			Message: "memory fetch failed",
		}
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("callback payload encoding failed", "error", err)
		encoded = []byte(`{"type":"LOG_DATA_SYNC","status":"error","message":"encoding failed"}`)
	}

	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = fmt.Fprintf(w, "if (typeof %s === \"function\") { %s(%s); }\n", callback, callback, encoded)
}
