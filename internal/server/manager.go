// ABOUTME: Admin surface handlers for viewing and deleting scoped memory logs
// ABOUTME: Delete self-redirects back to the same scope's manager view

package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// handleManager renders the human-facing view of a scope: the snapshot
// sub-sections and the recent log entries, each with copy and delete
// actions. Entries are never editable here, only deletable.
func (s *Server) handleManager(w http.ResponseWriter, r *http.Request) {
	scope := scopeFromQuery(r)

	payload, err := s.collectPayload(r.Context(), scope)
	if err != nil {
		s.logger.Error("manager view failed", "error", err)
		s.renderErrorPage(w, "memory archive is unavailable")
		return
	}

	data := managerData{
		Title:      fmt.Sprintf("%s / %s", scope.OwnerID, scope.SubjectID),
		Owner:      scope.OwnerID,
		Subject:    scope.SubjectID,
		State:      payload.State,
		StateError: payload.StateError,
	}
	for _, item := range payload.Logs {
		data.Logs = append(data.Logs, managerLogItem{
			ID:        item.ID,
			Date:      item.Date,
			Content:   item.Content,
			DeleteURL: deleteActionURL(item.ID, scope.OwnerID, scope.SubjectID, scope.Secret),
		})
	}

	allowFraming(w)
	s.renderManagerPage(w, data)
}

// handleDeleteAction deletes one entry if the supplied secret matches its
// stored one, then redirects back to the manager view for the same scope.
// A wrong secret or unknown id is indistinguishable from success: the
// caller lands on the refreshed view either way.
func (s *Server) handleDeleteAction(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	scope := scopeFromQuery(r)

	id, err := strconv.ParseInt(q.Get("id"), 10, 64)
	if err == nil && scope.Secret != "" {
		deleted, delErr := s.store.DeleteLog(r.Context(), id, scope.Secret)
		if delErr != nil {
			s.logger.Error("deleting memory log failed", "id", id, "error", delErr)
		} else if deleted {
			s.logger.Info("memory log deleted", "id", id, "owner", scope.OwnerID)
		}
	}

	// A script redirect rather than a 302: the manager lives in an
	// iframe, where the script form survives stricter sandbox policies.
	target := managerURL(scope.OwnerID, scope.SubjectID, scope.Secret)
	encoded, _ := json.Marshal(target)

	allowFraming(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = fmt.Fprintf(w, "<script>location.href=%s;</script>", encoded)
}

func managerURL(owner, subject, secret string) string {
	v := url.Values{}
	v.Set("u", owner)
	v.Set("c", subject)
	v.Set("pw", secret)
	return "/manager?" + v.Encode()
}

func deleteActionURL(id int64, owner, subject, secret string) string {
	v := url.Values{}
	v.Set("id", strconv.FormatInt(id, 10))
	v.Set("u", owner)
	v.Set("c", subject)
	v.Set("pw", secret)
	return "/delete_action?" + v.Encode()
}
