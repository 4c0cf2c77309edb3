// ABOUTME: Template rendering functions for the bridge, manager and error pages
// ABOUTME: Loads templates from the embedded filesystem and renders them

package server

import (
	"html/template"
	"net/http"
)

// Template data types
type bridgeData struct {
	Payload template.JS
}

type managerLogItem struct {
	ID        int64
	Date      string
	Content   string
	DeleteURL string
}

type managerData struct {
	Title      string
	Owner      string
	Subject    string
	Logs       []managerLogItem
	State      *snapshotState
	StateError string
}

type errorData struct {
	Message string
}

// renderBridgePage renders the push-variant bridge document around a
// pre-encoded JSON payload.
func (s *Server) renderBridgePage(w http.ResponseWriter, payload template.JS) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/bridge.html"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := tmpl.Execute(w, bridgeData{Payload: payload}); err != nil {
		s.logger.Error("failed to render bridge page", "error", err)
	}
}

// renderManagerPage renders the admin view for one scope
func (s *Server) renderManagerPage(w http.ResponseWriter, data managerData) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/manager.html"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render manager page", "error", err)
	}
}

// renderErrorPage renders a visible but self-contained error document.
// Used by the manager and bridge endpoints when persistence fails; the
// write endpoint never renders this (it always serves the GIF).
func (s *Server) renderErrorPage(w http.ResponseWriter, message string) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/error.html"))

	allowFraming(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	if err := tmpl.Execute(w, errorData{Message: message}); err != nil {
		s.logger.Error("failed to render error page", "error", err)
	}
}
