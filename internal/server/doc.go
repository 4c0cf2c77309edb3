// Package server implements Apo's HTTP surface.
//
// The service exists to give a role-play chat page, sandboxed in an
// iframe with no fetch privileges, a way to persist and recall memory.
// Every operation therefore rides on what such a sandbox can still do:
// load images, embed nested frames, and include scripts. That shapes the
// whole surface into GET endpoints with query-string parameters:
//
//	GET /save           write gateway; appends log text (d) and/or
//	                    replaces the state snapshot (s); always answers
//	                    with a 1x1 GIF so an <img> trigger never breaks
//	GET /bridge         push variant read; an HTML document that posts
//	                    the scoped payload to its parent frame once
//	GET /bridge.js      callback variant read; a script body invoking a
//	                    named function (default handleServerData)
//	GET /manager        human-facing admin view with per-entry delete
//	GET /delete_action  secret-gated single-entry delete, then a script
//	                    redirect back to /manager
//	GET /health         liveness probe
//
// Scope parameters are u (owner id), c (subject id) and pw (secret) on
// every endpoint. A wrong secret yields empty results, never an error.
//
// Frame-embeddable responses carry "Content-Security-Policy:
// frame-ancestors *" because the embedding origin is not ours to know.
// Payloads embedded in script context are encoded with encoding/json,
// whose HTML escaping keeps user text from breaking out of the
// surrounding code.
package server
