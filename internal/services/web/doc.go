// Package web owns the browser-facing notes UX.
//
// It wires signed client sessions to backend sessions, mounts the shell,
// login and notes modules, and serves them with static assets and a health
// check. Pages are rendered on the server; the backend is never called from
// the browser.
package web
