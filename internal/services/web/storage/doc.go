// Package storage declares persistence contracts for web-owned session data.
//
// The web service only persists a mirror of what the notes backend already
// knows: the last confirmed user of each browser session and the backend
// cookies that keep that session alive. Both can be discarded at any time.
package storage
