// Package timeouts defines shared timeout constants used across the web
// process and the command-line client.
package timeouts

import "time"

// BackendRequest caps a single call to the notes backend API.
const BackendRequest = 10 * time.Second

// SessionCheck caps the background session reconciliation call.
const SessionCheck = 10 * time.Second

// ConfirmWait is how long a page request waits for an in-flight session
// check before the shell renders the loading screen instead.
const ConfirmWait = 1500 * time.Millisecond

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
