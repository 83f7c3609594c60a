// Package session owns the authentication state of one client session.
//
// A Provider hydrates the last known identity from a persisted mirror, then
// reconciles it against the notes backend. The backend stays authoritative:
// the mirror only lets a returning session render its identity early.
//
// A Registry hands out one Provider per client session key and is built once
// at startup by the owning process.
package session
