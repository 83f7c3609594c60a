// Package id generates URL-safe identifiers for browser sessions.
//
// Identifiers are UUIDv4 bytes encoded as lowercase base32 (RFC 4648) without
// padding, which yields 26 characters that are safe in cookies and URLs.
package id

import (
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a new random identifier.
func NewID() (string, error) {
	value, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return strings.ToLower(encoding.EncodeToString(value[:])), nil
}

// Valid reports whether value has the shape produced by NewID.
func Valid(value string) bool {
	if len(value) != 26 {
		return false
	}
	decoded, err := encoding.DecodeString(strings.ToUpper(value))
	if err != nil {
		return false
	}
	return len(decoded) == 16
}
