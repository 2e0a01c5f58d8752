// Package id generates short random identifiers for tdp CLI sessions.
package id

import "github.com/google/uuid"

// GenerateShort returns an 8-character unique suffix for a session id
// (e.g. "session-a1b2c3d4"), short enough to type on the command line
// but collision-resistant enough for a single user's local sessions.
func GenerateShort() string {
	return uuid.New().String()[:8]
}
