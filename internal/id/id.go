// Package id generates identifiers for profiles, live clients and activity events.
package id

import (
	"fmt"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for nanoid-based identifiers.
const (
	PrefixProfile = "prf"
	PrefixClient  = "cli"
)

// Generate returns prefix + "-" + a 21 character URL-safe nanoid.
func Generate(prefix string) (string, error) {
	n, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + n, nil
}

// MustGenerate is like Generate but panics when the system has no entropy.
func MustGenerate(prefix string) string {
	v, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return v
}

// NewProfileID returns a fresh child profile id.
func NewProfileID() (string, error) {
	return Generate(PrefixProfile)
}

// NewEventID returns a random UUID for an activity event.
func NewEventID() string {
	return uuid.NewString()
}
