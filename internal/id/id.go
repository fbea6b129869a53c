package id

import (
	"fmt"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for the entity ids this server mints itself. External actors
// (users, general books from the catalog service) arrive with UUIDs and
// are never generated here.
const (
	PrefixSwap       = "swap"
	PrefixSubSwap    = "sub"
	PrefixMeetup     = "meet"
	PrefixTimeline   = "tml"
	PrefixFeedback   = "fbk"
	PrefixIssue      = "iss"
	PrefixReview     = "rev"
	PrefixBookmark   = "bmk"
	PrefixSocialLink = "sml"
	PrefixUserBook   = "ubk"
)

// Generate creates a prefixed unique ID using NanoID
// Format: prefix-nanoid (e.g., "swap-V1StGXR8_Z5jdHi6B-myT")
//
// NanoIDs are URL-friendly, compact (21 characters vs UUID's 36),
// and use a larger alphabet for better entropy per character.
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	// Use default NanoID (21 characters, URL-safe alphabet)
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
// Use this only when you're certain the system entropy is available,
// or when failure should crash the program (e.g., during initialization).
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// IsExternalID reports whether s looks like an identifier minted by the
// external identity/catalog service (a UUID). The core only checks format,
// never existence - lookups against the real directory happen upstream.
func IsExternalID(s string) bool {
	return uuid.Validate(s) == nil
}
