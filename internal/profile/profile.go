// Package profile extracts structured candidate information from raw resume
// text using rule-based heuristics. No ML runtime and no network access:
// field misses degrade to sentinel values instead of failing, so a partial
// profile is always preferred over no profile.
package profile

import (
	"errors"
	"strings"
)

// UnknownName is the sentinel used when no candidate name can be found.
const UnknownName = "Unknown"

// minTextLength is the smallest resume text worth extracting from.
const minTextLength = 50

var (
	// ErrInsufficientText reports resume text too short to extract from.
	ErrInsufficientText = errors.New("resume text is too short to extract a profile")

	// ErrNoSignal reports text that yielded no name, email or skills at
	// all. Everything else degrades to sentinels, but a profile with zero
	// usable signal is worthless to the caller.
	ErrNoSignal = errors.New("no usable candidate signal found in text")
)

// Profile is the structured candidate record built from one resume.
// Immutable after extraction; missing fields hold sentinels rather than
// causing errors.
type Profile struct {
	Name       string
	Email      string
	Phone      string
	Skills     []string
	Experience []string
	Education  []string
	Summary    string
}

func containsForm(lower, form string) bool {
	return strings.Contains(lower, form)
}
