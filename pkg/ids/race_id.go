// Package ids implements the strong identifiers from the data model
// (spec.md §3): RaceId and RunnerId. Both expose a total constructor that
// validates its input and an "unsafe" constructor for parser-internal use
// where the invariant was already proven by the caller (e.g. a fixed-length
// record field whose shape the upstream layout guarantees).
package ids

import (
	"fmt"
	"strings"
	"time"
)

// RaceId identifies a single race: 8-16 alphanumeric characters whose
// first 8 parse as a Gregorian date (yyyyMMdd), with the remainder
// (meeting/venue/race-number encoding, opaque to this type) alphanumeric.
type RaceId struct {
	value string
}

// NewRaceId validates s and returns a RaceId, or a validation error
// describing which invariant s violates.
func NewRaceId(s string) (RaceId, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return RaceId{}, fmt.Errorf("race id is blank")
	}
	if len(trimmed) < 8 || len(trimmed) > 16 {
		return RaceId{}, fmt.Errorf("race id %q must be 8-16 characters, got %d", trimmed, len(trimmed))
	}
	if !isAlphanumeric(trimmed) {
		return RaceId{}, fmt.Errorf("race id %q must be alphanumeric", trimmed)
	}
	datePart := trimmed[:8]
	if _, err := time.Parse("20060102", datePart); err != nil {
		return RaceId{}, fmt.Errorf("race id %q: first 8 characters %q are not a valid yyyyMMdd date: %w", trimmed, datePart, err)
	}
	return RaceId{value: trimmed}, nil
}

// NewRaceIdUnsafe builds a RaceId from s without validation. Use only when
// the invariant was already proven — e.g. s is a field the Record Codec
// extracted from a fixed-length layout whose offsets are known to produce
// a well-formed key.
func NewRaceIdUnsafe(s string) RaceId {
	return RaceId{value: strings.TrimSpace(s)}
}

// Value returns the trimmed underlying string.
func (r RaceId) Value() string { return r.value }

// String implements fmt.Stringer.
func (r RaceId) String() string { return r.value }

// IsZero reports whether r is the zero value (never produced by either
// constructor on success, but useful for callers holding an optional field).
func (r RaceId) IsZero() bool { return r.value == "" }

// MeetingDate returns the Gregorian date encoded in r's first 8 characters.
// Only meaningful when r was produced by NewRaceId or by NewRaceIdUnsafe on
// input that itself satisfies the format.
func (r RaceId) MeetingDate() (time.Time, error) {
	if len(r.value) < 8 {
		return time.Time{}, fmt.Errorf("race id %q too short to contain a date", r.value)
	}
	return time.Parse("20060102", r.value[:8])
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')) {
			return false
		}
	}
	return true
}
