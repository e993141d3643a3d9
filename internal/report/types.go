// Package report implements the hazard report core: the domain model, the
// durable report store, and the pure read-side views (filtering and
// aggregation) consumed by the CLI and the MCP tools.
package report

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidStatus rejects a status outside the enumerated set.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidPriority rejects a priority outside the enumerated set.
	ErrInvalidPriority = errors.New("invalid priority")
)

// Status is the triage state of a report.
type Status string

const (
	// StatusPending is the initial state of every submitted report.
	StatusPending Status = "pending"

	// StatusInvestigating marks a report a reviewer is actively working.
	StatusInvestigating Status = "investigating"

	// StatusResolved marks a closed report.
	StatusResolved Status = "resolved"
)

// DefaultStatus is applied at creation and repaired onto any stored report
// with a missing or unknown status.
const DefaultStatus = StatusPending

// Priority is the severity classification assigned by reviewers.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// DefaultPriority is assigned at creation (the submitter never chooses it)
// and repaired onto any stored report with a missing or unknown priority.
const DefaultPriority = PriorityMedium

// ParseStatus parses a status string (case-insensitive, trimmed).
// Returns an error for values outside the enumerated set.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "investigating":
		return StatusInvestigating, nil
	case "resolved":
		return StatusResolved, nil
	default:
		return "", fmt.Errorf("%w: %q (expected pending, investigating, or resolved)", ErrInvalidStatus, s)
	}
}

// Valid reports whether the status is one of the enumerated values.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInvestigating, StatusResolved:
		return true
	default:
		return false
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// ParsePriority parses a priority string (case-insensitive, trimmed).
// Returns an error for values outside the enumerated set.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	default:
		return "", fmt.Errorf("%w: %q (expected low, medium, or high)", ErrInvalidPriority, s)
	}
}

// Valid reports whether the priority is one of the enumerated values.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation of the priority.
func (p Priority) String() string {
	return string(p)
}

// Location is a geocoordinate value object. Equality is by value; there is
// no identity. Accuracy is in meters and optional.
type Location struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

// Valid reports whether the coordinates are inside the WGS84 range.
// Out-of-range locations are excluded from viewport math rather than
// clamped or zeroed.
func (l Location) Valid() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 &&
		l.Longitude >= -180 && l.Longitude <= 180
}

// Report is a single submitted hazard incident record. ID and Timestamp are
// assigned by the store and immutable; Status and Priority are the only
// fields that change after creation, and only through the store's update
// operations.
type Report struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    *Location `json:"location,omitempty"`
	Photos      []Media   `json:"photos,omitempty"`
	Videos      []Media   `json:"videos,omitempty"`
	Status      Status    `json:"status,omitempty"`
	Priority    Priority  `json:"priority,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Draft is the submitter-provided part of a report. Everything except Title
// is optional; the store fills in identity, timestamp, and lifecycle fields.
type Draft struct {
	Title       string
	Description string
	Location    *Location
	Photos      []Media
	Videos      []Media
}
