// Package outline resolves page ranges for a document's bookmark outline.
//
// An outline arrives as a flat, ordered list of records (title, nesting
// level, start page). The end page of each record is found by scanning
// forward for the next record that closes it under a boundary Policy.
package outline

import (
	"encoding/json"
	"fmt"
)

// Open is the end page of a range that extends through the last page of the
// document. It is never turned into a concrete page number here; extraction
// engines interpret it.
const Open = 0

// Record is a single outline entry as dumped from the document, in document
// order. Levels and pages start at 1.
type Record struct {
	Title     string `json:"title"`
	Level     int    `json:"level"`
	StartPage int    `json:"start_page"`
}

// Range is a record with its resolved, inclusive page interval.
type Range struct {
	Title string `json:"title"`
	Level int    `json:"level,omitempty"`
	Start int    `json:"start_page"`
	End   int    `json:"end_page,omitempty"` // Open (0) means through the last page
}

// IsOpen reports whether the range runs to the end of the document.
func (r Range) IsOpen() bool {
	return r.End == Open
}

// Pages returns the range as an "S-E" selector, with an empty E when open.
func (r Range) Pages() string {
	if r.IsOpen() {
		return fmt.Sprintf("%d-", r.Start)
	}
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// String returns a JSON representation of the Range for debugging.
func (r Range) String() string {
	b, _ := json.Marshal(r)
	return string(b)
}

// Policy decides which later record terminates the current record's range.
type Policy string

const (
	// PolicyExact ends a range at the next record on the same level.
	PolicyExact Policy = "exact"
	// PolicyLessOrEqual ends a range at the next record on the same or a
	// shallower level.
	PolicyLessOrEqual Policy = "less-or-equal"
)

// ValidatePolicy checks if the given policy string is valid and returns the Policy.
// "less" is accepted as a short alias for less-or-equal.
func ValidatePolicy(policy string) (Policy, error) {
	switch Policy(policy) {
	case PolicyExact:
		return PolicyExact, nil
	case PolicyLessOrEqual, "less":
		return PolicyLessOrEqual, nil
	default:
		return "", fmt.Errorf("unknown end page mode: %q (valid options: exact, less-or-equal)", policy)
	}
}

// closes reports whether a record at level next terminates a range at level cur.
func (p Policy) closes(next, cur int) bool {
	if p == PolicyExact {
		return next == cur
	}
	return next <= cur
}

// SelectMode is how records are filtered by level before resolution.
type SelectMode int

const (
	// SelectAny keeps every record. No level flag was given.
	SelectAny SelectMode = iota
	// SelectExact keeps records whose level equals Selection.Level.
	SelectExact
	// SelectMax keeps records whose level is at most Selection.Level.
	SelectMax
	// SelectAll keeps records whose level equals Selection.Level and
	// extracts every one of them in batch.
	SelectAll
)

// Selection is a level filter. The zero value keeps everything.
type Selection struct {
	Mode  SelectMode
	Level int
}

// Match reports whether a record at the given level passes the filter.
func (s Selection) Match(level int) bool {
	switch s.Mode {
	case SelectExact, SelectAll:
		return level == s.Level
	case SelectMax:
		return level <= s.Level
	default:
		return true
	}
}

// Batch reports whether the selection extracts every match without asking.
func (s Selection) Batch() bool {
	return s.Mode == SelectAll
}
