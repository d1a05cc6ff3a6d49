package models

import (
	"fmt"
	"strings"
)

// ValidationError is fatal for one update cycle: the cycle is rejected before
// any recomputation and the previously rendered results are left untouched.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: field %q %s", e.Field, e.Reason)
}

// NewValidationError creates a structured validation failure.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// DomainError marks an unrecognized chart-model or rule selector. It
// indicates a configuration or programmer error and is unreachable once
// upstream settings validation has run; it is never retried.
type DomainError struct {
	Kind     string // "chart model" or "outlier rule"
	Selector string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("unknown %s: %q", e.Kind, e.Selector)
}

// NewDomainError creates a calculation domain failure.
func NewDomainError(kind, selector string) *DomainError {
	return &DomainError{Kind: kind, Selector: selector}
}

// WarningList accumulates non-fatal per-row exclusions and other advisories
// during one cycle. They are joined and surfaced once alongside a successful
// result.
type WarningList struct {
	warnings []string
}

// Add appends one warning line.
func (w *WarningList) Add(format string, args ...interface{}) {
	w.warnings = append(w.warnings, fmt.Sprintf(format, args...))
}

// AddAll appends pre-built warning lines, skipping empties.
func (w *WarningList) AddAll(lines []string) {
	for _, line := range lines {
		if line != "" {
			w.warnings = append(w.warnings, line)
		}
	}
}

// Empty reports whether no warnings accumulated.
func (w *WarningList) Empty() bool {
	return len(w.warnings) == 0
}

// Join returns all warnings as one newline-separated message.
func (w *WarningList) Join() string {
	return strings.Join(w.warnings, "\n")
}
