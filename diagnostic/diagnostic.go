// Package diagnostic provides structured errors and warnings for schema
// file validation: duplicate names, unresolved references, unknown kind or
// visibility values, with optional suggestions.
package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"formbind/internal/common"
)

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Schema identifies which schema declaration this relates to (if any).
	Schema string
	// Property identifies which property this relates to (if any).
	Property string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Schema != "" {
		prefix = append(prefix, "["+d.Schema+"]")
	}

	if d.Property != "" {
		prefix = append(prefix, d.Property)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

// Diagnostics holds all diagnostic information from one validation pass.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, schemaName, property string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: Error,
		Code:     code,
		Message:  message,
		Schema:   schemaName,
		Property: property,
	})
}

// AddErrorWithSuggestions adds an error diagnostic carrying alternatives.
func (d *Diagnostics) AddErrorWithSuggestions(code, message, schemaName, property string, suggestions []string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity:    Error,
		Code:        code,
		Message:     message,
		Schema:      schemaName,
		Property:    property,
		Suggestions: suggestions,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, schemaName, property string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: Warning,
		Code:     code,
		Message:  message,
		Schema:   schemaName,
		Property: property,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return !common.IsEmpty(d.Errors)
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// Error returns a combined error from all error diagnostics, or nil.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}
