package schema

import (
	"fmt"

	"formbind/report"
)

// Checker is the opaque validation-rule contract bound to a definition.
// It is a pure function of the form node's current values and never sees
// the underlying models. Nested values appear as form nodes; checkers
// normally inspect scalars only and leave children to their own checkers.
type Checker interface {
	Check(values map[string]any) *report.Report
}

// CheckerFunc adapts a plain function to the Checker interface.
type CheckerFunc func(values map[string]any) *report.Report

// Check implements Checker.
func (f CheckerFunc) Check(values map[string]any) *report.Report {
	return f(values)
}

// DefinitionError reports a malformed or conflicting schema definition.
// It is raised at definition time and is never recoverable at runtime.
type DefinitionError struct {
	Schema   string
	Property string
	Reason   string
}

// Error implements the error interface.
func (e *DefinitionError) Error() string {
	if e.Property == "" {
		return fmt.Sprintf("schema %q: %s", e.Schema, e.Reason)
	}

	return fmt.Sprintf("schema %q: property %q: %s", e.Schema, e.Property, e.Reason)
}

// Definition is an immutable, finalized schema definition: an ordered,
// name-unique list of property descriptors plus an optional rule checker.
type Definition struct {
	name    string
	props   []Property
	index   map[string]int
	checker Checker
}

// Name returns the definition's declared name.
func (d *Definition) Name() string {
	return d.name
}

// Properties returns the descriptors in declaration order.
// The returned slice is shared and must not be modified.
func (d *Definition) Properties() []Property {
	return d.props
}

// Property returns the descriptor with the given public name.
func (d *Definition) Property(name string) (Property, bool) {
	i, ok := d.index[name]
	if !ok {
		return Property{}, false
	}

	return d.props[i], true
}

// Len returns the number of declared properties.
func (d *Definition) Len() int {
	return len(d.props)
}

// Checker returns the bound rule checker, or nil if none was declared.
func (d *Definition) Checker() Checker {
	return d.checker
}
