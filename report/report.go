// Package report provides the nested error report produced by form
// validation.
//
// A Report mirrors the shape of the form tree it was produced from:
// messages are keyed by property name, nested forms contribute child
// reports, and collections contribute index-keyed child reports.
// Validation failures are data, not errors: an empty report means the
// tree is valid.
package report

import (
	"fmt"
	"strings"

	"formbind/internal/common"
)

// Report collects validation messages for one form node and its children.
type Report struct {
	// Messages maps a property name (or "" for whole-form messages) to
	// its failure messages.
	Messages map[string][]string

	// Nested maps a singular nested property name to its child report.
	Nested map[string]*Report

	// Indexed maps a collection property name to per-position child
	// reports. Positions without failures carry no entry.
	Indexed map[string]map[int]*Report
}

// New returns an empty report.
func New() *Report {
	return &Report{
		Messages: map[string][]string{},
		Nested:   map[string]*Report{},
		Indexed:  map[string]map[int]*Report{},
	}
}

// Add records a failure message against the named property.
// Use an empty name for messages about the form as a whole.
func (r *Report) Add(name, message string) {
	r.Messages[name] = append(r.Messages[name], message)
}

// AttachNested installs the child report for a singular nested property.
// Empty children are dropped so Empty stays a structural check.
func (r *Report) AttachNested(name string, child *Report) {
	if child == nil || child.Empty() {
		return
	}

	r.Nested[name] = child
}

// AttachIndexed installs the child report for position i of a collection
// property. Empty children are dropped.
func (r *Report) AttachIndexed(name string, i int, child *Report) {
	if child == nil || child.Empty() {
		return
	}

	if r.Indexed[name] == nil {
		r.Indexed[name] = map[int]*Report{}
	}

	r.Indexed[name][i] = child
}

// Merge folds another report for the same node into this one.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}

	for name, msgs := range other.Messages {
		r.Messages[name] = append(r.Messages[name], msgs...)
	}

	for name, child := range other.Nested {
		r.AttachNested(name, child)
	}

	for name, children := range other.Indexed {
		for i, child := range children {
			r.AttachIndexed(name, i, child)
		}
	}
}

// Empty returns true if the report and every child report carry no messages.
func (r *Report) Empty() bool {
	if r == nil {
		return true
	}

	for _, msgs := range r.Messages {
		if !common.IsEmpty(msgs) {
			return false
		}
	}

	for _, child := range r.Nested {
		if !child.Empty() {
			return false
		}
	}

	for _, children := range r.Indexed {
		for _, child := range children {
			if !child.Empty() {
				return false
			}
		}
	}

	return true
}

// Flatten returns every message keyed by its full path, e.g.
// "songs[0].title". Keys are produced in sorted order for determinism.
func (r *Report) Flatten() map[string][]string {
	out := map[string][]string{}
	r.flatten("", out)

	return out
}

func (r *Report) flatten(prefix string, out map[string][]string) {
	for _, name := range common.SortedKeys(r.Messages) {
		msgs := r.Messages[name]
		if common.IsEmpty(msgs) {
			continue
		}

		out[joinPath(prefix, name)] = append(out[joinPath(prefix, name)], msgs...)
	}

	for _, name := range common.SortedKeys(r.Nested) {
		r.Nested[name].flatten(joinPath(prefix, name), out)
	}

	for _, name := range common.SortedKeys(r.Indexed) {
		children := r.Indexed[name]
		for i, child := range children {
			child.flatten(fmt.Sprintf("%s[%d]", joinPath(prefix, name), i), out)
		}
	}
}

// String renders the flattened report, one "path: message" line per
// failure, sorted by path.
func (r *Report) String() string {
	flat := r.Flatten()

	var lines []string
	for _, path := range common.SortedKeys(flat) {
		for _, msg := range flat[path] {
			lines = append(lines, path+": "+msg)
		}
	}

	return strings.Join(lines, "\n")
}

func joinPath(prefix, name string) string {
	switch {
	case prefix == "":
		return name
	case name == "":
		return prefix
	default:
		return prefix + "." + name
	}
}
