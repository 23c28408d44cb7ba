package form

import "fmt"

// PopulateError reports input whose shape cannot be matched against the
// declared nesting kind, e.g. a scalar where a collection property expects
// a sequence of mappings. Populate verifies shapes before applying
// anything, so a PopulateError means no value was changed.
type PopulateError struct {
	// Path is the property path the mismatch occurred at, e.g. "songs[1]".
	Path string

	// Reason describes the mismatch.
	Reason string
}

// Error implements the error interface.
func (e *PopulateError) Error() string {
	return fmt.Sprintf("form: populate %s: %s", e.Path, e.Reason)
}

// MissingNestedModelError reports nested input referencing a position with
// no existing child and no creation policy on the property. It is a
// structural error, distinct from a validation-rule failure.
type MissingNestedModelError struct {
	// Path is the property path of the missing child, e.g. "songs[2]".
	Path string
}

// Error implements the error interface.
func (e *MissingNestedModelError) Error() string {
	return fmt.Sprintf("form: populate %s: no nested model and no creation policy", e.Path)
}

// PersistError wraps a persistence failure with the node it occurred at.
// The underlying failure is preserved verbatim; nothing is retried and
// already-persisted siblings are not rolled back.
type PersistError struct {
	// Path is the property path of the failing node; empty for the root.
	Path string

	// Role is the owner role whose binding failed to persist.
	Role string

	// Err is the failure returned by the model's Persister.
	Err error
}

// Error implements the error interface.
func (e *PersistError) Error() string {
	at := e.Path
	if at == "" {
		at = "root"
	}

	return fmt.Sprintf("form: save %s (role %s): %v", at, e.Role, e.Err)
}

// Unwrap returns the underlying persistence failure.
func (e *PersistError) Unwrap() error {
	return e.Err
}
