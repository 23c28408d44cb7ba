// Package form implements the runtime tree that binds schema definitions
// to domain models: construction reads the models, population overwrites
// the tree from hierarchical input, validation aggregates a nested error
// report, and sync/save write the validated values back.
//
// # Lifecycle
//
//	f, err := form.New(albumDef, album)        // read path
//	err = f.Populate(input)                    // write path, form only
//	ok, rep := f.Validate()                    // rule checkers, read only
//	err = f.Save()                             // sync + bottom-up persist
//
// Models stay untouched until Sync or Save: populating and validating
// never write through a binding. A form tree is owned by the caller that
// constructed it for the duration of one such cycle; concurrent use of
// one tree is not supported.
//
// Structural problems (malformed input shape, a missing accessor, nested
// input with no child and no creation policy, a persistence failure)
// surface as errors and abort the running operation. Validation failures
// are not errors; they are data in the returned report.
package form
