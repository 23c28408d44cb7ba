// Package binding wraps domain models behind a narrow accessor contract so
// the form layer never depends on concrete model types.
//
// A Binding holds exactly one model, shared with the caller who supplied
// it; the package only reads and writes the model, never destroys it.
// Models that implement Accessor themselves are used as-is; plain structs
// get a reflection adapter over exported fields and getter/setter method
// pairs; map[string]any models get a map adapter.
//
// Persistence stays opaque: Persist dispatches to the model's own
// Persister implementation and reports models that have none.
package binding
