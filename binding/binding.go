package binding

import (
	"errors"
	"fmt"
)

var (
	// ErrNilModel reports a binding constructed around a nil model.
	ErrNilModel = errors.New("binding: model is nil")

	// ErrNotPersistable reports a persist call on a model that does not
	// implement Persister.
	ErrNotPersistable = errors.New("binding: model does not implement Persister")
)

// Accessor is the model accessor contract: named reads and writes resolved
// dynamically per binding.
type Accessor interface {
	Get(name string) (any, error)
	Set(name string, value any) error
}

// Persister is the opaque persistence contract a model may supply.
// Any non-nil result is fatal to the save that triggered it; the caller
// never retries and never rolls siblings back.
type Persister interface {
	Persist() error
}

// MissingAccessorError reports a model that lacks an expected reader or
// writer. It is fatal to the operation that hit it and is surfaced to the
// caller, never swallowed.
type MissingAccessorError struct {
	// Model describes the model type.
	Model string

	// Accessor is the name that failed to resolve.
	Accessor string

	// Write is true when a writer was required, false for a reader.
	Write bool
}

// Error implements the error interface.
func (e *MissingAccessorError) Error() string {
	side := "readable"
	if e.Write {
		side = "writable"
	}

	return fmt.Sprintf("binding: model %s has no %s accessor %q", e.Model, side, e.Accessor)
}

// Binding wraps exactly one model behind the accessor contract.
type Binding struct {
	model any
	acc   Accessor
}

// New wraps the model in a Binding, picking the accessor adapter:
//   - the model itself, when it implements Accessor
//   - a map adapter for map[string]any
//   - a reflection adapter for structs and pointers to structs
func New(model any) (*Binding, error) {
	if model == nil {
		return nil, ErrNilModel
	}

	var (
		acc Accessor
		err error
	)

	switch m := model.(type) {
	case Accessor:
		acc = m
	case map[string]any:
		acc = mapAccessor{values: m}
	default:
		acc, err = newReflectAccessor(model)
	}

	if err != nil {
		return nil, err
	}

	return &Binding{model: model, acc: acc}, nil
}

// Model returns the wrapped model.
func (b *Binding) Model() any {
	return b.model
}

// Get reads the named accessor from the model.
func (b *Binding) Get(name string) (any, error) {
	return b.acc.Get(name)
}

// Set writes the named accessor on the model.
func (b *Binding) Set(name string, value any) error {
	return b.acc.Set(name, value)
}

// Persist dispatches to the model's Persister implementation. The failure,
// if any, is returned verbatim.
func (b *Binding) Persist() error {
	p, ok := b.model.(Persister)
	if !ok {
		return fmt.Errorf("%w: %T", ErrNotPersistable, b.model)
	}

	return p.Persist()
}

// mapAccessor adapts a map[string]any model. A read of an absent key is a
// missing accessor, not a nil value; writes accept any key.
type mapAccessor struct {
	values map[string]any
}

func (m mapAccessor) Get(name string) (any, error) {
	v, ok := m.values[name]
	if !ok {
		return nil, &MissingAccessorError{Model: "map[string]any", Accessor: name}
	}

	return v, nil
}

func (m mapAccessor) Set(name string, value any) error {
	m.values[name] = value
	return nil
}
