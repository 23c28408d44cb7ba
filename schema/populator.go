package schema

// PopulateContext carries the construction context handed to a Populator
// when population hits a nested entry with no existing child.
type PopulateContext struct {
	// Parent is the form node that owns the missing child. It is typed as
	// any to keep the dependency direction acyclic; policies that need it
	// assert to *form.Form.
	Parent any

	// Child is the definition the new model will be bound to.
	Child *Definition

	// Index is the collection position being materialized, or -1 for a
	// singular nested property.
	Index int
}

// Populator materializes a model for a nested entry the input references
// but the form tree does not hold yet. A policy may construct a fresh
// model or look an existing one up by identifier from the raw fragment.
// It must not mutate the parent's models; attaching the new model happens
// at sync time.
type Populator interface {
	Materialize(fragment map[string]any, pctx PopulateContext) (any, error)
}

// PopulatorFunc adapts a plain function to the Populator interface.
type PopulatorFunc func(fragment map[string]any, pctx PopulateContext) (any, error)

// Materialize implements Populator.
func (f PopulatorFunc) Materialize(fragment map[string]any, pctx PopulateContext) (any, error) {
	return f(fragment, pctx)
}

// Factory adapts a zero-argument constructor into a Populator. It is the
// default-style policy: every gap gets a freshly constructed model with no
// prior state.
func Factory(fn func() any) Populator {
	return PopulatorFunc(func(map[string]any, PopulateContext) (any, error) {
		return fn(), nil
	})
}
