package schema

// DefaultOwner is the owner role a property binds to when no role is
// selected. Single-model forms bind their model under this role.
const DefaultOwner = "self"

// Transform is an optional hook applied to an outgoing value before the
// default assignment during sync. It replaces runtime setter overriding:
// the default write still happens, the transform only shapes the value.
type Transform func(value any) any

// Property is the immutable descriptor for one declared field.
type Property struct {
	// Name is the public identifier, unique within its Definition.
	Name string

	// Accessor is the identifier resolved against the owning model.
	// Defaults to Name.
	Accessor string

	// Owner selects which bound model this property reads and writes in a
	// multi-model composition. Defaults to DefaultOwner.
	Owner string

	// Kind is the nesting shape of the property.
	Kind Kind

	// Child is the definition instantiated for nested values.
	// Present iff Kind != Scalar.
	Child *Definition

	// Visibility controls whether the property crosses the model boundary
	// at construction and at sync.
	Visibility Visibility

	// Populator materializes a missing nested model during population.
	// Nil means population of a missing child fails.
	Populator Populator

	// Persist controls whether Save persists instances of Child.
	Persist bool

	// Transform, if set, shapes the value before the sync write.
	Transform Transform

	// override marks an explicit intent to replace a same-named property
	// inherited from a base definition or an earlier declaration.
	override bool
}

// Option configures a single property declaration.
type Option func(*Property)

// As sets the accessor name resolved against the owning model.
func As(accessor string) Option {
	return func(p *Property) { p.Accessor = accessor }
}

// Owner binds the property to the named owner role.
func Owner(role string) Option {
	return func(p *Property) { p.Owner = role }
}

// Virtual marks the property read-only: read from the model at
// construction, never overwritten by input, never written back.
func Virtual() Option {
	return func(p *Property) { p.Visibility = VirtualReadOnly }
}

// WriteOnly marks the property as existing only for input and validation:
// never read from the model, never written back.
func WriteOnly() Option {
	return func(p *Property) { p.Visibility = EmptyWriteOnly }
}

// WithPopulator sets the creation policy invoked when input references a
// nested entry with no existing child.
func WithPopulator(pop Populator) Option {
	return func(p *Property) { p.Populator = pop }
}

// SkipPersist excludes the nested child models from Save persistence.
func SkipPersist() Option {
	return func(p *Property) { p.Persist = false }
}

// WithTransform installs a value transform applied before the sync write.
func WithTransform(fn Transform) Option {
	return func(p *Property) { p.Transform = fn }
}

// Override declares the explicit intent to replace a same-named property
// from a base definition, an included fragment, or an earlier declaration.
// Without it, redeclaring a name is a definition error.
func Override() Option {
	return func(p *Property) { p.override = true }
}
