package schema

import (
	"slices"
)

// Builder accumulates property declarations and finalizes them into an
// immutable Definition. A zero Builder is not usable; construct with New
// or Derive.
type Builder struct {
	name    string
	base    *Definition
	decls   []Property
	checker Checker
}

// New returns a Builder for a fresh definition with the given name.
func New(name string) *Builder {
	return &Builder{name: name}
}

// Derive returns a Builder seeded with a copy of the base definition's
// descriptor list. Own declarations append new names; redeclaring an
// inherited name requires the Override option.
func Derive(name string, base *Definition) *Builder {
	b := &Builder{name: name, base: base}
	if base != nil {
		b.checker = base.checker
	}

	return b
}

// Scalar declares a plain value property.
func (b *Builder) Scalar(name string, opts ...Option) *Builder {
	return b.declare(name, Scalar, nil, opts)
}

// Nested declares a singular nested property instantiating child.
func (b *Builder) Nested(name string, child *Definition, opts ...Option) *Builder {
	return b.declare(name, Nested, child, opts)
}

// Collection declares an ordered nested-collection property whose elements
// instantiate child.
func (b *Builder) Collection(name string, child *Definition, opts ...Option) *Builder {
	return b.declare(name, NestedCollection, child, opts)
}

// Include appends the fragment's declarations, subject to the same merge
// rule as own declarations: new names append, same names require Override.
func (b *Builder) Include(f *Fragment) *Builder {
	if f != nil {
		b.decls = append(b.decls, f.decls...)
	}

	return b
}

// Check binds the definition's rule checker. A derived definition inherits
// the base checker unless Check replaces it.
func (b *Builder) Check(c Checker) *Builder {
	b.checker = c
	return b
}

// Build finalizes the declarations into an immutable Definition.
// It fails with *DefinitionError on a duplicate name without Override,
// an Override of a name that does not exist, or a nested declaration
// without a child definition.
func (b *Builder) Build() (*Definition, error) {
	var props []Property
	if b.base != nil {
		props = slices.Clone(b.base.props)
		// Inherited descriptors carry no override intent of their own.
		for i := range props {
			props[i].override = false
		}
	}

	index := map[string]int{}
	for i, p := range props {
		index[p.Name] = i
	}

	for _, decl := range b.decls {
		if err := checkDecl(b.name, decl); err != nil {
			return nil, err
		}

		at, exists := index[decl.Name]

		switch {
		case exists && !decl.override:
			return nil, &DefinitionError{
				Schema:   b.name,
				Property: decl.Name,
				Reason:   "duplicate property without explicit override",
			}

		case exists:
			decl.override = false
			props[at] = decl

		case decl.override:
			return nil, &DefinitionError{
				Schema:   b.name,
				Property: decl.Name,
				Reason:   "override declared but no such property exists",
			}

		default:
			index[decl.Name] = len(props)
			props = append(props, decl)
		}
	}

	return &Definition{
		name:    b.name,
		props:   props,
		index:   index,
		checker: b.checker,
	}, nil
}

func checkDecl(schemaName string, p Property) error {
	if p.Name == "" {
		return &DefinitionError{Schema: schemaName, Reason: "property with empty name"}
	}

	if p.Kind != Scalar && p.Child == nil {
		return &DefinitionError{
			Schema:   schemaName,
			Property: p.Name,
			Reason:   "missing child definition for " + p.Kind.String() + " property",
		}
	}

	if p.Kind == Scalar && p.Child != nil {
		return &DefinitionError{
			Schema:   schemaName,
			Property: p.Name,
			Reason:   "child definition on a scalar property",
		}
	}

	return nil
}

func (b *Builder) declare(name string, kind Kind, child *Definition, opts []Option) *Builder {
	p := Property{
		Name:     name,
		Accessor: name,
		Owner:    DefaultOwner,
		Kind:     kind,
		Child:    child,
		Persist:  true,
	}

	for _, opt := range opts {
		opt(&p)
	}

	b.decls = append(b.decls, p)

	return b
}

// Fragment is a reusable, ordered list of property declarations that can
// be included into builders. It replaces mixin-style module inclusion with
// explicit composition.
type Fragment struct {
	decls []Property
}

// NewFragment returns an empty fragment.
func NewFragment() *Fragment {
	return &Fragment{}
}

// Scalar declares a plain value property on the fragment.
func (f *Fragment) Scalar(name string, opts ...Option) *Fragment {
	return f.declare(name, Scalar, nil, opts)
}

// Nested declares a singular nested property on the fragment.
func (f *Fragment) Nested(name string, child *Definition, opts ...Option) *Fragment {
	return f.declare(name, Nested, child, opts)
}

// Collection declares a nested-collection property on the fragment.
func (f *Fragment) Collection(name string, child *Definition, opts ...Option) *Fragment {
	return f.declare(name, NestedCollection, child, opts)
}

func (f *Fragment) declare(name string, kind Kind, child *Definition, opts []Option) *Fragment {
	p := Property{
		Name:     name,
		Accessor: name,
		Owner:    DefaultOwner,
		Kind:     kind,
		Child:    child,
		Persist:  true,
	}

	for _, opt := range opts {
		opt(&p)
	}

	f.decls = append(f.decls, p)

	return f
}
