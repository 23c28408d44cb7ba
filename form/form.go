package form

import (
	"errors"
	"fmt"
	"reflect"

	"formbind/binding"
	"formbind/schema"
)

// Form is one node of a bound schema instance tree. It wraps the models it
// was constructed from, the current field values, and the child forms for
// nested properties. Values hold scalars, *Form children, or []*Form
// collections, structurally isomorphic to the definition's property list.
type Form struct {
	def      *schema.Definition
	bindings map[string]*binding.Binding
	values   map[string]any

	// created marks singular nested properties materialized by Populate;
	// only those write the child model through the parent accessor at
	// sync. Pre-existing child models are never re-attached.
	created map[string]bool
}

// New builds a form tree from a single model bound under the default
// owner role, reading every non-write-only property from the model.
func New(def *schema.Definition, model any) (*Form, error) {
	return NewComposite(def, map[string]any{schema.DefaultOwner: model})
}

// NewComposite builds a form bound to several models under named owner
// roles; each property reads and writes the model its descriptor selects.
func NewComposite(def *schema.Definition, models map[string]any) (*Form, error) {
	if def == nil {
		return nil, errors.New("form: nil definition")
	}

	bindings := make(map[string]*binding.Binding, len(models))

	for role, model := range models {
		b, err := binding.New(model)
		if err != nil {
			return nil, fmt.Errorf("form %q: bind role %q: %w", def.Name(), role, err)
		}

		bindings[role] = b
	}

	f := &Form{
		def:      def,
		bindings: bindings,
		values:   make(map[string]any, def.Len()),
		created:  map[string]bool{},
	}

	if err := f.load(); err != nil {
		return nil, err
	}

	return f, nil
}

// load populates values from the bound models (the read path).
// EmptyWriteOnly properties are never read; they start out nil.
func (f *Form) load() error {
	for _, p := range f.def.Properties() {
		if p.Visibility == schema.EmptyWriteOnly {
			f.values[p.Name] = nil
			continue
		}

		b, err := f.binding(p.Owner)
		if err != nil {
			return err
		}

		raw, err := b.Get(p.Accessor)
		if err != nil {
			return fmt.Errorf("form %q: read %q: %w", f.def.Name(), p.Name, err)
		}

		switch p.Kind {
		case schema.Scalar:
			f.values[p.Name] = raw

		case schema.Nested:
			if isNil(raw) {
				f.values[p.Name] = nil
				continue
			}

			child, err := New(p.Child, raw)
			if err != nil {
				return err
			}

			f.values[p.Name] = child

		case schema.NestedCollection:
			elems, err := elements(raw)
			if err != nil {
				return fmt.Errorf("form %q: read %q: %w", f.def.Name(), p.Name, err)
			}

			children := make([]*Form, 0, len(elems))

			for _, elem := range elems {
				child, err := New(p.Child, elem)
				if err != nil {
					return err
				}

				children = append(children, child)
			}

			f.values[p.Name] = children
		}
	}

	return nil
}

// Definition returns the schema definition this form instantiates.
func (f *Form) Definition() *schema.Definition {
	return f.def
}

// Value returns the current value of the named property.
func (f *Form) Value(name string) (any, bool) {
	v, ok := f.values[name]
	return v, ok
}

// Child returns the form bound to a singular nested property, or false if
// the property is absent, not nested, or holds no child.
func (f *Form) Child(name string) (*Form, bool) {
	child, ok := f.values[name].(*Form)
	return child, ok && child != nil
}

// Children returns the forms bound to a collection property.
func (f *Form) Children(name string) ([]*Form, bool) {
	children, ok := f.values[name].([]*Form)
	return children, ok
}

// Model returns the model bound under the given owner role.
func (f *Form) Model(role string) (any, bool) {
	b, ok := f.bindings[role]
	if !ok {
		return nil, false
	}

	return b.Model(), true
}

func (f *Form) binding(role string) (*binding.Binding, error) {
	b, ok := f.bindings[role]
	if !ok {
		return nil, fmt.Errorf("form %q: no model bound for owner role %q", f.def.Name(), role)
	}

	return b, nil
}

// model returns the default-role model; child nodes are always
// single-model, so this is how a parent resolves a child's model.
func (f *Form) model() any {
	b, ok := f.bindings[schema.DefaultOwner]
	if !ok {
		return nil
	}

	return b.Model()
}

func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// elements flattens any slice or array value into []any. Nil means an
// empty collection.
func elements(raw any) ([]any, error) {
	if isNil(raw) {
		return nil, nil
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected slice, got %T", raw)
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out, nil
}

func joinPath(prefix, name string) string {
	if prefix == "" {
		return name
	}

	return prefix + "." + name
}
