package form

import (
	"fmt"

	"formbind/binding"
	"formbind/internal/common"
	"formbind/schema"
)

// Sync writes the current values back onto the bound models without
// persisting anything. VirtualReadOnly and EmptyWriteOnly properties never
// reach a model. Each child writes its own fields through its own binding;
// the parent only maintains membership: collection accessors receive the
// current child models, and a singular child created by Populate is
// attached through the parent accessor exactly once.
//
// Sync is idempotent: a second call with no intervening Populate leaves
// the models in the same state.
func (f *Form) Sync() error {
	return f.sync("")
}

func (f *Form) sync(path string) error {
	for _, p := range f.def.Properties() {
		if p.Visibility != schema.Normal {
			continue
		}

		ppath := joinPath(path, p.Name)

		b, err := f.binding(p.Owner)
		if err != nil {
			return err
		}

		switch p.Kind {
		case schema.Scalar:
			v := f.values[p.Name]
			if p.Transform != nil {
				v = p.Transform(v)
			}

			if err := b.Set(p.Accessor, v); err != nil {
				return fmt.Errorf("form: sync %s: %w", ppath, err)
			}

		case schema.Nested:
			child, ok := f.Child(p.Name)
			if !ok {
				continue
			}

			if err := child.sync(ppath); err != nil {
				return err
			}

			if f.created[p.Name] {
				if err := b.Set(p.Accessor, child.model()); err != nil {
					return fmt.Errorf("form: sync %s: %w", ppath, err)
				}
			}

		case schema.NestedCollection:
			children, _ := f.Children(p.Name)
			models := make([]any, len(children))

			for i, child := range children {
				if err := child.sync(fmt.Sprintf("%s[%d]", ppath, i)); err != nil {
					return err
				}

				models[i] = child.model()
			}

			if err := b.Set(p.Accessor, models); err != nil {
				return fmt.Errorf("form: sync %s: %w", ppath, err)
			}
		}
	}

	return nil
}

// Save syncs the tree, then persists it bottom-up: children before their
// parent, siblings in declaration order, skipping nested properties whose
// descriptor disables persistence. Each node persists once per distinct
// binding, so a composition with several properties on one owner persists
// that owner a single time. The first failure aborts the walk; nothing is
// retried or rolled back.
func (f *Form) Save() error {
	if err := f.Sync(); err != nil {
		return err
	}

	return f.persist("")
}

func (f *Form) persist(path string) error {
	for _, p := range f.def.Properties() {
		if p.Kind == schema.Scalar || !p.Persist || p.Visibility != schema.Normal {
			continue
		}

		ppath := joinPath(path, p.Name)

		switch p.Kind {
		case schema.Nested:
			if child, ok := f.Child(p.Name); ok {
				if err := child.persist(ppath); err != nil {
					return err
				}
			}

		case schema.NestedCollection:
			children, _ := f.Children(p.Name)
			for i, child := range children {
				if err := child.persist(fmt.Sprintf("%s[%d]", ppath, i)); err != nil {
					return err
				}
			}
		}
	}

	seen := map[*binding.Binding]struct{}{}

	for _, role := range f.ownerOrder() {
		b := f.bindings[role]
		if _, done := seen[b]; done {
			continue
		}

		seen[b] = struct{}{}

		if err := b.Persist(); err != nil {
			return &PersistError{Path: path, Role: role, Err: err}
		}
	}

	return nil
}

// ownerOrder returns the node's owner roles: first those referenced by
// properties in declaration order, then any unreferenced roles sorted by
// name.
func (f *Form) ownerOrder() []string {
	var order []string

	seen := map[string]struct{}{}

	for _, p := range f.def.Properties() {
		if _, ok := seen[p.Owner]; ok {
			continue
		}

		if _, bound := f.bindings[p.Owner]; !bound {
			continue
		}

		seen[p.Owner] = struct{}{}
		order = append(order, p.Owner)
	}

	for _, role := range common.SortedKeys(f.bindings) {
		if _, ok := seen[role]; !ok {
			order = append(order, role)
		}
	}

	return order
}

// Snapshot returns the current values as a plain nested mapping: nested
// forms become mappings and collections become sequences of mappings. No
// binding is touched, which makes the snapshot the manual-save variant:
// callers can persist the validated data entirely outside the form layer.
// Virtual and write-only properties appear like any other value.
func (f *Form) Snapshot() map[string]any {
	out := make(map[string]any, f.def.Len())

	for _, p := range f.def.Properties() {
		switch p.Kind {
		case schema.Scalar:
			out[p.Name] = f.values[p.Name]

		case schema.Nested:
			if child, ok := f.Child(p.Name); ok {
				out[p.Name] = child.Snapshot()
			} else {
				out[p.Name] = nil
			}

		case schema.NestedCollection:
			children, _ := f.Children(p.Name)
			arr := make([]map[string]any, len(children))

			for i, child := range children {
				arr[i] = child.Snapshot()
			}

			out[p.Name] = arr
		}
	}

	return out
}
