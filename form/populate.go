package form

import (
	"fmt"

	"formbind/schema"
)

// PopulateOption configures one Populate call.
type PopulateOption func(*populateConfig)

type populateConfig struct {
	prune bool
}

// Prune drops surplus existing collection children when the input sequence
// is shorter than the current one. The default leaves surplus children
// untouched; with Prune, the pruned models leave the parent's collection
// at the next sync.
func Prune() PopulateOption {
	return func(c *populateConfig) {
		c.prune = true
	}
}

// Populate reconciles the form tree against hierarchical input: scalars
// are overwritten, existing children are recursed into, and missing
// children are materialized through the property's creation policy.
// Omitted keys keep their prior value; VirtualReadOnly properties are
// never overwritten by input.
//
// Populate mutates only the form tree. No model is touched until Sync or
// Save. Input shapes are checked up front, so a *PopulateError means
// nothing was applied.
func (f *Form) Populate(input map[string]any, opts ...PopulateOption) error {
	var cfg populateConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := checkShape(f.def, input, ""); err != nil {
		return err
	}

	return f.populate(input, cfg, "")
}

// checkShape walks the input against the definition tree and rejects any
// value whose shape contradicts the declared nesting kind.
func checkShape(def *schema.Definition, input map[string]any, path string) error {
	for _, p := range def.Properties() {
		raw, ok := input[p.Name]
		if !ok || p.Visibility == schema.VirtualReadOnly {
			continue
		}

		switch p.Kind {
		case schema.Nested:
			frag, err := fragment(raw, joinPath(path, p.Name))
			if err != nil {
				return err
			}

			if err := checkShape(p.Child, frag, joinPath(path, p.Name)); err != nil {
				return err
			}

		case schema.NestedCollection:
			frags, err := fragments(raw, joinPath(path, p.Name))
			if err != nil {
				return err
			}

			for i, frag := range frags {
				epath := fmt.Sprintf("%s[%d]", joinPath(path, p.Name), i)
				if err := checkShape(p.Child, frag, epath); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (f *Form) populate(input map[string]any, cfg populateConfig, path string) error {
	for _, p := range f.def.Properties() {
		raw, ok := input[p.Name]
		if !ok || p.Visibility == schema.VirtualReadOnly {
			continue
		}

		ppath := joinPath(path, p.Name)

		switch p.Kind {
		case schema.Scalar:
			f.values[p.Name] = raw

		case schema.Nested:
			frag, err := fragment(raw, ppath)
			if err != nil {
				return err
			}

			child, _ := f.values[p.Name].(*Form)
			if child == nil {
				// The creation policy is consulted strictly before
				// erroring, and only for a gap.
				if p.Populator == nil {
					return &MissingNestedModelError{Path: ppath}
				}

				child, err = f.materialize(p, frag, -1, ppath)
				if err != nil {
					return err
				}

				f.values[p.Name] = child
				f.created[p.Name] = true
			}

			if err := child.populate(frag, cfg, ppath); err != nil {
				return err
			}

		case schema.NestedCollection:
			frags, err := fragments(raw, ppath)
			if err != nil {
				return err
			}

			children, _ := f.values[p.Name].([]*Form)

			for i, frag := range frags {
				epath := fmt.Sprintf("%s[%d]", ppath, i)

				if i >= len(children) {
					if p.Populator == nil {
						return &MissingNestedModelError{Path: epath}
					}

					child, err := f.materialize(p, frag, i, epath)
					if err != nil {
						return err
					}

					children = append(children, child)
				}

				if err := children[i].populate(frag, cfg, epath); err != nil {
					return err
				}
			}

			if cfg.prune && len(frags) < len(children) {
				children = children[:len(frags):len(frags)]
			}

			f.values[p.Name] = children
		}
	}

	return nil
}

// materialize invokes the creation policy for a gap and wraps the new
// model in a fresh child form. The child reads its model first, so a
// policy that resolved an existing record by id starts from that record's
// state before the fragment overwrites it.
func (f *Form) materialize(p schema.Property, frag map[string]any, index int, path string) (*Form, error) {
	model, err := p.Populator.Materialize(frag, schema.PopulateContext{
		Parent: f,
		Child:  p.Child,
		Index:  index,
	})
	if err != nil {
		return nil, fmt.Errorf("form: populate %s: creation policy: %w", path, err)
	}

	if isNil(model) {
		return nil, fmt.Errorf("form: populate %s: creation policy returned no model", path)
	}

	return New(p.Child, model)
}

func fragment(raw any, path string) (map[string]any, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, &PopulateError{Path: path, Reason: fmt.Sprintf("expected mapping, got %T", raw)}
	}

	return m, nil
}

func fragments(raw any, path string) ([]map[string]any, error) {
	switch s := raw.(type) {
	case []map[string]any:
		return s, nil

	case []any:
		out := make([]map[string]any, len(s))

		for i, elem := range s {
			m, ok := elem.(map[string]any)
			if !ok {
				return nil, &PopulateError{
					Path:   fmt.Sprintf("%s[%d]", path, i),
					Reason: fmt.Sprintf("expected mapping, got %T", elem),
				}
			}

			out[i] = m
		}

		return out, nil

	default:
		return nil, &PopulateError{Path: path, Reason: fmt.Sprintf("expected sequence of mappings, got %T", raw)}
	}
}
