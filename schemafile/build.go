package schemafile

import (
	"fmt"

	"formbind/schema"
)

// Build validates the file and turns every schema declaration into an
// immutable schema.Definition, resolving checker and populator names
// against the registry. A nil registry is treated as empty, so files that
// reference no names build without one.
func Build(f *File, reg *Registry) (map[string]*schema.Definition, error) {
	if d := Validate(f); d.HasErrors() {
		return nil, d.Error()
	}

	if reg == nil {
		reg = NewRegistry()
	}

	b := &fileBuilder{
		reg:    reg,
		byName: map[string]*SchemaDef{},
		built:  map[string]*schema.Definition{},
	}

	for i := range f.Schemas {
		sd := &f.Schemas[i]
		b.byName[sd.Name] = sd
	}

	for i := range f.Schemas {
		if _, err := b.build(f.Schemas[i].Name); err != nil {
			return nil, err
		}
	}

	return b.built, nil
}

type fileBuilder struct {
	reg    *Registry
	byName map[string]*SchemaDef
	built  map[string]*schema.Definition
}

func (b *fileBuilder) build(name string) (*schema.Definition, error) {
	if def, ok := b.built[name]; ok {
		return def, nil
	}

	sd := b.byName[name]

	var builder *schema.Builder

	if sd.Extends != "" {
		base, err := b.build(sd.Extends)
		if err != nil {
			return nil, err
		}

		builder = schema.Derive(name, base)
	} else {
		builder = schema.New(name)
	}

	// Included property lists merge before own declarations, in order.
	for _, inc := range sd.Include {
		for i := range b.byName[inc].Properties {
			if err := b.declare(builder, sd, &b.byName[inc].Properties[i]); err != nil {
				return nil, err
			}
		}
	}

	for i := range sd.Properties {
		if err := b.declare(builder, sd, &sd.Properties[i]); err != nil {
			return nil, err
		}
	}

	if sd.Checker != "" {
		c, ok := b.reg.Checker(sd.Checker)
		if !ok {
			return nil, fmt.Errorf("schemafile: schema %q: checker %q not registered", sd.Name, sd.Checker)
		}

		builder.Check(c)
	}

	def, err := builder.Build()
	if err != nil {
		return nil, err
	}

	b.built[name] = def

	return def, nil
}

func (b *fileBuilder) declare(builder *schema.Builder, sd *SchemaDef, pd *PropertyDef) error {
	opts, err := b.options(sd, pd)
	if err != nil {
		return err
	}

	switch pd.Kind {
	case KindScalar:
		builder.Scalar(pd.Name, opts...)
		return nil

	case KindNested, KindCollection:
		child, err := b.build(pd.Schema)
		if err != nil {
			return err
		}

		if pd.Kind == KindNested {
			builder.Nested(pd.Name, child, opts...)
		} else {
			builder.Collection(pd.Name, child, opts...)
		}

		return nil

	default:
		// Unreachable after Validate; kept as a guard.
		return fmt.Errorf("schemafile: schema %q: property %q: unknown kind %q", sd.Name, pd.Name, pd.Kind)
	}
}

func (b *fileBuilder) options(sd *SchemaDef, pd *PropertyDef) ([]schema.Option, error) {
	var opts []schema.Option

	if pd.As != "" {
		opts = append(opts, schema.As(pd.As))
	}

	if pd.Owner != "" {
		opts = append(opts, schema.Owner(pd.Owner))
	}

	switch pd.Visibility {
	case VisibilityVirtual:
		opts = append(opts, schema.Virtual())
	case VisibilityWriteOnly:
		opts = append(opts, schema.WriteOnly())
	}

	if pd.Populator != "" {
		pop, ok := b.reg.Populator(pd.Populator)
		if !ok {
			return nil, fmt.Errorf("schemafile: schema %q: property %q: populator %q not registered",
				sd.Name, pd.Name, pd.Populator)
		}

		opts = append(opts, schema.WithPopulator(pop))
	}

	if pd.Persist != nil && !*pd.Persist {
		opts = append(opts, schema.SkipPersist())
	}

	if pd.Override {
		opts = append(opts, schema.Override())
	}

	return opts, nil
}
