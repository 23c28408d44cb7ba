package schemafile

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// File represents the root of a YAML schema definition file.
type File struct {
	// Version of the file format (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Schemas is the ordered list of schema declarations.
	Schemas []SchemaDef `yaml:"schemas"`
}

// SchemaDef declares one named schema.
type SchemaDef struct {
	// Name is the schema's unique name within the file.
	Name string `yaml:"name"`

	// Extends derives this schema from a base schema declared in the same
	// file: the base's properties are copied, then own declarations apply.
	Extends string `yaml:"extends,omitempty"`

	// Include merges the named schemas' property lists, in order, before
	// own declarations (fragment-style composition).
	Include StringArray `yaml:"include,omitempty"`

	// Checker names a validation rule checker in the registry.
	Checker string `yaml:"checker,omitempty"`

	// Properties is the ordered property list.
	Properties []PropertyDef `yaml:"properties"`
}

// PropertyDef declares one property. In YAML it is either a mapping with
// the fields below or a bare string, which is shorthand for a scalar of
// that name.
type PropertyDef struct {
	// Name is the public property name.
	Name string `yaml:"name"`

	// As overrides the accessor name resolved against the owning model.
	As string `yaml:"as,omitempty"`

	// Owner selects the owner role in a multi-model composition.
	Owner string `yaml:"owner,omitempty"`

	// Kind is scalar, nested, or collection. Defaults to scalar.
	Kind string `yaml:"kind,omitempty"`

	// Schema names the child schema for nested and collection properties.
	Schema string `yaml:"schema,omitempty"`

	// Visibility is normal, virtual, or write_only. Defaults to normal.
	Visibility string `yaml:"visibility,omitempty"`

	// Populator names a creation policy in the registry.
	Populator string `yaml:"populator,omitempty"`

	// Persist controls save-time persistence of the child models.
	// Defaults to true.
	Persist *bool `yaml:"persist,omitempty"`

	// Override declares the intent to replace a same-named property from
	// a base or included schema.
	Override bool `yaml:"override,omitempty"`
}

// Property kind names accepted in schema files.
const (
	KindScalar     = "scalar"
	KindNested     = "nested"
	KindCollection = "collection"
)

// Visibility names accepted in schema files.
const (
	VisibilityNormal    = "normal"
	VisibilityVirtual   = "virtual"
	VisibilityWriteOnly = "write_only"
)

// UnmarshalYAML implements custom YAML unmarshaling for PropertyDef.
// Accepts:
//   - Bare string: "title" (scalar shorthand)
//   - Mapping: {name: songs, kind: collection, schema: song}
func (p *PropertyDef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string

		err := node.Decode(&name)
		if err != nil {
			return err
		}

		*p = PropertyDef{Name: name}

		return nil

	case yaml.MappingNode:
		// Alias sidesteps the custom unmarshaler recursion.
		type plain PropertyDef

		var decoded plain

		err := node.Decode(&decoded)
		if err != nil {
			return err
		}

		*p = PropertyDef(decoded)

		return nil

	default:
		return fmt.Errorf("expected string or mapping for property, got %v", node.Kind)
	}
}

// StringArray is a string slice that can be unmarshaled from a single
// string or a list.
type StringArray []string

// UnmarshalYAML implements yaml.Unmarshaler for StringArray.
func (s *StringArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var single string

		err := node.Decode(&single)
		if err != nil {
			return err
		}

		if single != "" {
			*s = StringArray{single}
		} else {
			*s = StringArray{}
		}

		return nil

	case yaml.SequenceNode:
		var multi []string

		err := node.Decode(&multi)
		if err != nil {
			return err
		}

		*s = multi

		return nil

	default:
		return errors.New("expected string or list of strings")
	}
}
