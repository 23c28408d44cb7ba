package schema

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind describes the shape of a declared property.
type Kind int

const (
	// Scalar is a plain value read from and written to one accessor.
	Scalar Kind = iota

	// Nested is a singular child schema bound to one nested model.
	Nested

	// NestedCollection is an ordered sequence of child schemas bound to a
	// slice of nested models.
	NestedCollection

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

//go:generate go tool stringer -type=Visibility -output=visibility_string.go

// Visibility controls which sides of the model boundary a property crosses.
type Visibility int

const (
	// Normal properties are read at construction and written at sync.
	Normal Visibility = iota

	// VirtualReadOnly properties are read from the model at construction
	// but never written back and never overwritten by input.
	VirtualReadOnly

	// EmptyWriteOnly properties are never read from the model and never
	// written back; they exist only for input and validation.
	EmptyWriteOnly
)
