package binding

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// reflectAccessor adapts a plain struct model. Accessor names resolve in
// order: exact exported field, case-insensitive exported field, then a
// getter/setter method pair on the original receiver.
type reflectAccessor struct {
	recv reflect.Value // original value; methods resolve against this
	elem reflect.Value // dereferenced struct value; fields resolve against this
}

func newReflectAccessor(model any) (Accessor, error) {
	recv := reflect.ValueOf(model)

	elem := recv
	for elem.Kind() == reflect.Pointer {
		if elem.IsNil() {
			return nil, ErrNilModel
		}

		elem = elem.Elem()
	}

	if elem.Kind() != reflect.Struct {
		return nil, fmt.Errorf("binding: unsupported model type %T", model)
	}

	return reflectAccessor{recv: recv, elem: elem}, nil
}

// Get resolves a reader: field first, then a Name() or GetName() method
// with no arguments and a single result.
func (r reflectAccessor) Get(name string) (any, error) {
	if f, ok := r.field(name); ok {
		return f.Interface(), nil
	}

	for _, mname := range []string{capitalize(name), "Get" + capitalize(name)} {
		m := r.recv.MethodByName(mname)
		if m.IsValid() && m.Type().NumIn() == 0 && m.Type().NumOut() == 1 {
			return m.Call(nil)[0].Interface(), nil
		}
	}

	return nil, &MissingAccessorError{Model: r.typeName(), Accessor: name}
}

// Set resolves a writer: a SetName(v) method first, then a settable field.
// Setter methods take one argument and return nothing or an error.
func (r reflectAccessor) Set(name string, value any) error {
	if m := r.recv.MethodByName("Set" + capitalize(name)); m.IsValid() {
		mt := m.Type()
		if mt.NumIn() == 1 && (mt.NumOut() == 0 || mt.NumOut() == 1 && isErrorType(mt.Out(0))) {
			arg, err := conform(value, mt.In(0))
			if err != nil {
				return fmt.Errorf("binding: set %s.%s: %w", r.typeName(), name, err)
			}

			out := m.Call([]reflect.Value{arg})
			if len(out) == 1 {
				if e, _ := out[0].Interface().(error); e != nil {
					return e
				}
			}

			return nil
		}
	}

	f, ok := r.field(name)
	if !ok || !f.CanSet() {
		return &MissingAccessorError{Model: r.typeName(), Accessor: name, Write: true}
	}

	v, err := conform(value, f.Type())
	if err != nil {
		return fmt.Errorf("binding: set %s.%s: %w", r.typeName(), name, err)
	}

	f.Set(v)

	return nil
}

// field tries the exact exported field name, then a case-insensitive scan.
func (r reflectAccessor) field(name string) (reflect.Value, bool) {
	t := r.elem.Type()

	if sf, ok := t.FieldByName(name); ok && sf.PkgPath == "" {
		return r.elem.FieldByIndex(sf.Index), true
	}

	lw := strings.ToLower(name)
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath == "" && strings.ToLower(sf.Name) == lw {
			return r.elem.Field(i), true
		}
	}

	return reflect.Value{}, false
}

func (r reflectAccessor) typeName() string {
	return r.recv.Type().String()
}

// conform shapes a value for assignment to the target type. A []any value
// against a slice target is rebuilt element by element, which is how
// collection membership written by the form layer lands in typed model
// slices.
func conform(value any, target reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(target), nil
	}

	v := reflect.ValueOf(value)

	if v.Type().AssignableTo(target) {
		return v, nil
	}

	if v.Kind() == reflect.Slice && target.Kind() == reflect.Slice {
		out := reflect.MakeSlice(target, v.Len(), v.Len())

		for i := 0; i < v.Len(); i++ {
			ev, err := conform(v.Index(i).Interface(), target.Elem())
			if err != nil {
				return reflect.Value{}, err
			}

			out.Index(i).Set(ev)
		}

		return out, nil
	}

	if v.Type().ConvertibleTo(target) && !runeConversion(v.Type(), target) {
		return v.Convert(target), nil
	}

	return reflect.Value{}, fmt.Errorf("cannot assign %T to %s", value, target)
}

// runeConversion guards reflect's permissive integer-to-string conversion,
// which would turn 65 into "A" instead of failing. Byte-slice conversions
// stay allowed.
func runeConversion(src, dst reflect.Type) bool {
	if src.Kind() == reflect.Slice && src.Elem().Kind() == reflect.Uint8 {
		return false
	}

	if dst.Kind() == reflect.Slice && dst.Elem().Kind() == reflect.Uint8 {
		return false
	}

	return (src.Kind() == reflect.String) != (dst.Kind() == reflect.String)
}

func isErrorType(t reflect.Type) bool {
	if t == nil {
		return false
	}

	terr := reflect.TypeOf((*error)(nil)).Elem()

	return t.Implements(terr)
}

func capitalize(name string) string {
	if name == "" {
		return name
	}

	r, size := utf8.DecodeRuneInString(name)

	return string(unicode.ToUpper(r)) + name[size:]
}
