package schemafile

import (
	"fmt"

	"formbind/diagnostic"
	"formbind/internal/common"
	"formbind/internal/match"
)

var knownKinds = []string{KindScalar, KindNested, KindCollection}

var knownVisibilities = []string{VisibilityNormal, VisibilityVirtual, VisibilityWriteOnly}

// Validate performs structural validation of a schema file: duplicate
// names, unknown kind and visibility values, unresolved schema references,
// and reference cycles. It does not resolve registry names; that happens
// in Build, since the registry is a runtime artifact.
func Validate(f *File) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("file_is_nil", "schema file is nil", "", "")
		return res
	}

	byName := map[string]*SchemaDef{}

	for i := range f.Schemas {
		sd := &f.Schemas[i]

		if sd.Name == "" {
			res.AddError("schema_without_name", "schema declared without a name", "", "")
			continue
		}

		if _, ok := byName[sd.Name]; ok {
			res.AddError("duplicate_schema", fmt.Sprintf("duplicate schema %q", sd.Name), sd.Name, "")
			continue
		}

		byName[sd.Name] = sd
	}

	for i := range f.Schemas {
		sd := &f.Schemas[i]
		validateSchemaDef(res, byName, sd)
	}

	checkCycles(res, byName)

	return res
}

func validateSchemaDef(res *diagnostic.Diagnostics, byName map[string]*SchemaDef, sd *SchemaDef) {
	if sd.Extends != "" {
		if _, ok := byName[sd.Extends]; !ok {
			res.AddErrorWithSuggestions("unknown_base_schema",
				fmt.Sprintf("extends unknown schema %q", sd.Extends), sd.Name, "",
				match.Closest(sd.Extends, common.SortedKeys(byName)))
		}
	}

	for _, inc := range sd.Include {
		if _, ok := byName[inc]; !ok {
			res.AddErrorWithSuggestions("unknown_included_schema",
				fmt.Sprintf("includes unknown schema %q", inc), sd.Name, "",
				match.Closest(inc, common.SortedKeys(byName)))
		}
	}

	seen := map[string]struct{}{}

	for i := range sd.Properties {
		pd := &sd.Properties[i]

		if pd.Name == "" {
			res.AddError("property_without_name", "property declared without a name", sd.Name, "")
			continue
		}

		// Same-file duplicates are always an error; Override only covers
		// names coming from extends/include, which Build resolves.
		if _, dup := seen[pd.Name]; dup {
			res.AddError("duplicate_property", fmt.Sprintf("duplicate property %q", pd.Name), sd.Name, pd.Name)
		}

		seen[pd.Name] = struct{}{}

		validatePropertyDef(res, byName, sd, pd)
	}
}

func validatePropertyDef(res *diagnostic.Diagnostics, byName map[string]*SchemaDef, sd *SchemaDef, pd *PropertyDef) {
	switch pd.Kind {
	case KindScalar:
		if pd.Schema != "" {
			res.AddError("schema_on_scalar", "scalar property references a child schema", sd.Name, pd.Name)
		}

	case KindNested, KindCollection:
		if pd.Schema == "" {
			res.AddError("missing_child_schema", "nested property without a child schema", sd.Name, pd.Name)
		} else if _, ok := byName[pd.Schema]; !ok {
			res.AddErrorWithSuggestions("unknown_child_schema",
				fmt.Sprintf("references unknown schema %q", pd.Schema), sd.Name, pd.Name,
				match.Closest(pd.Schema, common.SortedKeys(byName)))
		}

	default:
		res.AddErrorWithSuggestions("unknown_kind",
			fmt.Sprintf("unknown kind %q", pd.Kind), sd.Name, pd.Name,
			suggest(pd.Kind, knownKinds))
	}

	switch pd.Visibility {
	case VisibilityNormal, VisibilityVirtual, VisibilityWriteOnly:
	default:
		res.AddErrorWithSuggestions("unknown_visibility",
			fmt.Sprintf("unknown visibility %q", pd.Visibility), sd.Name, pd.Name,
			suggest(pd.Visibility, knownVisibilities))
	}

	if pd.Visibility == VisibilityVirtual && pd.Populator != "" {
		res.AddWarning("populator_on_virtual",
			"creation policy on a read-only property is never invoked", sd.Name, pd.Name)
	}
}

// suggest prefers the candidates closest to the bad value; when nothing is
// close the full set of accepted values is still worth showing.
func suggest(input string, known []string) []string {
	if closest := match.Closest(input, known); len(closest) > 0 {
		return closest
	}

	return known
}

// checkCycles rejects reference cycles through extends, include, and child
// schemas. Definitions are immutable once built, so a cycle can never be
// constructed; reporting it here beats failing halfway through Build.
func checkCycles(res *diagnostic.Diagnostics, byName map[string]*SchemaDef) {
	const (
		unvisited = iota
		visiting
		done
	)

	state := map[string]int{}

	var visit func(name string) bool

	visit = func(name string) bool {
		sd, ok := byName[name]
		if !ok {
			return false
		}

		switch state[name] {
		case visiting:
			return true
		case done:
			return false
		}

		state[name] = visiting
		defer func() { state[name] = done }()

		if sd.Extends != "" && visit(sd.Extends) {
			return true
		}

		for _, inc := range sd.Include {
			if visit(inc) {
				return true
			}
		}

		for _, pd := range sd.Properties {
			if pd.Schema != "" && visit(pd.Schema) {
				return true
			}
		}

		return false
	}

	for name := range byName {
		if state[name] == unvisited && visit(name) {
			res.AddError("schema_cycle", fmt.Sprintf("schema %q participates in a reference cycle", name), name, "")
		}
	}
}
