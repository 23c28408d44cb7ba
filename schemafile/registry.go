package schemafile

import (
	"fmt"

	"formbind/schema"
)

// Registry resolves the checker and populator names referenced by schema
// files. Rule checkers and creation policies are code; the file only
// carries their names.
type Registry struct {
	checkers   map[string]schema.Checker
	populators map[string]schema.Populator
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		checkers:   map[string]schema.Checker{},
		populators: map[string]schema.Populator{},
	}
}

// RegisterChecker registers a rule checker under a name. Re-registering a
// name is an error.
func (r *Registry) RegisterChecker(name string, c schema.Checker) error {
	if _, ok := r.checkers[name]; ok {
		return fmt.Errorf("schemafile: checker %q already registered", name)
	}

	r.checkers[name] = c

	return nil
}

// RegisterPopulator registers a creation policy under a name.
// Re-registering a name is an error.
func (r *Registry) RegisterPopulator(name string, p schema.Populator) error {
	if _, ok := r.populators[name]; ok {
		return fmt.Errorf("schemafile: populator %q already registered", name)
	}

	r.populators[name] = p

	return nil
}

// Checker returns the named checker.
func (r *Registry) Checker(name string) (schema.Checker, bool) {
	c, ok := r.checkers[name]
	return c, ok
}

// Populator returns the named populator.
func (r *Registry) Populator(name string) (schema.Populator, bool) {
	p, ok := r.populators[name]
	return p, ok
}
