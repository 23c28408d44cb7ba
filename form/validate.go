package form

import (
	"formbind/report"
	"formbind/schema"
)

// Validate runs the rule checker bound to every node of the tree,
// depth-first, against that node's own values; the models are never
// consulted and never mutated. It returns true iff the aggregated report
// and every nested report are empty.
//
// Validate belongs between Populate and Sync: it reads whatever the last
// Populate left in the tree.
func (f *Form) Validate() (bool, *report.Report) {
	rep := f.validate()
	return rep.Empty(), rep
}

func (f *Form) validate() *report.Report {
	rep := report.New()

	if c := f.def.Checker(); c != nil {
		rep.Merge(c.Check(f.values))
	}

	for _, p := range f.def.Properties() {
		switch p.Kind {
		case schema.Nested:
			if child, ok := f.Child(p.Name); ok {
				rep.AttachNested(p.Name, child.validate())
			}

		case schema.NestedCollection:
			children, _ := f.Children(p.Name)
			for i, child := range children {
				rep.AttachIndexed(p.Name, i, child.validate())
			}
		}
	}

	return rep
}
