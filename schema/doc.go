// Package schema provides declarative form schema definitions.
//
// A Definition is an ordered, name-unique list of property descriptors,
// each binding a public name to an accessor on some owning model, with a
// nesting kind (scalar, nested, collection), a visibility, and optional
// creation and persistence policies.
//
// Definitions are produced exclusively through an explicit Builder and
// finalized into immutable values; there is no process-wide registry.
//
// # Key capabilities
//
//   - Scalar, nested, and nested-collection property declarations
//   - Per-property options: accessor rename, owner role, visibility,
//     creation policy, persistence policy, setter transform
//   - Structural inheritance via Derive (copy base, then append/override)
//   - Mixin composition via Fragment inclusion
//   - Deterministic merge rule: append new names, replace same-named
//     entries only under an explicit Override option
//
// # Declaration example
//
//	song, _ := schema.New("song").
//		Scalar("title").
//		Check(requireTitle).
//		Build()
//
//	album, _ := schema.New("album").
//		Scalar("title").
//		Scalar("label", schema.As("recordLabel")).
//		Collection("songs", song, schema.WithPopulator(schema.Factory(newSong))).
//		Build()
package schema
