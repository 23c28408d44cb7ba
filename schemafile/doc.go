// Package schemafile provides YAML schema definition files: parsing,
// structural validation, and building into immutable schema definitions.
//
// A schema file is the reviewable, declarative counterpart of the builder
// DSL. Checkers and creation policies cannot live in YAML; the file
// references them by name and Build resolves the names against a
// caller-supplied Registry.
//
// # File overview
//
//	version: "1"
//	schemas:
//	  - name: song
//	    checker: song_rules
//	    properties:
//	      - title
//	  - name: album
//	    properties:
//	      - title
//	      - name: label
//	        as: recordLabel
//	      - name: songs
//	        kind: collection
//	        schema: song
//	        populator: new_song
//	      - name: rating
//	        visibility: virtual
//
// Property shorthand: a bare string declares a scalar under that name.
// Kinds are scalar (default), nested, collection; visibilities are normal
// (default), virtual, write_only. An "extends" reference derives from a
// base schema; "include" merges other schemas' property lists in order,
// fragment-style. Redeclaring a name requires "override: true".
package schemafile
