// Package render defines the target-agnostic rendering contract and the
// helpers every target renderer shares: the tuple field linearizer, name
// mangling, and the indentation-aware code buffer.
package render

import "github.com/typeforge/apigen/schema"

// Renderer produces data-model source text for one target language.
//
// Render receives the fully lifted schema set and must emit, for every schema
// in lexicographic name order: a type declaration, a constructor over the
// semantically significant fields, and a serializer that reproduces the
// original JSON shape byte-for-byte in field order. Shapes a target cannot
// express are fatal errors, never silent degradations.
type Renderer interface {
	// Name returns the target identifier (e.g. "go", "typescript").
	Name() string

	// Policy returns the conflict policy the lifter must use ahead of this
	// renderer. Targets that cannot name every variant drop the flagged
	// ones; targets that keep all variants append suffixes.
	Policy() schema.ConflictPolicy

	// Render emits the full output for the spec.
	Render(spec *schema.Spec, cfg Config) ([]byte, error)
}

// Config provides common renderer configuration.
type Config struct {
	// PackageName is the package/module clause for targets that require
	// one. Default: "models".
	PackageName string

	// JSONPackage is the import path of the JSON marshal helper used by
	// generated serializers in the Go target. Default: "encoding/json".
	// SDKs that ship a marshalling shim point this at it.
	JSONPackage string

	// Format runs the target's source formatter over the output when the
	// target has one.
	Format bool
}
