// Package java registers the Java target. Rendering is not implemented yet;
// the target exists so the CLI surface is stable while the emitter is built
// out.
package java

import (
	"errors"

	"github.com/typeforge/apigen/render"
	"github.com/typeforge/apigen/schema"
)

// Renderer is the Java target placeholder.
type Renderer struct{}

// New returns the Java renderer.
func New() *Renderer { return &Renderer{} }

// Name returns "java".
func (r *Renderer) Name() string { return "java" }

// Policy returns ConflictDrop; like Go, Java cannot keep two variants that
// lift to the same name.
func (r *Renderer) Policy() schema.ConflictPolicy { return schema.ConflictDrop }

// Render reports that the Java emitter is unimplemented.
func (r *Renderer) Render(spec *schema.Spec, cfg render.Config) ([]byte, error) {
	return nil, errors.New("java target is unimplemented")
}
