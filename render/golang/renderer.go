// Package golang renders the schema set as Go source: one type declaration
// per schema, constructor functions, and MarshalJSON methods that reproduce
// the original wire shapes. It is the reference implementation of the
// rendering contract.
package golang

import (
	"fmt"

	"golang.org/x/tools/imports"

	"github.com/typeforge/apigen/render"
	"github.com/typeforge/apigen/schema"
)

// Renderer emits Go data-model source.
type Renderer struct{}

// New returns the Go renderer.
func New() *Renderer { return &Renderer{} }

// Name returns "go".
func (r *Renderer) Name() string { return "go" }

// Policy returns ConflictDrop: Go cannot distinguish two tuple variants that
// lift to the same name, so nonessential ones are dropped.
func (r *Renderer) Policy() schema.ConflictPolicy { return schema.ConflictDrop }

// Render emits the full Go source for the spec.
func (r *Renderer) Render(spec *schema.Spec, cfg render.Config) ([]byte, error) {
	pkg := cfg.PackageName
	if pkg == "" {
		pkg = "models"
	}
	jsonPath := cfg.JSONPackage
	if jsonPath == "" {
		jsonPath = "encoding/json"
	}
	jsonIdent := "json"
	if jsonPath != "encoding/json" {
		jsonIdent = "shimjson"
	}

	buf := render.NewBuf("\t")
	buf.Writeln("// Code generated by apigen. DO NOT EDIT.")
	buf.Writeln("")
	buf.Writelnf("package %s", pkg)
	buf.Writeln("")
	if needsJSONHelper(spec) {
		if jsonIdent == "json" {
			buf.Writelnf("import %q", jsonPath)
		} else {
			buf.Writelnf("import %s %q", jsonIdent, jsonPath)
		}
		buf.Writeln("")
	}

	e := &emitter{spec: spec, buf: buf, jsonIdent: jsonIdent}
	for _, name := range spec.Names() {
		node, _ := spec.Lookup(name)
		buf.StartLine()
		buf.Writef("type %s ", name)
		if err := e.emitSchema(name, node); err != nil {
			return nil, fmt.Errorf("render %s: %w", name, err)
		}
		buf.EndLine()
	}

	src := buf.Bytes()
	if cfg.Format {
		formatted, err := imports.Process("types.gen.go", src, nil)
		if err != nil {
			return nil, fmt.Errorf("format generated source: %w", err)
		}
		src = formatted
	}
	return src, nil
}

// emitter tracks the state shared by one Render call.
type emitter struct {
	spec      *schema.Spec
	buf       *render.Buf
	jsonIdent string
}

// emitSchema writes the Go rendering of a node. name is the top-level schema
// name, or "" when the node appears in expression position; shapes that need
// a name fail outside the top level.
func (e *emitter) emitSchema(name string, node schema.Node) error {
	switch t := node.(type) {
	case *schema.AnyOf:
		switch {
		case allConst(t.Members):
			return e.emitConstEnum(name, t.Members)
		case allRef(t.Members):
			return e.emitSealedRefs(name, t.Members)
		default:
			return fmt.Errorf("unsupported anyOf")
		}
	case *schema.Object:
		return e.emitObject(name, t)
	case *schema.ArrayList:
		e.buf.Write("[]")
		return e.emitSchema("", t.Items)
	case *schema.ArrayTuple:
		return e.emitTuple(name, t)
	case *schema.String:
		e.buf.Write("string")
	case *schema.Number:
		switch t.Width {
		case 0, 64:
			e.buf.Write("float64")
		case 32:
			e.buf.Write("float32")
		default:
			return fmt.Errorf("unsupported number width: %d", t.Width)
		}
	case *schema.Boolean:
		e.buf.Write("bool")
	case *schema.Const:
		return fmt.Errorf("const in unsupported position")
	case *schema.Ref:
		e.buf.Write(t.Target)
	case *schema.Any:
		e.buf.Write("any")
	default:
		return fmt.Errorf("unsupported schema kind %q", node.Kind())
	}
	return nil
}

// emitConstEnum renders an anyOf of consts as a string enumeration. This is
// a workaround for Go's lack of sum types.
func (e *emitter) emitConstEnum(name string, members []schema.Node) error {
	if name == "" {
		return fmt.Errorf("const enum in unsupported position")
	}

	e.buf.Write("string")
	e.buf.EndLine()

	e.buf.Writeln("const (")
	e.buf.Indent()
	for _, member := range members {
		c := member.(*schema.Const)
		constName := c.Title
		if constName == "" {
			constName = name + render.Capitalize(c.Value)
		}
		e.buf.Writelnf("%s %s = %q", constName, name, c.Value)
	}
	e.buf.Unindent()
	e.buf.Writeln(")")
	return nil
}

// emitSealedRefs renders an anyOf of refs as a sealed interface implemented
// by every referenced type, recursing through referenced anyOfs so
// transitively-unioned alternatives join the same closed set. This is a
// workaround for Go's lack of sum types.
func (e *emitter) emitSealedRefs(name string, members []schema.Node) error {
	if name == "" {
		return fmt.Errorf("anyOf with refs in unsupported position")
	}

	marker := "sealed" + name

	err := e.buf.Block("interface", func() error {
		e.buf.Writelnf("%s()", marker)
		return nil
	})
	if err != nil {
		return err
	}

	var impls func(members []schema.Node) error
	impls = func(members []schema.Node) error {
		for _, member := range members {
			ref := member.(*schema.Ref)
			target, ok := e.spec.Lookup(ref.Target)
			if !ok {
				return fmt.Errorf("unresolved schema reference %q", ref.Target)
			}
			if anyOf, isAnyOf := target.(*schema.AnyOf); isAnyOf && allRef(anyOf.Members) {
				if err := impls(anyOf.Members); err != nil {
					return err
				}
				continue
			}
			e.buf.Writelnf("func (v %s) %s() {}", ref.Target, marker)
		}
		return nil
	}
	return impls(members)
}

// emitObject renders the single-required-property wrapper form.
func (e *emitter) emitObject(name string, obj *schema.Object) error {
	if name == "" {
		return fmt.Errorf("object schema in unsupported position")
	}
	if len(obj.Properties) != 1 || len(obj.Required) != 1 {
		return fmt.Errorf("object schemas only supported with a single required property")
	}
	var propName string
	for n := range obj.Properties {
		propName = n
	}
	if obj.Required[0] != propName {
		return fmt.Errorf("object schemas only supported with a single required property")
	}
	propSchema := obj.Properties[propName]

	fieldName := render.ToUpperCamel(propName)
	paramName := render.DecapitalizeLeadingRun(fieldName)

	// Struct definition.
	err := e.buf.Block("struct", func() error {
		e.buf.StartLine()
		e.buf.Writef("%s ", fieldName)
		if err := e.emitSchema("", propSchema); err != nil {
			return err
		}
		e.buf.EndLine()
		return nil
	})
	if err != nil {
		return err
	}

	// Constructor.
	e.buf.Writelnf("func New%s(", name)
	e.buf.Indent()
	e.buf.StartLine()
	e.buf.Writef("%s ", paramName)
	if err := e.emitSchema("", propSchema); err != nil {
		return err
	}
	e.buf.Write(",")
	e.buf.EndLine()
	e.buf.Unindent()
	err = e.buf.Block(fmt.Sprintf(") %s", name), func() error {
		return e.buf.Block(fmt.Sprintf("return %s", name), func() error {
			e.buf.Writelnf("%s: %s,", fieldName, paramName)
			return nil
		})
	})
	if err != nil {
		return err
	}

	// Serializer: a single-key object, key spelled exactly as on the wire.
	return e.buf.Block(fmt.Sprintf("func (v %s) MarshalJSON() ([]byte, error)", name), func() error {
		e.buf.Writelnf("return %s.Marshal(map[string]any{", e.jsonIdent)
		e.buf.Indent()
		e.buf.Writelnf("%q: v.%s,", propName, fieldName)
		e.buf.Unindent()
		e.buf.Writeln("})")
		return nil
	})
}

// emitTuple renders a tuple as a struct with a constructor taking the value
// slots in order, since Go has no native tuples. The serializer reproduces
// the array, literals and nesting included.
func (e *emitter) emitTuple(name string, tuple *schema.ArrayTuple) error {
	if tuple.AdditionalItems {
		return fmt.Errorf("tuple-type arrays with additional items unsupported")
	}
	if name == "" {
		return fmt.Errorf("tuple-type array in unsupported position")
	}

	fields := render.TupleFields(tuple.PrefixItems)
	var normals []render.TupleField
	for _, f := range fields {
		if f.Kind == render.FieldNormal {
			normals = append(normals, f)
		}
	}

	// Struct definition.
	err := e.buf.Block("struct", func() error {
		for _, f := range normals {
			e.buf.StartLine()
			e.buf.Writef("%s ", f.Name)
			if err := e.emitSchema("", f.Node); err != nil {
				return err
			}
			e.buf.EndLine()
		}
		return nil
	})
	if err != nil {
		return err
	}

	// Constructor.
	e.buf.Writelnf("func New%s(", name)
	e.buf.Indent()
	for _, f := range normals {
		e.buf.StartLine()
		e.buf.Writef("%s ", render.DecapitalizeLeadingRun(f.Name))
		if err := e.emitSchema("", f.Node); err != nil {
			return err
		}
		e.buf.Write(",")
		e.buf.EndLine()
	}
	e.buf.Unindent()
	err = e.buf.Block(fmt.Sprintf(") %s", name), func() error {
		return e.buf.Block(fmt.Sprintf("return %s", name), func() error {
			for _, f := range normals {
				e.buf.Writelnf("%s: %s,", f.Name, render.DecapitalizeLeadingRun(f.Name))
			}
			return nil
		})
	})
	if err != nil {
		return err
	}

	// Serializer: every position in original order, literals as their fixed
	// values, flatten ranges re-wrapped in a nested array.
	return e.buf.Block(fmt.Sprintf("func (v %s) MarshalJSON() ([]byte, error)", name), func() error {
		e.buf.Writelnf("return %s.Marshal([]any{", e.jsonIdent)
		e.buf.Indent()
		for _, f := range fields {
			switch f.Kind {
			case render.FieldLiteral:
				e.buf.Writelnf("%q,", f.Literal)
			case render.FieldFlattenStart:
				e.buf.Writeln("[]any{")
				e.buf.Indent()
			case render.FieldFlattenEnd:
				e.buf.Unindent()
				e.buf.Writeln("},")
			case render.FieldNormal:
				e.buf.Writelnf("v.%s,", f.Name)
			}
		}
		e.buf.Unindent()
		e.buf.Writeln("})")
		return nil
	})
}

// needsJSONHelper reports whether any top-level schema emits a MarshalJSON
// method, which decides whether the helper import is written.
func needsJSONHelper(spec *schema.Spec) bool {
	for _, name := range spec.Names() {
		node, _ := spec.Lookup(name)
		switch node.Kind() {
		case schema.KindObject, schema.KindArrayTuple:
			return true
		}
	}
	return false
}

func allConst(members []schema.Node) bool {
	for _, m := range members {
		if m.Kind() != schema.KindConst {
			return false
		}
	}
	return true
}

func allRef(members []schema.Node) bool {
	for _, m := range members {
		if m.Kind() != schema.KindRef {
			return false
		}
	}
	return true
}
