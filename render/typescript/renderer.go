// Package typescript renders the schema set as TypeScript source.
//
// TypeScript has native union and tuple types, so the sealed-marker
// workaround the Go target needs does not apply: anyOf renders as a union
// and tuples render as tuple types whose values are already wire-shaped,
// which lets constructors double as serializers.
package typescript

import (
	"fmt"

	"github.com/typeforge/apigen/render"
	"github.com/typeforge/apigen/schema"
)

// Renderer emits TypeScript data-model source.
type Renderer struct{}

// New returns the TypeScript renderer.
func New() *Renderer { return &Renderer{} }

// Name returns "typescript".
func (r *Renderer) Name() string { return "typescript" }

// Policy returns ConflictAppendSuffix: TypeScript can name every variant, so
// colliding lifted names are disambiguated instead of dropped.
func (r *Renderer) Policy() schema.ConflictPolicy { return schema.ConflictAppendSuffix }

// Render emits the full TypeScript source for the spec.
func (r *Renderer) Render(spec *schema.Spec, cfg render.Config) ([]byte, error) {
	buf := render.NewBuf("  ")
	buf.Writeln("// Code generated by apigen. DO NOT EDIT.")
	buf.Writeln("")

	e := &emitter{spec: spec, buf: buf}
	for _, name := range spec.Names() {
		node, _ := spec.Lookup(name)
		if err := e.emitDeclaration(name, node); err != nil {
			return nil, fmt.Errorf("render %s: %w", name, err)
		}
		buf.Writeln("")
	}
	return buf.Bytes(), nil
}

type emitter struct {
	spec *schema.Spec
	buf  *render.Buf
}

// emitDeclaration writes the top-level declaration(s) for one schema.
func (e *emitter) emitDeclaration(name string, node schema.Node) error {
	switch t := node.(type) {
	case *schema.Object:
		return e.emitObject(name, t)
	case *schema.ArrayTuple:
		return e.emitTuple(name, t)
	case *schema.Const:
		return fmt.Errorf("const in unsupported position")
	default:
		expr, err := e.typeExpr(node)
		if err != nil {
			return err
		}
		e.buf.Writelnf("export type %s = %s;", name, expr)
		return nil
	}
}

// typeExpr renders a node in type-expression position.
func (e *emitter) typeExpr(node schema.Node) (string, error) {
	switch t := node.(type) {
	case *schema.AnyOf:
		return e.unionExpr(t)
	case *schema.Object:
		return "", fmt.Errorf("object schema in unsupported position")
	case *schema.ArrayList:
		item, err := e.typeExpr(t.Items)
		if err != nil {
			return "", err
		}
		return item + "[]", nil
	case *schema.ArrayTuple:
		return e.tupleExpr(t)
	case *schema.String:
		return "string", nil
	case *schema.Number:
		switch t.Width {
		case 0, 32, 64:
			return "number", nil
		default:
			return "", fmt.Errorf("unsupported number width: %d", t.Width)
		}
	case *schema.Boolean:
		return "boolean", nil
	case *schema.Const:
		return fmt.Sprintf("%q", t.Value), nil
	case *schema.Ref:
		return t.Target, nil
	case *schema.Any:
		return "unknown", nil
	default:
		return "", fmt.Errorf("unsupported schema kind %q", node.Kind())
	}
}

// unionExpr renders an anyOf as a native union. Only the shapes the contract
// admits survive lifting: all consts or all refs. Anything mixed means the
// lifter's single-discriminant precondition was violated upstream.
func (e *emitter) unionExpr(anyOf *schema.AnyOf) (string, error) {
	switch {
	case allConst(anyOf.Members), allRef(anyOf.Members):
	default:
		return "", fmt.Errorf("unsupported anyOf")
	}
	expr := ""
	for i, member := range anyOf.Members {
		part, err := e.typeExpr(member)
		if err != nil {
			return "", err
		}
		if i > 0 {
			expr += " | "
		}
		expr += part
	}
	return expr, nil
}

// tupleExpr renders a tuple type, literals as literal types and nested
// tuples nested, matching the wire shape exactly.
func (e *emitter) tupleExpr(tuple *schema.ArrayTuple) (string, error) {
	if tuple.AdditionalItems {
		return "", fmt.Errorf("tuple-type arrays with additional items unsupported")
	}
	expr := "["
	for i, item := range tuple.PrefixItems {
		part, err := e.typeExpr(item)
		if err != nil {
			return "", err
		}
		if i > 0 {
			expr += ", "
		}
		expr += part
	}
	return expr + "]", nil
}

// emitObject renders the single-required-property wrapper: an interface with
// the wire-named field and a constructor producing the wire-shaped object.
func (e *emitter) emitObject(name string, obj *schema.Object) error {
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
	propExpr, err := e.typeExpr(obj.Properties[propName])
	if err != nil {
		return err
	}
	paramName := render.DecapitalizeLeadingRun(render.ToUpperCamel(propName))

	err = e.buf.Block(fmt.Sprintf("export interface %s", name), func() error {
		e.buf.Writelnf("%q: %s;", propName, propExpr)
		return nil
	})
	if err != nil {
		return err
	}
	e.buf.Writeln("")
	e.buf.Writelnf("export function new%s(", name)
	e.buf.Indent()
	e.buf.Writelnf("%s: %s,", paramName, propExpr)
	e.buf.Unindent()
	return e.buf.Block(fmt.Sprintf("): %s", name), func() error {
		e.buf.Writelnf("return { %q: %s };", propName, paramName)
		return nil
	})
}

// emitTuple renders a tuple type alias plus a constructor taking the value
// slots in order and returning the wire-shaped array.
func (e *emitter) emitTuple(name string, tuple *schema.ArrayTuple) error {
	expr, err := e.tupleExpr(tuple)
	if err != nil {
		return err
	}
	e.buf.Writelnf("export type %s = %s;", name, expr)
	e.buf.Writeln("")

	fields := render.TupleFields(tuple.PrefixItems)

	e.buf.Writelnf("export function new%s(", name)
	e.buf.Indent()
	for _, f := range fields {
		if f.Kind != render.FieldNormal {
			continue
		}
		fieldExpr, err := e.typeExpr(f.Node)
		if err != nil {
			return err
		}
		e.buf.Writelnf("%s: %s,", render.DecapitalizeLeadingRun(f.Name), fieldExpr)
	}
	e.buf.Unindent()
	return e.buf.Block(fmt.Sprintf("): %s", name), func() error {
		e.buf.Writeln("return [")
		e.buf.Indent()
		for _, f := range fields {
			switch f.Kind {
			case render.FieldLiteral:
				e.buf.Writelnf("%q,", f.Literal)
			case render.FieldFlattenStart:
				e.buf.Writeln("[")
				e.buf.Indent()
			case render.FieldFlattenEnd:
				e.buf.Unindent()
				e.buf.Writeln("],")
			case render.FieldNormal:
				e.buf.Writelnf("%s,", render.DecapitalizeLeadingRun(f.Name))
			}
		}
		e.buf.Unindent()
		e.buf.Writeln("];")
		return nil
	})
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
