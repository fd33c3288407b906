package render

import (
	"fmt"

	"github.com/typeforge/apigen/schema"
)

// TupleFieldKind discriminates the entries of a linearized tuple.
type TupleFieldKind int

const (
	// FieldNormal is a real value slot backed by a member of the
	// constructed type.
	FieldNormal TupleFieldKind = iota

	// FieldLiteral is a const element. It contributes no member; the
	// serializer re-emits the literal verbatim at this position.
	FieldLiteral

	// FieldFlattenStart opens the spliced range of a nested tuple flagged
	// for flattening. The serializer re-wraps the range in a nested array.
	FieldFlattenStart

	// FieldFlattenEnd closes a spliced range.
	FieldFlattenEnd
)

// TupleField is one entry of a linearized tuple.
type TupleField struct {
	Kind TupleFieldKind

	// Name is the member name for FieldNormal entries: the item's own
	// title when present, else a positional placeholder.
	Name string

	// Node is the item schema for FieldNormal entries.
	Node schema.Node

	// Literal is the const value for FieldLiteral entries.
	Literal string
}

// TupleFields linearizes a tuple's prefix items into an ordered field list.
//
// Positional placeholders count every item — consts and the expanded items of
// flattened nested tuples included — so positions stay stable whether or not
// a nested tuple is flattened. A nested tuple flagged for flattening is
// spliced in as sibling fields bracketed by FlattenStart/FlattenEnd markers.
func TupleFields(prefixItems []schema.Node) []TupleField {
	var fields []TupleField
	pos := 0
	appendTupleFields(&fields, &pos, prefixItems)
	return fields
}

func appendTupleFields(out *[]TupleField, pos *int, items []schema.Node) {
	for _, item := range items {
		switch t := item.(type) {
		case *schema.Const:
			*out = append(*out, TupleField{Kind: FieldLiteral, Literal: t.Value})
		case *schema.ArrayTuple:
			if t.Flatten {
				*out = append(*out, TupleField{Kind: FieldFlattenStart})
				appendTupleFields(out, pos, t.PrefixItems)
				*out = append(*out, TupleField{Kind: FieldFlattenEnd})
				break
			}
			*out = append(*out, normalField(item, *pos))
		default:
			*out = append(*out, normalField(item, *pos))
		}
		*pos++
	}
}

func normalField(item schema.Node, pos int) TupleField {
	name := item.NodeTitle()
	if name == "" {
		name = fmt.Sprintf("f%d", pos)
	}
	return TupleField{Kind: FieldNormal, Name: name, Node: item}
}
