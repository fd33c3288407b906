// Package schema defines the closed schema algebra that apigen accepts, the
// strict parser that produces it from an OpenAPI document, and the variant
// lifter that rewrites union members into named top-level schemas.
package schema

// Kind identifies the shape of a schema node.
type Kind string

const (
	KindAnyOf      Kind = "anyOf"
	KindObject     Kind = "object"
	KindArrayList  Kind = "arrayList"
	KindArrayTuple Kind = "arrayTuple"
	KindString     Kind = "string"
	KindNumber     Kind = "number"
	KindBoolean    Kind = "boolean"
	KindConst      Kind = "const"
	KindRef        Kind = "ref"
	KindAny        Kind = "any"
)

// String returns the kind name.
func (k Kind) String() string { return string(k) }

// Node is a schema node. The set of implementations is closed: a document
// entry that matches none of the ten shapes is a parse error, never a
// degraded node.
type Node interface {
	Kind() Kind

	// NodeTitle returns the node's explicit name hint, or "" if absent.
	// Titles are used when a name cannot be derived structurally.
	NodeTitle() string
}

// Meta carries the annotation fields every shape may declare. Annotations
// never affect wire shape; Title feeds naming and Description is retained
// for documentation output.
type Meta struct {
	Title       string
	Description string
}

// NodeTitle returns the title, or "" if absent.
func (m Meta) NodeTitle() string { return m.Title }

// AnyOf is a sum type over an ordered list of alternatives.
type AnyOf struct {
	Meta

	// Members are the union alternatives, in document order.
	Members []Node
}

// Kind returns KindAnyOf.
func (n *AnyOf) Kind() Kind { return KindAnyOf }

// Object is a named single-field wrapper: a record whose only supported form
// is exactly one property, which must also be the single required one. The
// parser accepts the general shape; renderers enforce the restriction.
type Object struct {
	Meta

	// Properties maps wire property names to their schemas.
	Properties map[string]Node

	// Required lists the required property names.
	Required []string
}

// Kind returns KindObject.
func (n *Object) Kind() Kind { return KindObject }

// ArrayList is a homogeneous variable-length sequence.
type ArrayList struct {
	Meta

	// Items is the element schema.
	Items Node
}

// Kind returns KindArrayList.
func (n *ArrayList) Kind() Kind { return KindArrayList }

// ArrayTuple is a fixed-length heterogeneous sequence.
type ArrayTuple struct {
	Meta

	// PrefixItems are the per-position element schemas.
	PrefixItems []Node

	// AdditionalItems records whether the tuple admits extra trailing
	// elements. It defaults to true when the document omits it; renderers
	// only support tuples that set it to false explicitly.
	AdditionalItems bool

	// VariantName overrides the name derived from the discriminant const
	// when the tuple is lifted out of an anyOf.
	VariantName string

	// DropOnConflict marks the tuple as droppable when its lifted name
	// collides with another variant's. Used for nonessential alternatives
	// (e.g. alternate orderings) in targets that require explicit variant
	// names.
	DropOnConflict bool

	// Flatten splices this tuple's items into the enclosing tuple's field
	// list; serializers re-nest the spliced range to preserve wire shape.
	Flatten bool
}

// Kind returns KindArrayTuple.
func (n *ArrayTuple) Kind() Kind { return KindArrayTuple }

// String is the scalar string type.
type String struct {
	Meta
}

// Kind returns KindString.
func (n *String) Kind() Kind { return KindString }

// Number is a scalar floating-point type.
type Number struct {
	Meta

	// Width is the bit width hint: 32, 64, or 0 when the document omits it
	// (treated as 64). Renderers reject any other value.
	Width int
}

// Kind returns KindNumber.
func (n *Number) Kind() Kind { return KindNumber }

// Boolean is the scalar boolean type.
type Boolean struct {
	Meta
}

// Kind returns KindBoolean.
func (n *Boolean) Kind() Kind { return KindBoolean }

// Const is a single literal string value. It is only meaningful as a member
// of an AnyOf or an element of an ArrayTuple; renderers reject it standalone.
type Const struct {
	Meta

	// Value is the literal.
	Value string
}

// Kind returns KindConst.
func (n *Const) Kind() Kind { return KindConst }

// Ref is a reference to another top-level schema by name.
type Ref struct {
	Meta

	// Target is the referenced schema name, with the document's reference
	// prefix already stripped.
	Target string
}

// Kind returns KindRef.
func (n *Ref) Kind() Kind { return KindRef }

// Any is the escape hatch for an untyped value.
type Any struct {
	Meta
}

// Kind returns KindAny.
func (n *Any) Kind() Kind { return KindAny }
