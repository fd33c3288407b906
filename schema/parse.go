package schema

import (
	"fmt"
	"sort"
	"strings"
)

// RefPrefix is the only reference form the parser accepts. A $ref that does
// not use it is a reference error.
const RefPrefix = "#/components/schemas/"

// Vendor extension fields consumed by the parser. All are optional.
const (
	extVariantName    = "x-apigen-variant-name"
	extDropOnConflict = "x-apigen-variant-drop-on-conflict"
	extFlatten        = "x-apigen-flatten"
	extWidth          = "x-apigen-width"
	extAny            = "x-apigen-any"
)

// Parse builds a Spec from a decoded OpenAPI document.
//
// Top-level entries under components.schemas whose names match one of the
// prefixes are parsed strictly into the schema algebra and become the managed
// set. Entries outside the whitelist are parsed only if some managed schema
// transitively references them; those become the unmanaged set. Everything
// else in the document is ignored.
//
// The parser treats the document as a whitelist, not a general JSON-Schema
// dialect: a node matching none of the ten shapes, an unknown field, or a
// mismatched type tag is a fatal error.
func Parse(doc map[string]any, prefixes []string) (*Spec, error) {
	raw, err := locateSchemas(doc)
	if err != nil {
		return nil, err
	}

	var managedNames []string
	for name := range raw {
		for _, prefix := range prefixes {
			if strings.HasPrefix(name, prefix) {
				managedNames = append(managedNames, name)
				break
			}
		}
	}
	sort.Strings(managedNames)

	spec := NewSpec()
	var pending []string
	for _, name := range managedNames {
		node, err := decodeNode(raw[name], name)
		if err != nil {
			return nil, fmt.Errorf("parse schema %q: %w", name, err)
		}
		spec.Managed[name] = node
		pending = append(pending, refTargets(node)...)
	}

	// Reference closure: pull in every non-managed schema reachable from a
	// managed one, following references through unmanaged schemas too.
	for len(pending) > 0 {
		target := pending[0]
		pending = pending[1:]
		if _, ok := spec.Managed[target]; ok {
			continue
		}
		if _, ok := spec.Unmanaged[target]; ok {
			continue
		}
		rv, ok := raw[target]
		if !ok {
			return nil, fmt.Errorf("unresolved schema reference %q", target)
		}
		node, err := decodeNode(rv, target)
		if err != nil {
			return nil, fmt.Errorf("parse schema %q: %w", target, err)
		}
		spec.Unmanaged[target] = node
		pending = append(pending, refTargets(node)...)
	}

	return spec, nil
}

// locateSchemas finds the components.schemas mapping.
func locateSchemas(doc map[string]any) (map[string]any, error) {
	components, ok := doc["components"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("no schemas found in document")
	}
	schemas, ok := components["schemas"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("no schemas found in document")
	}
	return schemas, nil
}

// decodeNode classifies a raw mapping by its discriminant keys and decodes it
// into exactly one of the ten shapes.
func decodeNode(v any, path string) (Node, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: schema node must be a mapping", path)
	}

	if _, ok := m["anyOf"]; ok {
		return decodeAnyOf(m, path)
	}
	if _, ok := m["$ref"]; ok {
		return decodeRef(m, path)
	}
	if _, ok := m["const"]; ok {
		return decodeConst(m, path)
	}
	if tv, ok := m["type"]; ok {
		tag, ok := tv.(string)
		if !ok {
			return nil, fmt.Errorf("%s: type tag must be a string", path)
		}
		switch tag {
		case "object":
			return decodeObject(m, path)
		case "array":
			return decodeArray(m, path)
		case "string":
			if err := checkFields(m, path, "type", "description", "title"); err != nil {
				return nil, err
			}
			meta, err := metaOf(m, path)
			if err != nil {
				return nil, err
			}
			return &String{Meta: meta}, nil
		case "number":
			return decodeNumber(m, path)
		case "boolean":
			if err := checkFields(m, path, "type", "description", "title"); err != nil {
				return nil, err
			}
			meta, err := metaOf(m, path)
			if err != nil {
				return nil, err
			}
			return &Boolean{Meta: meta}, nil
		default:
			return nil, fmt.Errorf("%s: unsupported type tag %q", path, tag)
		}
	}
	return decodeAnyNode(m, path)
}

func decodeAnyOf(m map[string]any, path string) (Node, error) {
	if err := checkFields(m, path, "anyOf", "description", "title"); err != nil {
		return nil, err
	}
	meta, err := metaOf(m, path)
	if err != nil {
		return nil, err
	}
	members, ok := m["anyOf"].([]any)
	if !ok {
		return nil, fmt.Errorf("%s: anyOf must be a sequence", path)
	}
	node := &AnyOf{Meta: meta, Members: make([]Node, 0, len(members))}
	for i, mv := range members {
		member, err := decodeNode(mv, fmt.Sprintf("%s/anyOf[%d]", path, i))
		if err != nil {
			return nil, err
		}
		node.Members = append(node.Members, member)
	}
	return node, nil
}

func decodeRef(m map[string]any, path string) (Node, error) {
	if err := checkFields(m, path, "$ref", "title"); err != nil {
		return nil, err
	}
	meta, err := metaOf(m, path)
	if err != nil {
		return nil, err
	}
	sref, ok := m["$ref"].(string)
	if !ok {
		return nil, fmt.Errorf("%s: $ref must be a string", path)
	}
	target, ok := strings.CutPrefix(sref, RefPrefix)
	if !ok || target == "" {
		return nil, fmt.Errorf("%s: reference %q must start with %q", path, sref, RefPrefix)
	}
	return &Ref{Meta: meta, Target: target}, nil
}

func decodeConst(m map[string]any, path string) (Node, error) {
	if err := checkFields(m, path, "const", "description", "title"); err != nil {
		return nil, err
	}
	meta, err := metaOf(m, path)
	if err != nil {
		return nil, err
	}
	value, ok := m["const"].(string)
	if !ok {
		return nil, fmt.Errorf("%s: const value must be a string", path)
	}
	return &Const{Meta: meta, Value: value}, nil
}

func decodeObject(m map[string]any, path string) (Node, error) {
	if err := checkFields(m, path, "type", "description", "title", "properties", "required"); err != nil {
		return nil, err
	}
	meta, err := metaOf(m, path)
	if err != nil {
		return nil, err
	}
	props, ok := m["properties"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: object schema must declare properties", path)
	}
	node := &Object{Meta: meta, Properties: make(map[string]Node, len(props))}
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		prop, err := decodeNode(props[name], path+"/properties/"+name)
		if err != nil {
			return nil, err
		}
		node.Properties[name] = prop
	}
	if rv, ok := m["required"]; ok {
		list, ok := rv.([]any)
		if !ok {
			return nil, fmt.Errorf("%s: required must be a sequence", path)
		}
		for _, v := range list {
			name, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%s: required entries must be strings", path)
			}
			node.Required = append(node.Required, name)
		}
	}
	return node, nil
}

func decodeArray(m map[string]any, path string) (Node, error) {
	_, hasItems := m["items"]
	_, hasPrefix := m["prefixItems"]
	switch {
	case hasItems && hasPrefix:
		return nil, fmt.Errorf("%s: array schema cannot declare both items and prefixItems", path)
	case hasItems:
		if err := checkFields(m, path, "type", "description", "title", "items"); err != nil {
			return nil, err
		}
		meta, err := metaOf(m, path)
		if err != nil {
			return nil, err
		}
		items, err := decodeNode(m["items"], path+"/items")
		if err != nil {
			return nil, err
		}
		return &ArrayList{Meta: meta, Items: items}, nil
	case hasPrefix:
		return decodeTuple(m, path)
	default:
		return nil, fmt.Errorf("%s: array schema must declare items or prefixItems", path)
	}
}

func decodeTuple(m map[string]any, path string) (Node, error) {
	err := checkFields(m, path,
		"type", "description", "title", "prefixItems", "additionalItems",
		extVariantName, extDropOnConflict, extFlatten)
	if err != nil {
		return nil, err
	}
	meta, err := metaOf(m, path)
	if err != nil {
		return nil, err
	}
	// additionalItems defaults to true when omitted; renderers demand an
	// explicit false.
	additional, err := boolField(m, "additionalItems", path, true)
	if err != nil {
		return nil, err
	}
	variantName, err := stringField(m, extVariantName, path)
	if err != nil {
		return nil, err
	}
	drop, err := boolField(m, extDropOnConflict, path, false)
	if err != nil {
		return nil, err
	}
	flatten, err := boolField(m, extFlatten, path, false)
	if err != nil {
		return nil, err
	}
	items, ok := m["prefixItems"].([]any)
	if !ok {
		return nil, fmt.Errorf("%s: prefixItems must be a sequence", path)
	}
	node := &ArrayTuple{
		Meta:            meta,
		PrefixItems:     make([]Node, 0, len(items)),
		AdditionalItems: additional,
		VariantName:     variantName,
		DropOnConflict:  drop,
		Flatten:         flatten,
	}
	for i, iv := range items {
		item, err := decodeNode(iv, fmt.Sprintf("%s/prefixItems[%d]", path, i))
		if err != nil {
			return nil, err
		}
		node.PrefixItems = append(node.PrefixItems, item)
	}
	return node, nil
}

func decodeNumber(m map[string]any, path string) (Node, error) {
	if err := checkFields(m, path, "type", "description", "title", extWidth); err != nil {
		return nil, err
	}
	meta, err := metaOf(m, path)
	if err != nil {
		return nil, err
	}
	width, err := intField(m, extWidth, path)
	if err != nil {
		return nil, err
	}
	return &Number{Meta: meta, Width: width}, nil
}

// decodeAnyNode handles the fallback shape: a node with no discriminant keys
// at all is the untyped escape hatch.
func decodeAnyNode(m map[string]any, path string) (Node, error) {
	if err := checkFields(m, path, "description", "title", extAny); err != nil {
		return nil, err
	}
	meta, err := metaOf(m, path)
	if err != nil {
		return nil, err
	}
	if mv, ok := m[extAny]; ok {
		// The marker, when present, must be the literal true.
		if b, ok := mv.(bool); !ok || !b {
			return nil, fmt.Errorf("%s: %s must be true", path, extAny)
		}
	}
	return &Any{Meta: meta}, nil
}

// checkFields rejects any key outside the allowed set.
func checkFields(m map[string]any, path string, allowed ...string) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		found := false
		for _, a := range allowed {
			if k == a {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%s: unknown field %q", path, k)
		}
	}
	return nil
}

func metaOf(m map[string]any, path string) (Meta, error) {
	title, err := stringField(m, "title", path)
	if err != nil {
		return Meta{}, err
	}
	description, err := stringField(m, "description", path)
	if err != nil {
		return Meta{}, err
	}
	return Meta{Title: title, Description: description}, nil
}

func stringField(m map[string]any, key, path string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: %s must be a string", path, key)
	}
	return s, nil
}

func boolField(m map[string]any, key, path string, def bool) (bool, error) {
	v, ok := m[key]
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%s: %s must be a boolean", path, key)
	}
	return b, nil
}

// intField reads an optional integer field, tolerating the float64 values
// JSON decoders produce for numbers.
func intField(m map[string]any, key, path string) (int, error) {
	v, ok := m[key]
	if !ok {
		return 0, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%s: %s must be an integer", path, key)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%s: %s must be an integer", path, key)
	}
}

// refTargets walks a node and collects every reference target, in traversal
// order. Object properties are visited in sorted name order so closure
// computation is deterministic.
func refTargets(n Node) []string {
	var targets []string
	switch t := n.(type) {
	case *AnyOf:
		for _, member := range t.Members {
			targets = append(targets, refTargets(member)...)
		}
	case *Object:
		names := make([]string, 0, len(t.Properties))
		for name := range t.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			targets = append(targets, refTargets(t.Properties[name])...)
		}
	case *ArrayList:
		targets = append(targets, refTargets(t.Items)...)
	case *ArrayTuple:
		for _, item := range t.PrefixItems {
			targets = append(targets, refTargets(item)...)
		}
	case *Ref:
		targets = append(targets, t.Target)
	}
	return targets
}
