package schema

import gojson "github.com/goccy/go-json"

// JSON serialization for schema nodes, used by the dump command. Every node
// carries a "kind" field for discrimination.

// MarshalJSON implements json.Marshaler for AnyOf.
func (n *AnyOf) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(&struct {
		Kind    string `json:"kind"`
		Title   string `json:"title,omitempty"`
		Members []Node `json:"members"`
	}{
		Kind:    string(KindAnyOf),
		Title:   n.Title,
		Members: n.Members,
	})
}

// MarshalJSON implements json.Marshaler for Object.
func (n *Object) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(&struct {
		Kind       string          `json:"kind"`
		Title      string          `json:"title,omitempty"`
		Properties map[string]Node `json:"properties"`
		Required   []string        `json:"required,omitempty"`
	}{
		Kind:       string(KindObject),
		Title:      n.Title,
		Properties: n.Properties,
		Required:   n.Required,
	})
}

// MarshalJSON implements json.Marshaler for ArrayList.
func (n *ArrayList) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(&struct {
		Kind  string `json:"kind"`
		Title string `json:"title,omitempty"`
		Items Node   `json:"items"`
	}{
		Kind:  string(KindArrayList),
		Title: n.Title,
		Items: n.Items,
	})
}

// MarshalJSON implements json.Marshaler for ArrayTuple.
func (n *ArrayTuple) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(&struct {
		Kind            string `json:"kind"`
		Title           string `json:"title,omitempty"`
		PrefixItems     []Node `json:"prefixItems"`
		AdditionalItems bool   `json:"additionalItems"`
		VariantName     string `json:"variantName,omitempty"`
		DropOnConflict  bool   `json:"dropOnConflict,omitempty"`
		Flatten         bool   `json:"flatten,omitempty"`
	}{
		Kind:            string(KindArrayTuple),
		Title:           n.Title,
		PrefixItems:     n.PrefixItems,
		AdditionalItems: n.AdditionalItems,
		VariantName:     n.VariantName,
		DropOnConflict:  n.DropOnConflict,
		Flatten:         n.Flatten,
	})
}

// MarshalJSON implements json.Marshaler for String.
func (n *String) MarshalJSON() ([]byte, error) {
	return marshalScalar(KindString, n.Title)
}

// MarshalJSON implements json.Marshaler for Number.
func (n *Number) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(&struct {
		Kind  string `json:"kind"`
		Title string `json:"title,omitempty"`
		Width int    `json:"width,omitempty"`
	}{
		Kind:  string(KindNumber),
		Title: n.Title,
		Width: n.Width,
	})
}

// MarshalJSON implements json.Marshaler for Boolean.
func (n *Boolean) MarshalJSON() ([]byte, error) {
	return marshalScalar(KindBoolean, n.Title)
}

// MarshalJSON implements json.Marshaler for Const.
func (n *Const) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(&struct {
		Kind  string `json:"kind"`
		Title string `json:"title,omitempty"`
		Value string `json:"value"`
	}{
		Kind:  string(KindConst),
		Title: n.Title,
		Value: n.Value,
	})
}

// MarshalJSON implements json.Marshaler for Ref.
func (n *Ref) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(&struct {
		Kind   string `json:"kind"`
		Title  string `json:"title,omitempty"`
		Target string `json:"target"`
	}{
		Kind:   string(KindRef),
		Title:  n.Title,
		Target: n.Target,
	})
}

// MarshalJSON implements json.Marshaler for Any.
func (n *Any) MarshalJSON() ([]byte, error) {
	return marshalScalar(KindAny, n.Title)
}

// MarshalJSON implements json.Marshaler for Spec.
func (s *Spec) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(&struct {
		Managed   map[string]Node `json:"managed"`
		Unmanaged map[string]Node `json:"unmanaged"`
	}{
		Managed:   s.Managed,
		Unmanaged: s.Unmanaged,
	})
}

func marshalScalar(kind Kind, title string) ([]byte, error) {
	return gojson.Marshal(&struct {
		Kind  string `json:"kind"`
		Title string `json:"title,omitempty"`
	}{
		Kind:  string(kind),
		Title: title,
	})
}
