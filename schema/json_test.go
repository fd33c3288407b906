package schema

import (
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
)

func TestMarshalJSON_KindTags(t *testing.T) {
	spec := NewSpec()
	spec.Managed["Filter"] = &AnyOf{Members: []Node{
		&Ref{Target: "FilterEq"},
	}}
	spec.Unmanaged["Shared"] = &ArrayTuple{
		PrefixItems: []Node{
			&Const{Value: "Eq"},
			&Number{Width: 32},
		},
	}

	out, err := gojson.Marshal(spec)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, want := range []string{
		`"managed"`,
		`"unmanaged"`,
		`"kind":"anyOf"`,
		`"kind":"ref"`,
		`"target":"FilterEq"`,
		`"kind":"arrayTuple"`,
		`"kind":"const"`,
		`"value":"Eq"`,
		`"kind":"number"`,
		`"width":32`,
	} {
		if !strings.Contains(string(out), want) {
			t.Errorf("output missing %s\n%s", want, out)
		}
	}
	// Unset annotations are omitted entirely.
	if strings.Contains(string(out), `"title"`) {
		t.Errorf("empty titles serialized:\n%s", out)
	}
}
