package golang

import (
	"strings"
	"testing"

	"github.com/typeforge/apigen/render"
	"github.com/typeforge/apigen/schema"
)

func renderSpec(t *testing.T, spec *schema.Spec, cfg render.Config) string {
	t.Helper()
	src, err := New().Render(spec, cfg)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return string(src)
}

func mustContain(t *testing.T, src string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(src, want) {
			t.Errorf("output missing %q\n%s", want, src)
		}
	}
}

func TestRender_ConstEnum(t *testing.T) {
	spec := schema.NewSpec()
	spec.Managed["Mode"] = &schema.AnyOf{Members: []schema.Node{
		&schema.Const{Value: "a"},
		&schema.Const{Value: "b"},
		&schema.Const{Meta: schema.Meta{Title: "ModeCee"}, Value: "c"},
	}}

	got := renderSpec(t, spec, render.Config{})
	want := `// Code generated by apigen. DO NOT EDIT.

package models

type Mode string
const (
	ModeA Mode = "a"
	ModeB Mode = "b"
	ModeCee Mode = "c"
)

`
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestRender_Tuple(t *testing.T) {
	spec := schema.NewSpec()
	spec.Managed["FilterXEq"] = &schema.ArrayTuple{
		AdditionalItems: false,
		PrefixItems: []schema.Node{
			&schema.Const{Value: "Eq"},
			&schema.String{},
		},
	}

	got := renderSpec(t, spec, render.Config{})
	mustContain(t, got,
		`import "encoding/json"`,
		"type FilterXEq struct {\n\tf1 string\n}",
		"func NewFilterXEq(\n\tf1 string,\n) FilterXEq {",
		"f1: f1,",
		"func (v FilterXEq) MarshalJSON() ([]byte, error) {",
		"return json.Marshal([]any{\n\t\t\"Eq\",\n\t\tv.f1,\n\t})",
	)
}

func TestRender_TupleFlatten(t *testing.T) {
	spec := schema.NewSpec()
	spec.Managed["RankByBoost"] = &schema.ArrayTuple{
		AdditionalItems: false,
		PrefixItems: []schema.Node{
			&schema.Const{Value: "Boost"},
			&schema.ArrayTuple{
				Flatten:         true,
				AdditionalItems: false,
				PrefixItems: []schema.Node{
					&schema.Const{Value: "Sum"},
					&schema.String{},
				},
			},
			&schema.Number{},
		},
	}

	got := renderSpec(t, spec, render.Config{})
	// The flattened range contributes struct fields at its expanded
	// positions, and the serializer re-wraps it in a nested array.
	mustContain(t, got,
		"type RankByBoost struct {\n\tf2 string\n\tf4 float64\n}",
		"[]any{\n\t\t\"Boost\",\n\t\t[]any{\n\t\t\t\"Sum\",\n\t\t\tv.f2,\n\t\t},\n\t\tv.f4,\n\t})",
	)
}

func TestRender_TupleTitledFields(t *testing.T) {
	spec := schema.NewSpec()
	spec.Managed["RankByBM25"] = &schema.ArrayTuple{
		AdditionalItems: false,
		PrefixItems: []schema.Node{
			&schema.Const{Value: "BM25"},
			&schema.String{Meta: schema.Meta{Title: "Field"}},
		},
	}

	got := renderSpec(t, spec, render.Config{})
	mustContain(t, got,
		"type RankByBM25 struct {\n\tField string\n}",
		"func NewRankByBM25(\n\tfield string,\n)",
		"Field: field,",
		"v.Field,",
	)
}

func TestRender_SealedInterface(t *testing.T) {
	spec := schema.NewSpec()
	spec.Managed["Filter"] = &schema.AnyOf{Members: []schema.Node{
		&schema.Ref{Target: "FilterEq"},
		&schema.Ref{Target: "FilterAnd"},
	}}
	spec.Managed["FilterAnd"] = &schema.AnyOf{Members: []schema.Node{
		&schema.Ref{Target: "FilterIn"},
	}}
	spec.Managed["FilterEq"] = &schema.String{}
	spec.Managed["FilterIn"] = &schema.Boolean{}

	got := renderSpec(t, spec, render.Config{})
	mustContain(t, got,
		"type Filter interface {\n\tsealedFilter()\n}",
		"func (v FilterEq) sealedFilter() {}",
		// Alternatives reached through a referenced all-ref anyOf join the
		// outer closed set.
		"func (v FilterIn) sealedFilter() {}",
		"type FilterAnd interface {\n\tsealedFilterAnd()\n}",
		"func (v FilterIn) sealedFilterAnd() {}",
	)
	if strings.Contains(got, "func (v FilterAnd) sealedFilter() {}") {
		t.Errorf("anyOf target got a marker method instead of being flattened:\n%s", got)
	}
}

func TestRender_SealedInterfaceUnresolvedRef(t *testing.T) {
	spec := schema.NewSpec()
	spec.Managed["Filter"] = &schema.AnyOf{Members: []schema.Node{
		&schema.Ref{Target: "Missing"},
	}}

	_, err := New().Render(spec, render.Config{})
	if err == nil || !strings.Contains(err.Error(), `unresolved schema reference "Missing"`) {
		t.Errorf("Render() error = %v, want unresolved schema reference", err)
	}
}

func TestRender_ObjectWrapper(t *testing.T) {
	spec := schema.NewSpec()
	spec.Managed["AggregateCount"] = &schema.Object{
		Properties: map[string]schema.Node{
			"$count_rows": &schema.Boolean{},
		},
		Required: []string{"$count_rows"},
	}

	got := renderSpec(t, spec, render.Config{})
	mustContain(t, got,
		"type AggregateCount struct {\n\tCountRows bool\n}",
		"func NewAggregateCount(\n\tcountRows bool,\n) AggregateCount {",
		"CountRows: countRows,",
		// The wire key keeps its sigil even though the field name drops it.
		"\"$count_rows\": v.CountRows,",
	)
}

func TestRender_Scalars(t *testing.T) {
	spec := schema.NewSpec()
	spec.Managed["ExprField"] = &schema.String{}
	spec.Managed["ExprFloat"] = &schema.Number{Width: 32}
	spec.Managed["ExprWide"] = &schema.Number{Width: 64}
	spec.Managed["ExprPlain"] = &schema.Number{}
	spec.Managed["ExprFlag"] = &schema.Boolean{}
	spec.Managed["ExprRaw"] = &schema.Any{}
	spec.Managed["ExprList"] = &schema.ArrayList{Items: &schema.String{}}
	spec.Unmanaged["Alias"] = &schema.Ref{Target: "ExprField"}

	got := renderSpec(t, spec, render.Config{})
	mustContain(t, got,
		"type ExprField string\n",
		"type ExprFloat float32\n",
		"type ExprWide float64\n",
		"type ExprPlain float64\n",
		"type ExprFlag bool\n",
		"type ExprRaw any\n",
		"type ExprList []string\n",
		"type Alias ExprField\n",
	)
	if strings.Contains(got, "import") {
		t.Errorf("scalar-only output should not import the JSON helper:\n%s", got)
	}
}

func TestRender_JSONShim(t *testing.T) {
	spec := schema.NewSpec()
	spec.Managed["FilterXEq"] = &schema.ArrayTuple{
		AdditionalItems: false,
		PrefixItems:     []schema.Node{&schema.Const{Value: "Eq"}, &schema.String{}},
	}

	got := renderSpec(t, spec, render.Config{JSONPackage: "example.com/shim/json"})
	mustContain(t, got,
		`import shimjson "example.com/shim/json"`,
		"return shimjson.Marshal([]any{",
	)
}

func TestRender_PackageName(t *testing.T) {
	spec := schema.NewSpec()
	spec.Managed["ExprField"] = &schema.String{}

	got := renderSpec(t, spec, render.Config{PackageName: "generated"})
	mustContain(t, got, "package generated\n")
}

func TestRender_Formatted(t *testing.T) {
	spec := schema.NewSpec()
	spec.Managed["FilterXEq"] = &schema.ArrayTuple{
		AdditionalItems: false,
		PrefixItems:     []schema.Node{&schema.Const{Value: "Eq"}, &schema.String{}},
	}
	spec.Managed["Mode"] = &schema.AnyOf{Members: []schema.Node{
		&schema.Const{Value: "a"},
		&schema.Const{Value: "b"},
	}}

	got := renderSpec(t, spec, render.Config{Format: true})
	mustContain(t, got, "package models", "type FilterXEq struct", "ModeA Mode = \"a\"")
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name    string
		node    schema.Node
		wantErr string
	}{
		{
			"mixed anyOf",
			&schema.AnyOf{Members: []schema.Node{
				&schema.Const{Value: "a"},
				&schema.Ref{Target: "Other"},
			}},
			"unsupported anyOf",
		},
		{
			"top-level const",
			&schema.Const{Value: "a"},
			"const in unsupported position",
		},
		{
			"open tuple",
			&schema.ArrayTuple{
				AdditionalItems: true,
				PrefixItems:     []schema.Node{&schema.Const{Value: "Eq"}, &schema.String{}},
			},
			"tuple-type arrays with additional items unsupported",
		},
		{
			"nested object",
			&schema.ArrayList{Items: &schema.Object{
				Properties: map[string]schema.Node{"x": &schema.String{}},
				Required:   []string{"x"},
			}},
			"object schema in unsupported position",
		},
		{
			"multi-property object",
			&schema.Object{
				Properties: map[string]schema.Node{"a": &schema.String{}, "b": &schema.String{}},
				Required:   []string{"a", "b"},
			},
			"single required property",
		},
		{
			"unsupported width",
			&schema.Number{Width: 16},
			"unsupported number width: 16",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := schema.NewSpec()
			spec.Managed["FilterX"] = tt.node

			_, err := New().Render(spec, render.Config{})
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Render() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
