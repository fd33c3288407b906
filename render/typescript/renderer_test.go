package typescript

import (
	"strings"
	"testing"

	"github.com/typeforge/apigen/render"
	"github.com/typeforge/apigen/schema"
)

func renderSpec(t *testing.T, spec *schema.Spec) string {
	t.Helper()
	src, err := New().Render(spec, render.Config{})
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

func TestRender_Unions(t *testing.T) {
	spec := schema.NewSpec()
	spec.Managed["Mode"] = &schema.AnyOf{Members: []schema.Node{
		&schema.Const{Value: "a"},
		&schema.Const{Value: "b"},
	}}
	spec.Managed["Filter"] = &schema.AnyOf{Members: []schema.Node{
		&schema.Ref{Target: "FilterEq"},
		&schema.Ref{Target: "FilterIn"},
	}}
	spec.Managed["FilterEq"] = &schema.String{}
	spec.Managed["FilterIn"] = &schema.Boolean{}

	got := renderSpec(t, spec)
	mustContain(t, got,
		`export type Mode = "a" | "b";`,
		"export type Filter = FilterEq | FilterIn;",
		"export type FilterEq = string;",
		"export type FilterIn = boolean;",
	)
}

func TestRender_ScalarAliases(t *testing.T) {
	spec := schema.NewSpec()
	spec.Managed["ExprFloat"] = &schema.Number{Width: 32}
	spec.Managed["ExprWide"] = &schema.Number{}
	spec.Managed["ExprRaw"] = &schema.Any{}
	spec.Managed["ExprList"] = &schema.ArrayList{Items: &schema.Number{Width: 64}}

	got := renderSpec(t, spec)
	mustContain(t, got,
		"export type ExprFloat = number;",
		"export type ExprWide = number;",
		"export type ExprRaw = unknown;",
		"export type ExprList = number[];",
	)
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

	got := renderSpec(t, spec)
	mustContain(t, got,
		`export type FilterXEq = ["Eq", string];`,
		"export function newFilterXEq(\n  f1: string,\n): FilterXEq {",
		"return [\n    \"Eq\",\n    f1,\n  ];",
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

	got := renderSpec(t, spec)
	// The type keeps the nested tuple; the constructor takes the expanded
	// slots and re-nests the array on output.
	mustContain(t, got,
		`export type RankByBoost = ["Boost", ["Sum", string], number];`,
		"export function newRankByBoost(\n  f2: string,\n  f4: number,\n): RankByBoost {",
		"return [\n    \"Boost\",\n    [\n      \"Sum\",\n      f2,\n    ],\n    f4,\n  ];",
	)
}

func TestRender_ObjectWrapper(t *testing.T) {
	spec := schema.NewSpec()
	spec.Managed["AggregateCount"] = &schema.Object{
		Properties: map[string]schema.Node{
			"$count_rows": &schema.Boolean{},
		},
		Required: []string{"$count_rows"},
	}

	got := renderSpec(t, spec)
	mustContain(t, got,
		"export interface AggregateCount {\n  \"$count_rows\": boolean;\n}",
		"export function newAggregateCount(\n  countRows: boolean,\n): AggregateCount {",
		`return { "$count_rows": countRows };`,
	)
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
				PrefixItems:     []schema.Node{&schema.Const{Value: "Eq"}},
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
