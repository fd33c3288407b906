package apigen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const specYAML = `
components:
  schemas:
    Filter:
      anyOf:
        - type: array
          additionalItems: false
          prefixItems:
            - const: Eq
            - type: string
        - type: array
          additionalItems: false
          x-apigen-variant-drop-on-conflict: true
          prefixItems:
            - const: Eq
            - type: number
    Mode:
      anyOf:
        - const: asc
        - const: desc
    Ignored:
      type: string
`

func writeSpec(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "openapi.yml")
	require.NoError(t, os.WriteFile(path, []byte(specYAML), 0644))
	return path
}

func TestGenerate_Go(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "types.gen.go")
	err := Generate(context.Background(), &Config{
		Target:   "go",
		SpecPath: writeSpec(t),
		Prefixes: []string{"Filter", "Mode"},
		OutFile:  outFile,
	})
	require.NoError(t, err)

	out, err := os.ReadFile(outFile)
	require.NoError(t, err)
	src := string(out)

	assert.Contains(t, src, "// Code generated by apigen. DO NOT EDIT.")
	assert.Contains(t, src, "package models")
	// The drop policy removes the flagged second variant, so the union has
	// a single alternative.
	assert.Contains(t, src, "type FilterEq struct")
	assert.NotContains(t, src, "FilterEq2")
	assert.Contains(t, src, "func (v FilterEq) sealedFilter() {}")
	assert.Contains(t, src, "ModeAsc")
	assert.Contains(t, src, "ModeDesc")
	assert.NotContains(t, src, "Ignored")
}

func TestGenerate_TypeScript(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "types.gen.ts")
	err := Generate(context.Background(), &Config{
		Target:   "typescript",
		SpecPath: writeSpec(t),
		Prefixes: []string{"Filter", "Mode"},
		OutFile:  outFile,
	})
	require.NoError(t, err)

	out, err := os.ReadFile(outFile)
	require.NoError(t, err)
	src := string(out)

	// The append-suffix policy keeps both colliding variants.
	assert.Contains(t, src, `export type FilterEq = ["Eq", string];`)
	assert.Contains(t, src, `export type FilterEq2 = ["Eq", number];`)
	assert.Contains(t, src, "export type Filter = FilterEq | FilterEq2;")
	assert.Contains(t, src, `export type Mode = "asc" | "desc";`)
}

func TestGenerate_Java(t *testing.T) {
	err := Generate(context.Background(), &Config{
		Target:   "java",
		SpecPath: writeSpec(t),
		Prefixes: []string{"Filter", "Mode"},
	})
	require.ErrorContains(t, err, "java target is unimplemented")
}

func TestGenerate_UnknownTarget(t *testing.T) {
	err := Generate(context.Background(), &Config{
		Target:   "rust",
		SpecPath: writeSpec(t),
	})
	require.ErrorContains(t, err, "invalid config")
}

func TestGenerate_MissingTarget(t *testing.T) {
	err := Generate(context.Background(), &Config{SpecPath: writeSpec(t)})
	require.ErrorContains(t, err, "invalid config")
}

func TestBuild(t *testing.T) {
	spec, err := Build(context.Background(), &Config{
		Target:   "go",
		SpecPath: writeSpec(t),
		Prefixes: []string{"Filter", "Mode"},
	})
	require.NoError(t, err)

	want := []string{"Filter", "FilterEq", "Mode"}
	if !assert.Equal(t, want, spec.Names()) {
		t.Log(spew.Sdump(spec))
	}
}

func TestApplyConfigDefaults(t *testing.T) {
	cfg := &Config{Target: "go"}
	got := applyConfigDefaults(cfg)

	assert.Equal(t, ".stats.yml", got.StatsPath)
	assert.Equal(t, DefaultPrefixes, got.Prefixes)
	require.NotNil(t, got.Format)
	assert.True(t, *got.Format)

	// The input config is left untouched.
	assert.Empty(t, cfg.StatsPath)
	assert.Nil(t, cfg.Prefixes)
	assert.Nil(t, cfg.Format)
}
