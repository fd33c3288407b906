// Package apigen turns a constrained subset of an OpenAPI document into
// statically-typed data-model source text for several target languages.
//
// The pipeline is single-threaded and single-pass: the document is parsed
// into a closed schema algebra, tuple-shaped union variants are lifted into
// named top-level schemas, and exactly one renderer emits source for the
// chosen target. Every failure is fatal to the run; there is no partial
// output.
package apigen

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/typeforge/apigen/internal/source"
	"github.com/typeforge/apigen/render"
	"github.com/typeforge/apigen/render/golang"
	"github.com/typeforge/apigen/render/java"
	"github.com/typeforge/apigen/render/typescript"
	"github.com/typeforge/apigen/schema"
	"github.com/typeforge/apigen/sink"
)

// DefaultPrefixes is the managed-schema whitelist used when a Config does
// not override it.
var DefaultPrefixes = []string{"Aggregate", "Expr", "Filter", "RankBy"}

// Config holds the configuration for one generation run.
type Config struct {
	// Target is the language to generate code for.
	Target string `validate:"required,oneof=go typescript java"`

	// SpecPath is a local document path. When set, it overrides the URL
	// recorded in the stats file.
	SpecPath string

	// StatsPath is the stats file carrying openapi_spec_url.
	// Default: ".stats.yml".
	StatsPath string

	// Prefixes is the whitelist of schema-name prefixes the generator
	// owns. Default: DefaultPrefixes.
	Prefixes []string `validate:"min=1,dive,required"`

	// PackageName is the package clause for the go target.
	// Default: "models".
	PackageName string

	// JSONPackage is the import path of the JSON marshal helper used by
	// generated Go serializers. Default: "encoding/json".
	JSONPackage string

	// OutFile is the output file path. Empty writes to stdout.
	OutFile string

	// Format controls whether Go output is run through the source
	// formatter. Default: true.
	Format *bool

	// HTTPClient overrides the client used to download the document.
	HTTPClient *http.Client
}

// Generate runs the full pipeline for one document and one target.
func Generate(ctx context.Context, cfg *Config) error {
	cfg = applyConfigDefaults(cfg)
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	r, err := rendererFor(cfg.Target)
	if err != nil {
		return err
	}

	spec, err := build(ctx, cfg, r.Policy())
	if err != nil {
		return err
	}

	slog.Info("rendering", "target", r.Name(), "schemas", len(spec.Names()))
	out, err := r.Render(spec, render.Config{
		PackageName: cfg.PackageName,
		JSONPackage: cfg.JSONPackage,
		Format:      *cfg.Format,
	})
	if err != nil {
		return fmt.Errorf("render %s: %w", r.Name(), err)
	}

	if cfg.OutFile == "" {
		return sink.NewWriterSink(os.Stdout).WriteFile(ctx, "-", out)
	}
	dir, file := filepath.Split(cfg.OutFile)
	if dir == "" {
		dir = "."
	}
	return sink.NewFilesystemSink(dir).WriteFile(ctx, file, out)
}

// Build runs the load, parse, and lift stages and returns the lifted spec,
// using the conflict policy of the configured target. The dump command uses
// this to inspect the schema set without rendering.
func Build(ctx context.Context, cfg *Config) (*schema.Spec, error) {
	cfg = applyConfigDefaults(cfg)
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	r, err := rendererFor(cfg.Target)
	if err != nil {
		return nil, err
	}
	return build(ctx, cfg, r.Policy())
}

func build(ctx context.Context, cfg *Config, policy schema.ConflictPolicy) (*schema.Spec, error) {
	data, err := source.Load(ctx, cfg.HTTPClient, cfg.SpecPath, cfg.StatsPath)
	if err != nil {
		return nil, err
	}
	doc, err := source.Decode(data)
	if err != nil {
		return nil, err
	}

	slog.Info("parsing spec", "prefixes", cfg.Prefixes)
	spec, err := schema.Parse(doc, cfg.Prefixes)
	if err != nil {
		return nil, fmt.Errorf("parse spec: %w", err)
	}

	slog.Info("lifting tuple variants", "policy", policy.String())
	lifted, err := schema.Lift(spec, policy)
	if err != nil {
		return nil, fmt.Errorf("lift spec: %w", err)
	}
	return lifted, nil
}

// rendererFor maps a target name to its renderer.
func rendererFor(target string) (render.Renderer, error) {
	switch target {
	case "go":
		return golang.New(), nil
	case "typescript":
		return typescript.New(), nil
	case "java":
		return java.New(), nil
	default:
		return nil, fmt.Errorf("unknown target: %q (expected \"go\", \"typescript\", or \"java\")", target)
	}
}

// applyConfigDefaults applies default values to Config without mutating the
// input.
func applyConfigDefaults(cfg *Config) *Config {
	result := *cfg
	if result.StatsPath == "" {
		result.StatsPath = ".stats.yml"
	}
	if len(result.Prefixes) == 0 {
		result.Prefixes = DefaultPrefixes
	}
	if result.Format == nil {
		format := true
		result.Format = &format
	}
	return &result
}
