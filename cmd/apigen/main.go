package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/davecgh/go-spew/spew"
	gojson "github.com/goccy/go-json"

	"github.com/typeforge/apigen"
)

type CLI struct {
	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     GenCmd     `cmd:"" help:"Generate data-model source for a target language."`
	Dump    DumpCmd    `cmd:"" help:"Dump the parsed and lifted schema set as JSON."`

	Quiet bool `help:"Suppress progress logging." short:"q"`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	_, err := os.Stdout.WriteString(Version() + "\n")
	return err
}

type GenCmd struct {
	Target  string   `arg:"" enum:"go,typescript,java" help:"Target language (go, typescript, java)."`
	Spec    string   `help:"Path to a local spec document (overrides the stats file URL)." short:"s" env:"SPEC_FILE_PATH"`
	Stats   string   `help:"Path to the stats file carrying openapi_spec_url." default:".stats.yml"`
	Out     string   `help:"Output file (default: stdout)." short:"o"`
	Prefix  []string `help:"Managed schema name prefixes." default:"Aggregate,Expr,Filter,RankBy"`
	Package string   `help:"Package name for the go target." default:"models"`
	JSONPkg string   `help:"Import path of the JSON marshal helper for the go target." name:"json-pkg"`
	Raw     bool     `help:"Skip the source formatter for the go target."`
}

func (c *GenCmd) Run() error {
	format := !c.Raw
	return apigen.Generate(context.Background(), &apigen.Config{
		Target:      c.Target,
		SpecPath:    c.Spec,
		StatsPath:   c.Stats,
		Prefixes:    c.Prefix,
		PackageName: c.Package,
		JSONPackage: c.JSONPkg,
		OutFile:     c.Out,
		Format:      &format,
	})
}

type DumpCmd struct {
	Target string   `help:"Target whose conflict policy applies during lifting." default:"go" enum:"go,typescript,java"`
	Spec   string   `help:"Path to a local spec document (overrides the stats file URL)." short:"s" env:"SPEC_FILE_PATH"`
	Stats  string   `help:"Path to the stats file carrying openapi_spec_url." default:".stats.yml"`
	Prefix []string `help:"Managed schema name prefixes." default:"Aggregate,Expr,Filter,RankBy"`
	Debug  bool     `help:"Also dump the in-memory schema tree to stderr."`
}

func (c *DumpCmd) Run() error {
	spec, err := apigen.Build(context.Background(), &apigen.Config{
		Target:    c.Target,
		SpecPath:  c.Spec,
		StatsPath: c.Stats,
		Prefixes:  c.Prefix,
	})
	if err != nil {
		return err
	}
	if c.Debug {
		spew.Fdump(os.Stderr, spec)
	}
	out, err := gojson.MarshalIndent(spec, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = os.Stdout.Write(out)
	return err
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("apigen"),
		kong.Description("Generate typed data models from a constrained OpenAPI document."),
		kong.UsageOnError(),
	)

	level := slog.LevelInfo
	if cli.Quiet {
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
