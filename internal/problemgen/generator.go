package problemgen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Sokol111/problemdetail/pkg/http/problems"
	"github.com/dave/jennifer/jen"
)

const problemsImport = "github.com/Sokol111/problemdetail/pkg/http/problems"

// Generator orchestrates the code generation process.
type Generator struct {
	config  *Config
	catalog *Catalog
}

// New creates a Generator and loads the catalog.
func New(cfg *Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.AbsolutePaths(); err != nil {
		return nil, err
	}

	catalog, err := LoadCatalog(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}

	return &Generator{config: cfg, catalog: catalog}, nil
}

// Catalog returns the loaded catalog.
func (g *Generator) Catalog() *Catalog {
	return g.catalog
}

// Generate writes the generated file to the output directory.
func (g *Generator) Generate() error {
	if err := g.config.ValidateForGeneration(); err != nil {
		return err
	}

	g.log("Generating %d error types from %s", len(g.catalog.Errors), g.config.CatalogFile)

	if err := os.MkdirAll(g.config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", g.config.OutputDir, err)
	}

	code, err := g.Render()
	if err != nil {
		return err
	}

	outputFile := filepath.Join(g.config.OutputDir, g.config.OutputFile)
	if err := os.WriteFile(outputFile, code, 0o644); err != nil { //nolint:gosec // generated source is world readable
		return fmt.Errorf("failed to write %s: %w", outputFile, err)
	}

	g.log("  Created %s", g.config.OutputFile)
	return nil
}

// Render returns the formatted generated source.
func (g *Generator) Render() ([]byte, error) {
	entries := append([]CatalogError(nil), g.catalog.Errors...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	f := jen.NewFile(g.config.Package)
	f.HeaderComment("Code generated by problemgen. DO NOT EDIT.")
	f.ImportName(problemsImport, "problems")

	f.Comment("Error types declared in " + g.catalog.Package + ".")
	f.Var().DefsFunc(func(group *jen.Group) {
		for _, e := range entries {
			group.Id(e.TypeVarName()).Op("=").Qual(problemsImport, "ErrorType").Values(jen.Dict{
				jen.Id("Package"): jen.Lit(g.catalog.Package),
				jen.Id("Name"):    jen.Lit(e.Name),
			})
		}
	})
	f.Line()

	f.Func().Id("init").Params().Block(
		jen.Id("Register").Call(jen.Qual(problemsImport, "DefaultRegistry")),
	)
	f.Line()

	f.Comment("Register declares the status of every catalog error type in r.")
	f.Func().Id("Register").Params(jen.Id("r").Op("*").Qual(problemsImport, "Registry")).BlockFunc(func(group *jen.Group) {
		for _, e := range entries {
			group.Id("r").Dot("Register").Call(jen.Id(e.TypeVarName()), jen.Lit(e.Status))
		}
	})
	f.Line()

	for _, e := range entries {
		builder := jen.Qual(problemsImport, "From").Call(jen.Id(e.TypeVarName()))
		if e.Title != "" {
			builder = builder.Dot("Title").Call(jen.Lit(e.Title))
		}
		builder = builder.Dot("Detail").Call(jen.Id("detail")).Dot("Build").Call()

		title := e.Title
		if title == "" {
			title = problems.Title(e.Name)
		}
		f.Commentf("%s returns a %d %q problem for %s.", e.ConstructorName(), e.Status, title, e.Name)
		f.Func().Id(e.ConstructorName()).
			Params(jen.Id("detail").String()).
			Op("*").Qual(problemsImport, "WebError").
			Block(jen.Return(builder))
		f.Line()
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render generated code: %w", err)
	}
	return buf.Bytes(), nil
}

// log prints a message if verbose mode is enabled.
func (g *Generator) log(format string, args ...any) {
	if g.config.Verbose {
		fmt.Printf(format+"\n", args...)
	}
}
