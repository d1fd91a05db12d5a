package analyzer

import (
	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/diagnostics"
	"github.com/funvibe/coolc/internal/symbols"
)

// Options tune one analysis run.
type Options struct {
	// RequireMain reports a program without class Main or method Main.main.
	RequireMain bool
}

// Result is the decorated program and everything reported about it.
type Result struct {
	Program     *ast.Program
	Registry    *symbols.Registry
	Decorations *symbols.Decorations
	Diagnostics []*diagnostics.DiagnosticError
	HasErrors   bool
}

// Analyzer performs semantic analysis on the AST. Each Analyzer owns a fresh
// registry; use one per program.
type Analyzer struct {
	registry    *symbols.Registry
	decorations *symbols.Decorations
	options     Options
}

// New creates an Analyzer with a registry seeded with the builtin classes.
func New(options Options) *Analyzer {
	return &Analyzer{
		registry:    symbols.NewRegistry(),
		decorations: symbols.NewDecorations(),
		options:     options,
	}
}

func (a *Analyzer) Registry() *symbols.Registry { return a.registry }

func (a *Analyzer) Decorations() *symbols.Decorations { return a.decorations }

// Define runs the Definition Pass and resolves the declared type names of
// everything it registered.
func (a *Analyzer) Define(program *ast.Program) {
	NewDefiner(a.registry, a.decorations).Define(program)
	a.registry.Link()
	for _, t := range a.decorations.Classes {
		// Rejected classes are not in the registry but are still checked.
		if a.registry.Resolve(t.Name()) != t {
			a.registry.LinkClass(t)
		}
	}
}

// Resolve runs the Resolution Pass. Define must have run first.
func (a *Analyzer) Resolve(program *ast.Program) {
	r := newResolver(a.registry, a.decorations)
	r.resolve(program)
	if a.options.RequireMain {
		r.checkEntryPoint()
	}
}

// Analyze runs both passes over program. fileNames maps each class to the
// file that declared it; it is only used to render diagnostics.
func (a *Analyzer) Analyze(program *ast.Program, fileNames map[*ast.Class]string) *Result {
	a.registry.SetSources(fileNames, ast.IndexOwners(program))
	a.Define(program)
	a.Resolve(program)
	return &Result{
		Program:     program,
		Registry:    a.registry,
		Decorations: a.decorations,
		Diagnostics: a.registry.Diagnostics(),
		HasErrors:   a.registry.HasErrors(),
	}
}
