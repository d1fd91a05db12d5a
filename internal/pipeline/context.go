package pipeline

import (
	"log/slog"

	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/diagnostics"
	"github.com/funvibe/coolc/internal/symbols"
	"github.com/funvibe/coolc/internal/token"
)

// Processor is one stage of the front end.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Source is one input file. All sources of a run form a single program.
type Source struct {
	Path string
	Text string
}

// PipelineContext carries the state of one analysis run between stages.
type PipelineContext struct {
	Sources []Source

	// TokenStreams is parallel to Sources.
	TokenStreams []token.TokenStream

	Program *ast.Program
	// FileNames maps each class to the path of the source that declared it.
	FileNames map[*ast.Class]string

	Registry    *symbols.Registry
	Decorations *symbols.Decorations

	Errors []*diagnostics.DiagnosticError

	// RequireMain turns on the entry point check.
	RequireMain bool

	Logger *slog.Logger
}

func NewPipelineContext(sources ...Source) *PipelineContext {
	return &PipelineContext{
		Sources:   sources,
		FileNames: make(map[*ast.Class]string),
		Logger:    slog.Default(),
	}
}

// HasFrontEndErrors reports whether lexing or parsing failed.
func (ctx *PipelineContext) HasFrontEndErrors() bool {
	for _, err := range ctx.Errors {
		if err.Kind() != diagnostics.KindSemantic {
			return true
		}
	}
	return false
}

// Log returns the run's logger.
func (ctx *PipelineContext) Log() *slog.Logger {
	if ctx.Logger == nil {
		return slog.Default()
	}
	return ctx.Logger
}
