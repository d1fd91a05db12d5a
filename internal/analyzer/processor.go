package analyzer

import (
	"time"

	"github.com/funvibe/coolc/internal/pipeline"
)

type SemanticAnalyzerProcessor struct{}

// Process analyzes ctx.Program. A program that failed to lex or parse is not
// analyzed: its tree may be missing pieces.
func (sap *SemanticAnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Program == nil || ctx.HasFrontEndErrors() {
		return ctx
	}
	start := time.Now()

	analyzer := New(Options{RequireMain: ctx.RequireMain})
	result := analyzer.Analyze(ctx.Program, ctx.FileNames)

	ctx.Registry = result.Registry
	ctx.Decorations = result.Decorations
	if len(result.Diagnostics) > 0 {
		ctx.Errors = append(ctx.Errors, result.Diagnostics...)
	}

	ctx.Log().Debug("pass.timing", "pass", "analyze",
		"classes", len(ctx.Program.Classes), "diagnostics", len(result.Diagnostics), "elapsed", time.Since(start))
	return ctx
}
