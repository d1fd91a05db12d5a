package parser

import (
	"time"

	"github.com/funvibe/coolc/internal/ast"
	"github.com/funvibe/coolc/internal/diagnostics"
	"github.com/funvibe/coolc/internal/pipeline"
	"github.com/funvibe/coolc/internal/token"
)

type ParserProcessor struct{}

// Process parses every token stream and merges the classes of all files
// into ctx.Program, in source order.
func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	start := time.Now()

	if len(ctx.TokenStreams) != len(ctx.Sources) {
		// This case should ideally not be hit if lexer runs first, but as a safeguard:
		ctx.Errors = append(ctx.Errors, diagnostics.NewError(diagnostics.ErrP001, token.Token{}, "parser: token streams do not match sources"))
		return ctx
	}

	if ctx.FileNames == nil {
		ctx.FileNames = make(map[*ast.Class]string)
	}
	program := &ast.Program{}
	for i, stream := range ctx.TokenStreams {
		path := ctx.Sources[i].Path
		prog := New(stream, ctx, path).ParseProgram()
		for _, class := range prog.Classes {
			ctx.FileNames[class] = path
		}
		program.Classes = append(program.Classes, prog.Classes...)
	}
	ctx.Program = program

	ctx.Log().Debug("pass.timing", "pass", "parse", "classes", len(program.Classes), "elapsed", time.Since(start))
	return ctx
}
