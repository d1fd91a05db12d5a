package lexer

import (
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/funvibe/coolc/internal/pipeline"
	"github.com/funvibe/coolc/internal/token"
)

type LexerProcessor struct{}

// Process tokenizes every source concurrently. Streams keep the order of
// ctx.Sources; lexical errors stay in the streams as ERROR tokens for the
// parser to report.
func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	start := time.Now()
	streams := make([][]token.Token, len(ctx.Sources))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, src := range ctx.Sources {
		i, src := i, src
		g.Go(func() error {
			streams[i] = Tokenize(src.Text)
			return nil
		})
	}
	_ = g.Wait()

	ctx.TokenStreams = make([]token.TokenStream, len(streams))
	for i, toks := range streams {
		ctx.TokenStreams[i] = token.NewSliceStream(toks)
	}

	ctx.Log().Debug("pass.timing", "pass", "lex", "files", len(ctx.Sources), "elapsed", time.Since(start))
	return ctx
}
