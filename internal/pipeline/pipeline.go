package pipeline

import "time"

// Pipeline represents a sequence of processing stages.
type Pipeline struct {
	processors []Processor
}

func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes the pipeline. Every stage runs even after errors so one run
// reports both syntax and semantic problems; stages decide for themselves
// whether their input is usable.
func (p *Pipeline) Run(initialCtx *PipelineContext) *PipelineContext {
	start := time.Now()
	ctx := initialCtx
	for _, processor := range p.processors {
		ctx = processor.Process(ctx)
	}
	ctx.Log().Debug("pipeline.done", "files", len(ctx.Sources), "diagnostics", len(ctx.Errors), "elapsed", time.Since(start))
	return ctx
}
