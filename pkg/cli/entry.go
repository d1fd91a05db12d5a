package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/funvibe/coolc/internal/analyzer"
	"github.com/funvibe/coolc/internal/archive"
	"github.com/funvibe/coolc/internal/config"
	"github.com/funvibe/coolc/internal/diagnostics"
	"github.com/funvibe/coolc/internal/lexer"
	"github.com/funvibe/coolc/internal/parser"
	"github.com/funvibe/coolc/internal/pipeline"
	"github.com/funvibe/coolc/internal/prettyprinter"
	"github.com/funvibe/coolc/internal/watch"
)

// Exit codes
const (
	ExitOK          = 0
	ExitDiagnostics = 1
	ExitUsage       = 2
)

// options are the resolved settings of one invocation: flags layered over
// the project file.
type options struct {
	configPath  string
	dumpAST     bool
	dumpTypes   bool
	format      bool
	requireMain bool
	color       string
	archivePath string
	history     int
	watch       bool
	verbose     bool
	version     bool

	files []string
}

// isSourceFile checks if a file has a recognized source extension
func isSourceFile(path string) bool {
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("coolc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: coolc [flags] file%s...\n\nFlags:\n", config.SourceFileExt)
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.configPath, "config", "", "project file (default: "+config.ProjectFileName+" when no files are given)")
	fs.BoolVar(&opts.dumpAST, "ast", false, "print the syntax tree")
	fs.BoolVar(&opts.dumpTypes, "types", false, "print the syntax tree annotated with expression types")
	fs.BoolVar(&opts.format, "fmt", false, "print the program as formatted source")
	fs.BoolVar(&opts.requireMain, "require-main", false, "require class Main with method main")
	fs.StringVar(&opts.color, "color", "", "colorize diagnostics: auto, always or never")
	fs.StringVar(&opts.archivePath, "archive", "", "record runs in this SQLite database")
	fs.IntVar(&opts.history, "history", 0, "print the last N archived runs and exit")
	fs.BoolVar(&opts.watch, "watch", false, "re-analyze when a source file changes")
	fs.BoolVar(&opts.verbose, "v", false, "log pass timings")
	fs.BoolVar(&opts.version, "version", false, "print the version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.files = fs.Args()
	return opts, nil
}

// applyProject fills in settings the command line left open from the
// project file, if any.
func (o *options) applyProject() error {
	path := o.configPath
	if path == "" {
		if len(o.files) > 0 {
			return nil
		}
		if _, err := os.Stat(config.ProjectFileName); err != nil {
			return nil
		}
		path = config.ProjectFileName
	}
	project, err := config.Load(path)
	if err != nil {
		return err
	}
	if len(o.files) == 0 {
		o.files = project.SourcePaths()
	}
	o.requireMain = o.requireMain || project.RequireMain
	if o.color == "" {
		o.color = project.Color
	}
	if o.archivePath == "" {
		o.archivePath = project.ArchivePath()
	}
	return nil
}

func (o *options) validate() error {
	switch o.color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("-color: unknown mode %q", o.color)
	}
	if o.history > 0 {
		if o.archivePath == "" {
			return errors.New("-history needs an archive")
		}
		return nil
	}
	if len(o.files) == 0 {
		return errors.New("no source files")
	}
	for _, f := range o.files {
		if !isSourceFile(f) {
			return fmt.Errorf("%s: not a source file (want %s)", f, strings.Join(config.SourceFileExtensions, ", "))
		}
	}
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func colorEnabled(w io.Writer, mode string) bool {
	if f, ok := w.(*os.File); ok {
		return diagnostics.ColorEnabled(f, mode)
	}
	return mode == "always"
}

// readSources reads every file; all of them together form one program.
func readSources(paths []string) ([]pipeline.Source, error) {
	sources := make([]pipeline.Source, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		sources = append(sources, pipeline.Source{Path: path, Text: string(data)})
	}
	return sources, nil
}

// runner holds what stays fixed across the runs of one invocation.
type runner struct {
	opts    *options
	stdout  io.Writer
	stderr  io.Writer
	printer *diagnostics.Printer
	logger  *slog.Logger
	store   *archive.Store
}

// runPipeline analyzes the sources once and prints the requested output.
// It returns the exit code of the run.
func (r *runner) runPipeline(ctx context.Context) (int, error) {
	started := time.Now()
	sources, err := readSources(r.opts.files)
	if err != nil {
		return 0, err
	}

	initialContext := pipeline.NewPipelineContext(sources...)
	initialContext.RequireMain = r.opts.requireMain
	initialContext.Logger = r.logger

	processingPipeline := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
	)
	finalContext := processingPipeline.Run(initialContext)

	if finalContext.Program != nil && !finalContext.HasFrontEndErrors() {
		switch {
		case r.opts.dumpTypes && finalContext.Decorations != nil:
			printer := prettyprinter.NewTreePrinter().WithTypes(finalContext.Decorations.Types)
			finalContext.Program.Accept(printer)
			fmt.Fprint(r.stdout, printer.String())
		case r.opts.dumpAST:
			printer := prettyprinter.NewTreePrinter()
			finalContext.Program.Accept(printer)
			fmt.Fprint(r.stdout, printer.String())
		}
		if r.opts.format {
			fmt.Fprint(r.stdout, prettyprinter.Format(finalContext.Program))
		}
	}

	if err := r.printer.PrintAll(finalContext.Errors); err != nil {
		return 0, fmt.Errorf("writing diagnostics: %w", err)
	}

	if r.store != nil {
		id, err := r.store.Record(ctx, started, r.opts.files, finalContext.Errors)
		if err != nil {
			return 0, err
		}
		r.logger.Debug("archive.recorded", "run", id, "diagnostics", len(finalContext.Errors))
	}

	if len(finalContext.Errors) > 0 {
		return ExitDiagnostics, nil
	}
	return ExitOK, nil
}

// printHistory lists the most recent archived runs with their diagnostics.
func (r *runner) printHistory(ctx context.Context) error {
	runs, err := r.store.Runs(ctx, r.opts.history)
	if err != nil {
		return err
	}
	for _, run := range runs {
		files := strings.ReplaceAll(run.Files, "\n", " ")
		fmt.Fprintf(r.stdout, "%s  %s  %d diagnostic(s)  %s\n",
			run.ID, run.StartedAt.Format(time.RFC3339), run.Diagnostics, files)
		entries, err := r.store.Diagnostics(ctx, run.ID)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintf(r.stdout, "  %s\n", e.Rendered())
		}
	}
	return nil
}

// Run executes the coolc command line and returns the process exit code:
// 0 when the program is clean, 1 when any diagnostic was reported, 2 on
// usage or I/O errors.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}
	if opts.version {
		fmt.Fprintln(stdout, "coolc "+config.Version)
		return ExitOK
	}
	if err := opts.applyProject(); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return ExitUsage
	}
	if err := opts.validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return ExitUsage
	}

	r := &runner{
		opts:    opts,
		stdout:  stdout,
		stderr:  stderr,
		printer: diagnostics.NewPrinter(stderr, colorEnabled(stderr, opts.color)),
		logger:  newLogger(stderr, opts.verbose),
	}

	if opts.archivePath != "" {
		if dir := filepath.Dir(opts.archivePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				fmt.Fprintf(stderr, "Error: %s\n", err)
				return ExitUsage
			}
		}
		store, err := archive.Open(opts.archivePath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", err)
			return ExitUsage
		}
		defer store.Close()
		r.store = store
	}

	if opts.history > 0 {
		if err := r.printHistory(ctx); err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", err)
			return ExitUsage
		}
		return ExitOK
	}

	code, err := r.runPipeline(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return ExitUsage
	}
	if !opts.watch {
		return code
	}
	return r.watchLoop(ctx, code)
}

// watchLoop re-runs the pipeline on every debounced change until ctx is
// cancelled, returning the exit code of the last run.
func (r *runner) watchLoop(ctx context.Context, code int) int {
	w, err := watch.New(r.opts.files...)
	if err != nil {
		fmt.Fprintf(r.stderr, "Error: %s\n", err)
		return ExitUsage
	}
	defer w.Close()
	w.Logger = r.logger

	r.logger.Info("watch.start", "files", len(r.opts.files))
	err = w.Run(ctx, func(ctx context.Context) {
		c, err := r.runPipeline(ctx)
		if err != nil {
			fmt.Fprintf(r.stderr, "Error: %s\n", err)
			return
		}
		code = c
	})
	if err != nil && ctx.Err() == nil {
		fmt.Fprintf(r.stderr, "Error: %s\n", err)
		return ExitUsage
	}
	return code
}
