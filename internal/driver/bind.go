package driver

import (
	"context"
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"quill/internal/binder"
	"quill/internal/diag"
	"quill/internal/observ"
	"quill/internal/source"
	"quill/internal/token"
	"quill/internal/trace"
)

type BindResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bind    binder.Result
	Bag     *diag.Bag
}

// Bind loads a single file, lexes it and binds its statements against a
// fresh scope stack.
func Bind(ctx context.Context, path string, opts Options) (*BindResult, error) {
	ctx, run := startRun(ctx, "bind", path)
	defer run.End("")

	fs := source.NewFileSet()
	load := opts.Timer.Begin(observ.PhaseLoad)
	file, err := loadFile(fs, path)
	load.End("")
	if err != nil {
		return nil, err
	}
	tr := trace.FromContext(ctx)
	bag := diag.NewBag(opts.MaxDiagnostics)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	lexPass := trace.Begin(tr, trace.ScopePass, "lex", run.ID())
	lex := opts.Timer.Begin(observ.PhaseLex)
	tokens, cached := lexFile(trace.WithSpan(ctx, lexPass), file, opts.Cache, bag, rep)
	lex.End(cacheNote(cached))
	lexPass.End("")

	if err = ctx.Err(); err != nil {
		return nil, err
	}

	maxErrors, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
	if err != nil {
		return nil, fmt.Errorf("max diagnostics: %w", err)
	}

	bindPass := trace.Begin(tr, trace.ScopePass, "bind", run.ID())
	bindWatch := opts.Timer.Begin(observ.PhaseBind)
	res := binder.New(binder.Options{
		Reporter:   rep,
		Tracer:     tr,
		ParentSpan: bindPass.ID(),
		MaxErrors:  maxErrors,
	}).Bind(tokens)
	bindWatch.End("")
	bindPass.WithExtra("globals", strconv.Itoa(len(res.Globals))).
		WithExtra("dup-diagnostics", strconv.Itoa(rep.Dropped())).
		End("")

	return &BindResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bind:    res,
		Bag:     bag,
	}, nil
}
