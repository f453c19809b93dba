package driver

import (
	"context"
	"fmt"
	"strconv"

	"quill/internal/diag"
	"quill/internal/lexer"
	"quill/internal/observ"
	"quill/internal/source"
	"quill/internal/token"
	"quill/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token // значимые токены, последний — EOF
	Bag     *diag.Bag
	Cached  bool // токены взяты из TokenCache
}

// Tokenize loads a single file and lexes it.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	ctx, run := startRun(ctx, "tokenize", path)

	fs := source.NewFileSet()
	load := opts.Timer.Begin(observ.PhaseLoad)
	file, err := loadFile(fs, path)
	load.End("")
	if err != nil {
		run.End("error")
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		run.End("cancelled")
		return nil, err
	}

	pass := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "lex", run.ID())
	bag := diag.NewBag(opts.MaxDiagnostics)
	lex := opts.Timer.Begin(observ.PhaseLex)
	tokens, cached := lexFile(trace.WithSpan(ctx, pass), file, opts.Cache, bag, nil)
	lex.End(cacheNote(cached))
	pass.WithExtra("tokens", strconv.Itoa(len(tokens))).End("")
	run.End("")

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
		Cached:  cached,
	}, nil
}

func cacheNote(cached bool) string {
	if cached {
		return "cached"
	}
	return ""
}

// lexFile lexes one file, going through the cache when one is configured.
// Only streams without diagnostics are stored, so a hit never hides one.
// rep feeds bag; nil means a plain BagReporter.
func lexFile(ctx context.Context, file *source.File, cache *TokenCache, bag *diag.Bag, rep diag.Reporter) ([]token.Token, bool) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeModule, "file:"+file.Path, trace.CurrentSpan(ctx))

	var key Digest
	if cache != nil {
		key = cache.Key(file.Content)
		tokens, ok, err := cache.Get(key, file.ID)
		if err != nil {
			trace.Point(tr, trace.ScopeModule, "cache-error", span.ID(), err.Error())
		}
		if ok {
			span.WithExtra("cache", "hit").End("")
			return tokens, true
		}
	}

	if rep == nil {
		rep = diag.BagReporter{Bag: bag}
	}
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: rep})

	if cache != nil && bag.Len() == 0 {
		if err := cache.Put(key, tokens); err != nil {
			trace.Point(tr, trace.ScopeModule, "cache-error", span.ID(), fmt.Sprintf("put: %v", err))
		}
		span.WithExtra("cache", "miss")
	}
	span.WithExtra("tokens", strconv.Itoa(len(tokens))).End("")
	return tokens, false
}
