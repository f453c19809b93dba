package binder

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"quill/internal/diag"
	"quill/internal/scope"
	"quill/internal/source"
	"quill/internal/token"
	"quill/internal/trace"
)

type Options struct {
	Reporter   diag.Reporter // может быть nil
	Tracer     trace.Tracer  // nil → trace.Nop
	ParentSpan uint64        // span, под которым пишутся push/pop события
	MaxErrors  uint          // 0 — без ограничения
}

// Result is what remains after a token stream has been bound.
type Result struct {
	// Globals are the base-frame bindings at end of input, sorted by name.
	Globals []scope.Binding
	// Depth is the number of frames open at end of input, base included.
	Depth int
	// Exited holds a record of every frame that was closed, in pop order.
	// Frames left open at end of input are not included.
	Exited []scope.Frame
}

// Binder — состояние связывания одного потока токенов
type Binder struct {
	opts     Options
	stack    *scope.Stack
	toks     []token.Token
	pos      int
	open     []source.Span // спаны '{', которые ещё не закрыты
	decls    []declSet     // по одному на фрейм стека, base первым
	exited   []scope.Frame
	errors   uint
	lastSpan source.Span
}

func New(opts Options) *Binder {
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	return &Binder{opts: opts}
}

// Bind runs over tokens with a fresh scope stack. tokens is expected to end
// with EOF; a missing EOF is treated as end of input.
func (b *Binder) Bind(tokens []token.Token) Result {
	b.stack = scope.NewStack()
	b.toks = tokens
	b.pos = 0
	b.open = b.open[:0]
	b.decls = append(b.decls[:0], declSet{})
	b.exited = nil
	b.errors = 0

	for !b.at(token.EOF) {
		b.bindStmt()
	}
	depth := b.stack.Depth()
	b.reportUnclosed()

	// незакрытые блоки закрываем молча, чтобы отдать глобальные имена
	for b.stack.Depth() > 1 {
		if _, err := b.stack.Pop(); err != nil {
			break
		}
	}
	return Result{
		Globals: b.stack.Visible(),
		Depth:   depth,
		Exited:  b.exited,
	}
}

func (b *Binder) bindStmt() {
	tok := b.peek()
	switch tok.Kind {
	case token.LBrace:
		b.advance()
		b.enter(tok.Span)
	case token.RBrace:
		b.advance()
		b.leave(tok.Span)
	case token.KwVar:
		b.bindDeclare()
	case token.Ident:
		b.bindAssignOrRef()
	case token.IntLit, token.FloatLit, token.StringLit, token.BoolLit:
		b.bindExpr()
	case token.Invalid:
		// лексер уже сообщил об ошибке
		b.advance()
	default:
		b.advance()
		b.report(diag.BindUnexpectedToken, diag.SevError, tok.Span,
			fmt.Sprintf("unexpected %s %q at start of statement", describe(tok.Kind), tok.Text))
	}
}

func (b *Binder) enter(sp source.Span) {
	b.stack.Push()
	b.open = append(b.open, sp)
	b.decls = append(b.decls, declSet{})
	trace.Point(b.opts.Tracer, trace.ScopeNode, "push", b.opts.ParentSpan,
		fmt.Sprintf("depth=%d at=%d", b.stack.Depth(), sp.Start))
}

func (b *Binder) leave(sp source.Span) {
	frame, err := b.stack.Pop()
	if errors.Is(err, scope.ErrBaseScope) {
		b.report(diag.BindUnbalancedScope, diag.SevError, sp, "'}' has no matching '{'")
		return
	}
	b.open = b.open[:len(b.open)-1]
	b.decls = b.decls[:len(b.decls)-1]
	b.exited = append(b.exited, frame)
	trace.Point(b.opts.Tracer, trace.ScopeNode, "pop", b.opts.ParentSpan,
		fmt.Sprintf("depth=%d owned=%d", frame.Depth, len(frame.Owned)))
}

func (b *Binder) reportUnclosed() {
	if len(b.open) == 0 || b.opts.Reporter == nil {
		return
	}
	last := b.open[len(b.open)-1]
	eof := b.peek().Span
	msg := "scope opened here is not closed before end of file"
	if n := len(b.open); n > 1 {
		msg = fmt.Sprintf("%d scopes are not closed before end of file", n)
	}
	builder := diag.ReportWarning(b.opts.Reporter, diag.BindUnclosedScope, last, msg)
	for _, sp := range slices.Backward(b.open[:len(b.open)-1]) {
		builder.WithNote(sp, "also opened here")
	}
	builder.WithFix("close the open scopes",
		diag.FixEdit{Span: source.Span{File: eof.File, Start: eof.Start, End: eof.Start}, NewText: strings.Repeat("}", len(b.open))}).
		Emit()
}
