package binder

import (
	"errors"
	"fmt"
	"slices"

	"quill/internal/diag"
	"quill/internal/scope"
	"quill/internal/token"
	"quill/internal/value"
)

// declSet records, per name, whether the latest declaration attempt in one
// frame failed.
type declSet map[string]bool

// declFailed reports whether name resolves to a declaration that failed: the
// innermost frame that attempted to declare it did not get a value. Such
// names are left unbound, and references to them stay silent because the
// declaration was already reported.
func (b *Binder) declFailed(name string) bool {
	for _, set := range slices.Backward(b.decls) {
		if failed, ok := set[name]; ok {
			return failed
		}
	}
	return false
}

func (b *Binder) markDeclared(name string, failed bool) {
	b.decls[len(b.decls)-1][name] = failed
}

// bindDeclare: var NAME = OPERAND
// Без значения имя не объявляется, а помечается как неудачное объявление.
func (b *Binder) bindDeclare() {
	kw := b.advance() // 'var'

	if !b.at(token.Ident) {
		tok := b.peek()
		sp := tok.Span
		if tok.Kind == token.EOF {
			sp = b.afterLast()
		}
		b.report(diag.BindExpectIdent, diag.SevError, sp,
			fmt.Sprintf("expected variable name after %q, found %s", kw.Text, describe(tok.Kind)))
		return
	}
	name := b.advance()

	if !b.at(token.Assign) {
		b.report(diag.BindMissingInitializer, diag.SevError, name.Span,
			fmt.Sprintf("variable %q is declared without '= value'", name.Text))
		b.markDeclared(name.Text, true)
		return
	}
	b.advance() // '='

	v, ok := b.bindExpr()
	if !ok {
		b.markDeclared(name.Text, true)
		return
	}
	b.stack.Declare(name.Text, v)
	b.markDeclared(name.Text, false)
}

// bindAssignOrRef: NAME = OPERAND, либо выражение, начинающееся с имени
func (b *Binder) bindAssignOrRef() {
	if b.pos+1 >= len(b.toks) || b.toks[b.pos+1].Kind != token.Assign {
		b.bindExpr()
		return
	}

	name := b.advance()
	b.advance() // '='
	v, ok := b.bindExpr()
	if !ok || b.declFailed(name.Text) {
		return
	}
	if err := b.stack.Set(name.Text, v); errors.Is(err, scope.ErrUnknownIdent) {
		b.report(diag.BindUnknownIdent, diag.SevError, name.Span,
			fmt.Sprintf("cannot assign to unknown identifier %q; declare it with 'var' first", name.Text))
	}
}

// bindExpr читает OPERAND и, если за ним идут операторы, пропускает всё
// выражение с предупреждением. ok=false, когда значение получить не удалось.
func (b *Binder) bindExpr() (value.Value, bool) {
	v, ok := b.operand()
	if !ok || !isBinaryOp(b.peek().Kind) {
		return v, ok
	}

	start := b.peek().Span
	for isBinaryOp(b.peek().Kind) {
		b.advance()
		if isOperand(b.peek().Kind) || b.at(token.Invalid) {
			b.advance()
		}
	}
	b.report(diag.BindUnsupportedExpr, diag.SevWarning, start.Cover(b.lastSpan),
		"operator expressions are not evaluated; no value is bound")
	return value.Value{}, false
}

// operand читает литерал или имя. Неизвестное имя репортится; сам токен
// при этом съедается.
func (b *Binder) operand() (value.Value, bool) {
	tok := b.peek()
	if v, ok := literalValue(tok); ok {
		b.advance()
		return v, true
	}

	switch tok.Kind {
	case token.Ident:
		b.advance()
		if b.declFailed(tok.Text) {
			return value.Value{}, false
		}
		v, ok := b.stack.Get(tok.Text)
		if !ok {
			b.report(diag.BindUnknownIdent, diag.SevError, tok.Span,
				fmt.Sprintf("unknown identifier %q", tok.Text))
		}
		return v, ok
	case token.Invalid:
		b.advance()
		return value.Value{}, false
	}

	sp := tok.Span
	if tok.Kind == token.EOF {
		sp = b.afterLast()
	}
	b.report(diag.BindExpectOperand, diag.SevError, sp,
		fmt.Sprintf("expected a literal or a name, found %s", describe(tok.Kind)))
	return value.Value{}, false
}
