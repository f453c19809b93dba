package binder

import (
	"fmt"

	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/token"
	"quill/internal/value"
)

// peek возвращает текущий токен; за концом среза ведёт себя как EOF
func (b *Binder) peek() token.Token {
	if b.pos < len(b.toks) {
		return b.toks[b.pos]
	}
	return token.Token{Kind: token.EOF, Span: source.Span{File: b.lastSpan.File, Start: b.lastSpan.End, End: b.lastSpan.End}}
}

func (b *Binder) at(k token.Kind) bool {
	return b.peek().Kind == k
}

// advance съедает текущий токен и обновляет lastSpan
func (b *Binder) advance() token.Token {
	tok := b.peek()
	if b.pos < len(b.toks) && tok.Kind != token.EOF {
		b.pos++
		b.lastSpan = tok.Span
	}
	return tok
}

// afterLast — пустой span сразу за последним съеденным токеном
func (b *Binder) afterLast() source.Span {
	return source.Span{File: b.lastSpan.File, Start: b.lastSpan.End, End: b.lastSpan.End}
}

func (b *Binder) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if b.opts.Reporter == nil {
		return
	}
	if sev == diag.SevError {
		if b.opts.MaxErrors != 0 && b.errors >= b.opts.MaxErrors {
			return
		}
		b.errors++
	}
	b.opts.Reporter.Report(code, sev, sp, msg, nil, nil)
}

func isOperand(k token.Kind) bool {
	switch k {
	case token.Ident, token.IntLit, token.FloatLit, token.StringLit, token.BoolLit:
		return true
	default:
		return false
	}
}

func isBinaryOp(k token.Kind) bool {
	switch k {
	case token.Plus, token.Minus, token.Star, token.Slash, token.EqEq:
		return true
	default:
		return false
	}
}

// literalValue переводит литерал в значение переменной
func literalValue(tok token.Token) (value.Value, bool) {
	switch tok.Kind {
	case token.StringLit:
		return value.MakeText(tok.Str), true
	case token.IntLit:
		return value.MakeInt(tok.Int), true
	case token.FloatLit:
		return value.MakeDecimal(tok.Dec), true
	case token.BoolLit:
		return value.MakeBool(tok.Bool), true
	default:
		return value.Value{}, false
	}
}

func describe(k token.Kind) string {
	switch {
	case k == token.EOF:
		return "end of file"
	case isBinaryOp(k) || k == token.Assign:
		return "operator"
	case k == token.LBrace || k == token.RBrace:
		return "brace"
	default:
		return fmt.Sprintf("token %s", k)
	}
}
