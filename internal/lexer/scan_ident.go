package lexer

import (
	"quill/internal/token"
)

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.bumpRune() // первый символ уже проверен вызывающим

	for !lx.cursor.EOF() {
		r, _ := lx.peekRune()
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	tok := token.Token{Kind: token.Ident, Span: sp, Text: text}
	if k, ok := token.LookupKeyword(text); ok {
		tok.Kind = k
		if k == token.BoolLit {
			tok.Bool = text == "true"
		}
	}
	return tok
}
