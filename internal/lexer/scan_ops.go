package lexer

import (
	"fmt"
	"unicode/utf8"

	"quill/internal/diag"
	"quill/internal/token"
)

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	// жадно: сначала двухсимвольные
	if lx.try2('=', '=') {
		return lx.simple(token.EqEq, start)
	}

	r, _ := lx.peekRune()
	lx.bumpRune()
	switch r {
	case '+':
		return lx.simple(token.Plus, start)
	case '-':
		return lx.simple(token.Minus, start)
	case '*':
		return lx.simple(token.Star, start)
	case '/':
		return lx.simple(token.Slash, start)
	case '=':
		return lx.simple(token.Assign, start)
	case '{':
		return lx.simple(token.LBrace, start)
	case '}':
		return lx.simple(token.RBrace, start)
	}

	// неизвестный символ: Invalid ровно на одну руну (или один байт битого UTF-8)
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	msg := fmt.Sprintf("unknown character %q", r)
	if r == utf8.RuneError && sp.Len() == 1 {
		msg = fmt.Sprintf("invalid UTF-8 byte 0x%02X", text[0])
	}
	lx.errLex(diag.LexUnknownChar, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: text}
}

func (lx *Lexer) simple(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
