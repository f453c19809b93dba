package lexer

import (
	"unicode"

	"quill/internal/token"
)

// collectLeadingTrivia собирает пробелы, переводы строк и // комментарии
// перед следующим значимым токеном в lx.hold.
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		r, _ := lx.peekRune()

		switch {
		case r == '\n':
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			lx.pushTrivia(token.TriviaNewline, start)

		case unicode.IsSpace(r):
			lx.scanSpaces()
			lx.pushTrivia(token.TriviaSpace, start)

		case r == '/':
			b0, b1, ok := lx.cursor.Peek2()
			if !ok || b0 != '/' || b1 != '/' {
				return // одиночный '/' это оператор
			}
			lx.scanLineComment()
			lx.pushTrivia(token.TriviaLineComment, start)

		default:
			return
		}
	}
}

func (lx *Lexer) pushTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{Kind: kind, Span: sp, Text: lx.text(sp)})
}

// scanSpaces поглощает пробельные символы, кроме '\n'.
func (lx *Lexer) scanSpaces() {
	for !lx.cursor.EOF() {
		r, _ := lx.peekRune()
		if r == '\n' || !unicode.IsSpace(r) {
			return
		}
		lx.bumpRune()
	}
}

// scanLineComment поглощает "//" и всё до конца строки включительно с '\n'.
func (lx *Lexer) scanLineComment() {
	lx.cursor.Bump()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		if lx.cursor.Bump() == '\n' {
			return
		}
	}
}
