package lexer

import (
	"iter"
	"unicode/utf8"

	"quill/internal/source"
	"quill/internal/token"
)

// Lexer turns the content of a single source file into tokens. It is a
// single forward pass and is not safe for concurrent use.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий **значимый** токен с уже собранным Leading.
// Хвостовые trivia прикрепляются к EOF; после EOF всегда возвращает пустой EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()

	var tok token.Token
	if lx.cursor.EOF() {
		tok = token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	} else {
		tok = lx.scanToken()
	}

	if len(lx.hold) > 0 {
		tok.Leading = lx.hold
	}
	lx.hold = nil
	return tok
}

func (lx *Lexer) scanToken() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()
	case ch >= utf8.RuneSelf:
		// возможный Unicode идентификатор; остальное уйдёт в Invalid
		if r, _ := lx.peekRune(); isIdentStartRune(r) {
			return lx.scanIdentOrKeyword()
		}
		return lx.scanOperatorOrPunct()
	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All returns the remaining tokens as a lazy sequence ending with EOF.
// The sequence shares the lexer's position and cannot be restarted.
func (lx *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok := lx.Next()
			if !yield(tok) || tok.Kind == token.EOF {
				return
			}
		}
	}
}

// Tokenize scans the whole file and returns its significant tokens, EOF last.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	tokens := make([]token.Token, 0, len(file.Content)/4+1)
	for tok := range lx.All() {
		tokens = append(tokens, tok)
	}
	return tokens
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
