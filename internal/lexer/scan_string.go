package lexer

import (
	"quill/internal/diag"
	"quill/internal/source"
	"quill/internal/token"
)

// scanString читает "..." без escape-последовательностей. Незакрытая строка
// закрывается на конце файла с предупреждением.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '"'
	contentStart := lx.cursor.Off

	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '"' {
			contentEnd := lx.cursor.Off
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{
				Kind: token.StringLit,
				Span: sp,
				Text: lx.text(sp),
				Str:  string(lx.file.Content[contentStart:contentEnd]),
			}
		}
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	lx.warnUnterminated(sp)
	return token.Token{
		Kind: token.StringLit,
		Span: sp,
		Text: lx.text(sp),
		Str:  string(lx.file.Content[contentStart:lx.cursor.Off]),
	}
}

func (lx *Lexer) warnUnterminated(sp source.Span) {
	if lx.opts.Reporter == nil {
		return
	}
	quote := source.Span{File: sp.File, Start: sp.Start, End: sp.Start + 1}
	eof := source.Span{File: sp.File, Start: sp.End, End: sp.End}
	diag.ReportWarning(lx.opts.Reporter, diag.LexUnterminatedString, quote,
		"unterminated string literal; closed at end of input").
		WithNote(sp, "string literal runs to end of file").
		WithFix("insert closing quote", diag.FixEdit{Span: eof, NewText: `"`}).
		Emit()
}
