package token

import (
	"quill/internal/source"
)

// Token represents a single source token with its location, literal payload and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia

	// декодированное значение литерала; заполнено только для своего Kind
	Str  string  // StringLit
	Int  int32   // IntLit
	Dec  float32 // FloatLit
	Bool bool    // BoolLit
}

// IsLiteral reports whether the token is a numeric, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, BoolLit, StringLit:
		return true
	default:
		return false
	}
}

// IsOperator reports whether the token is an arithmetic, assignment or comparison operator.
func (t Token) IsOperator() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash, Assign, EqEq:
		return true
	default:
		return false
	}
}

// IsDelimiter reports whether the token opens or closes a scope.
func (t Token) IsDelimiter() bool {
	return t.Kind == LBrace || t.Kind == RBrace
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool { return t.Kind == KwVar }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Source returns the token's leading trivia text followed by its own text.
func (t Token) Source() string {
	if len(t.Leading) == 0 {
		return t.Text
	}
	n := len(t.Text)
	for _, tv := range t.Leading {
		n += len(tv.Text)
	}
	buf := make([]byte, 0, n)
	for _, tv := range t.Leading {
		buf = append(buf, tv.Text...)
	}
	buf = append(buf, t.Text...)
	return string(buf)
}
