package token_test

import (
	"strings"
	"testing"

	"quill/internal/source"
	"quill/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{token.IntLit, token.FloatLit, token.BoolLit, token.StringLit}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwVar, token.Plus, token.LBrace, token.Invalid}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestOperatorsAndDelimiters(t *testing.T) {
	ops := []token.Kind{token.Plus, token.Minus, token.Star, token.Slash, token.Assign, token.EqEq}
	for _, k := range ops {
		if !tok(k).IsOperator() || tok(k).IsDelimiter() {
			t.Fatalf("%v should be operator only", k)
		}
	}
	for _, k := range []token.Kind{token.LBrace, token.RBrace} {
		if !tok(k).IsDelimiter() || tok(k).IsOperator() {
			t.Fatalf("%v should be delimiter only", k)
		}
	}
}

func TestIsIdentAndKeyword(t *testing.T) {
	if !tok(token.Ident).IsIdent() {
		t.Fatalf("Ident should be ident")
	}
	if tok(token.KwVar).IsIdent() || !tok(token.KwVar).IsKeyword() {
		t.Fatalf("KwVar must be keyword, not ident")
	}
}

func TestKindStringsAreUnique(t *testing.T) {
	seen := make(map[string]token.Kind)
	for _, k := range token.Kinds() {
		name := k.String()
		if name == "" || strings.Contains(name, "?") {
			t.Fatalf("kind %d has no name", k)
		}
		if prev, ok := seen[name]; ok {
			t.Fatalf("kinds %d and %d share name %q", prev, k, name)
		}
		seen[name] = k
	}
	if got := token.Kind(250).String(); got != "Kind(?)" {
		t.Fatalf("out of range kind = %q", got)
	}
}

func TestTokenSourceJoinsTrivia(t *testing.T) {
	tk := token.Token{
		Kind: token.Ident,
		Text: "x",
		Leading: []token.Trivia{
			{Kind: token.TriviaLineComment, Text: "// hi\n"},
			{Kind: token.TriviaSpace, Text: "  "},
		},
	}
	if got := tk.Source(); got != "// hi\n  x" {
		t.Fatalf("Source() = %q", got)
	}
}
