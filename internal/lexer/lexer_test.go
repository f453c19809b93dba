package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"quill/internal/diag"
	"quill/internal/lexer"
	"quill/internal/source"
	"quill/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

// Report реализует интерфейс diag.Reporter
func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
		Fixes:    fixes,
	})
}

func (r *testReporter) count(sev diag.Severity) int {
	n := 0
	for _, d := range r.diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

func (r *testReporter) messages() []string {
	out := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return out
}

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ql", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	return lexer.New(file, lexer.Options{Reporter: reporter}), reporter
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for tok := range lx.All() {
		tokens = append(tokens, tok)
	}
	return tokens
}

type expectedToken struct {
	kind token.Kind
	text string
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		parts = append(parts, fmt.Sprintf("%s(%q)", tok.Kind, tok.Text))
	}
	return strings.Join(parts, " ")
}

func expectTokens(t *testing.T, input string, expected []expectedToken) []token.Token {
	t.Helper()
	lx, rep := makeTestLexer(input)
	tokens := collectAllTokens(lx)

	// последний токен всегда EOF
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		t.Fatalf("token stream for %q does not end with EOF: %s", input, tokensToString(tokens))
	}
	tokens = tokens[:len(tokens)-1]

	if len(tokens) != len(expected) {
		t.Fatalf("input %q: got %d tokens, want %d\n got: %s\n diags: %v",
			input, len(tokens), len(expected), tokensToString(tokens), rep.messages())
	}
	for i, want := range expected {
		if tokens[i].Kind != want.kind || tokens[i].Text != want.text {
			t.Fatalf("input %q: token %d = %s(%q), want %s(%q)",
				input, i, tokens[i].Kind, tokens[i].Text, want.kind, want.text)
		}
	}
	return tokens
}

func TestLexerStatements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []expectedToken
	}{
		{"declaration", "var x = 5", []expectedToken{
			{token.KwVar, "var"}, {token.Ident, "x"}, {token.Assign, "="}, {token.IntLit, "5"},
		}},
		{"equality", "x == y", []expectedToken{
			{token.Ident, "x"}, {token.EqEq, "=="}, {token.Ident, "y"},
		}},
		{"greedy equals", "===", []expectedToken{
			{token.EqEq, "=="}, {token.Assign, "="},
		}},
		{"arithmetic", "a+b-c*d/e", []expectedToken{
			{token.Ident, "a"}, {token.Plus, "+"}, {token.Ident, "b"}, {token.Minus, "-"},
			{token.Ident, "c"}, {token.Star, "*"}, {token.Ident, "d"}, {token.Slash, "/"},
			{token.Ident, "e"},
		}},
		{"block", "{ var x = 1 }", []expectedToken{
			{token.LBrace, "{"}, {token.KwVar, "var"}, {token.Ident, "x"},
			{token.Assign, "="}, {token.IntLit, "1"}, {token.RBrace, "}"},
		}},
		{"booleans", "true false", []expectedToken{
			{token.BoolLit, "true"}, {token.BoolLit, "false"},
		}},
		{"keyword prefix is identifier", "variable", []expectedToken{
			{token.Ident, "variable"},
		}},
		{"dollar only starts identifiers", "a$b $c_1", []expectedToken{
			{token.Ident, "a"}, {token.Ident, "$b"}, {token.Ident, "$c_1"},
		}},
		{"unicode identifier", "ключ = 1", []expectedToken{
			{token.Ident, "ключ"}, {token.Assign, "="}, {token.IntLit, "1"},
		}},
		{"letter number starts identifier", "Ⅻ", []expectedToken{
			{token.Ident, "Ⅻ"},
		}},
		{"combining mark ends identifier", "x\u0301", []expectedToken{
			{token.Ident, "x"}, {token.Invalid, "\u0301"},
		}},
		{"digits continue identifier", "x1²", []expectedToken{
			{token.Ident, "x1²"},
		}},
		{"spaced assigns", "= =", []expectedToken{
			{token.Assign, "="}, {token.Assign, "="},
		}},
		{"second dot splits number", "3.14.5", []expectedToken{
			{token.FloatLit, "3.14"}, {token.Invalid, "."}, {token.IntLit, "5"},
		}},
		{"trailing dot", "1.", []expectedToken{
			{token.FloatLit, "1."},
		}},
		{"empty input", "", nil},
		{"only trivia", "  // nothing\n\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectTokens(t, tt.input, tt.want)
		})
	}
}

func TestLexerCommentsAreSkipped(t *testing.T) {
	withComment := expectTokens(t, "// comment\nvar x = 1", []expectedToken{
		{token.KwVar, "var"}, {token.Ident, "x"}, {token.Assign, "="}, {token.IntLit, "1"},
	})
	if got := withComment[0].Leading; len(got) != 1 || got[0].Kind != token.TriviaLineComment || got[0].Text != "// comment\n" {
		t.Fatalf("leading trivia of 'var' = %+v", got)
	}

	expectTokens(t, "x // tail comment", []expectedToken{{token.Ident, "x"}})
}

func TestLexerLiteralPayloads(t *testing.T) {
	toks := expectTokens(t, `"hello" 42 3.14 true 0.5`, []expectedToken{
		{token.StringLit, `"hello"`}, {token.IntLit, "42"}, {token.FloatLit, "3.14"},
		{token.BoolLit, "true"}, {token.FloatLit, "0.5"},
	})
	if toks[0].Str != "hello" {
		t.Errorf("string payload = %q, want hello", toks[0].Str)
	}
	if toks[1].Int != 42 {
		t.Errorf("int payload = %d, want 42", toks[1].Int)
	}
	if toks[2].Dec != float32(3.14) {
		t.Errorf("float payload = %v, want 3.14", toks[2].Dec)
	}
	if !toks[3].Bool {
		t.Error("bool payload must be true")
	}
	if toks[4].Dec != 0.5 {
		t.Errorf("float payload = %v, want 0.5", toks[4].Dec)
	}
}

func TestLexerStringKeepsContentVerbatim(t *testing.T) {
	toks := expectTokens(t, `"a // b\n{"`, []expectedToken{{token.StringLit, `"a // b\n{"`}})
	if toks[0].Str != `a // b\n{` {
		t.Fatalf("Str = %q", toks[0].Str)
	}
	toks = expectTokens(t, `""`, []expectedToken{{token.StringLit, `""`}})
	if toks[0].Str != "" {
		t.Fatalf("empty string payload = %q", toks[0].Str)
	}
}

func TestLexerIntegerRange(t *testing.T) {
	lx, rep := makeTestLexer("2147483647")
	toks := collectAllTokens(lx)
	if toks[0].Kind != token.IntLit || toks[0].Int != 2147483647 {
		t.Fatalf("max int32 = %s %d", toks[0].Kind, toks[0].Int)
	}
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.messages())
	}

	for _, input := range []string{"2147483648", "99999999999999999999999"} {
		lx, rep = makeTestLexer(input)
		toks = collectAllTokens(lx)
		if toks[0].Kind != token.Invalid || toks[0].Text != input {
			t.Fatalf("%s: got %s(%q), want Invalid", input, toks[0].Kind, toks[0].Text)
		}
		if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexNumberOverflow {
			t.Fatalf("%s: diagnostics %v", input, rep.messages())
		}
	}
}

func TestLexerFloatOverflow(t *testing.T) {
	input := "1" + strings.Repeat("0", 40) + ".0"
	lx, rep := makeTestLexer(input)
	toks := collectAllTokens(lx)
	if toks[0].Kind != token.Invalid {
		t.Fatalf("got %s, want Invalid", toks[0].Kind)
	}
	if rep.count(diag.SevError) != 1 || rep.diagnostics[0].Code != diag.LexNumberOverflow {
		t.Fatalf("diagnostics %v", rep.messages())
	}
}

func TestLexerUnknownCharacter(t *testing.T) {
	lx, rep := makeTestLexer("x @ y")
	toks := collectAllTokens(lx)
	if got := tokensToString(toks); got != `Ident("x") Invalid("@") Ident("y") EOF("")` {
		t.Fatalf("tokens = %s", got)
	}
	if len(rep.diagnostics) != 1 {
		t.Fatalf("diagnostics %v", rep.messages())
	}
	d := rep.diagnostics[0]
	if d.Code != diag.LexUnknownChar || d.Severity != diag.SevError {
		t.Fatalf("diagnostic = %s %s", d.Code.ID(), d.Severity)
	}
	if d.Primary.Start != 2 || d.Primary.End != 3 {
		t.Fatalf("primary span = %d-%d, want 2-3", d.Primary.Start, d.Primary.End)
	}
}

func TestLexerInvalidUTF8(t *testing.T) {
	lx, rep := makeTestLexer("a\xffb")
	toks := collectAllTokens(lx)
	if len(toks) != 4 || toks[1].Kind != token.Invalid || toks[1].Span.Len() != 1 {
		t.Fatalf("tokens = %s", tokensToString(toks))
	}
	if len(rep.diagnostics) != 1 || !strings.Contains(rep.diagnostics[0].Message, "0xFF") {
		t.Fatalf("diagnostics %v", rep.messages())
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	lx, rep := makeTestLexer(`x = "abc`)
	toks := collectAllTokens(lx)
	str := toks[2]
	if str.Kind != token.StringLit || str.Str != "abc" || str.Text != `"abc` {
		t.Fatalf("string token = %s(%q) payload %q", str.Kind, str.Text, str.Str)
	}
	if rep.count(diag.SevError) != 0 || rep.count(diag.SevWarning) != 1 {
		t.Fatalf("diagnostics %v", rep.messages())
	}

	d := rep.diagnostics[0]
	if d.Code != diag.LexUnterminatedString {
		t.Fatalf("code = %s", d.Code.ID())
	}
	if d.Primary.Start != 4 || d.Primary.End != 5 {
		t.Fatalf("primary span = %d-%d, want opening quote 4-5", d.Primary.Start, d.Primary.End)
	}
	if len(d.Fixes) != 1 || len(d.Fixes[0].Edits) != 1 {
		t.Fatalf("fixes = %+v", d.Fixes)
	}
	edit := d.Fixes[0].Edits[0]
	if edit.NewText != `"` || edit.Span.Start != 8 || !edit.Span.Empty() {
		t.Fatalf("fix edit = %+v", edit)
	}
}

func TestLexerTriviaKinds(t *testing.T) {
	lx, _ := makeTestLexer("  \n\n// c\n\tx")
	tok := lx.Next()
	want := []struct {
		kind token.TriviaKind
		text string
	}{
		{token.TriviaSpace, "  "},
		{token.TriviaNewline, "\n\n"},
		{token.TriviaLineComment, "// c\n"},
		{token.TriviaSpace, "\t"},
	}
	if len(tok.Leading) != len(want) {
		t.Fatalf("leading = %+v", tok.Leading)
	}
	for i, w := range want {
		if tok.Leading[i].Kind != w.kind || tok.Leading[i].Text != w.text {
			t.Fatalf("trivia %d = %s(%q), want %s(%q)", i, tok.Leading[i].Kind, tok.Leading[i].Text, w.kind, w.text)
		}
	}
}

func TestLexerSpans(t *testing.T) {
	lx, _ := makeTestLexer("var  xy")
	lx.Next()
	tok := lx.Next()
	if tok.Span.Start != 5 || tok.Span.End != 7 {
		t.Fatalf("span = %d-%d, want 5-7", tok.Span.Start, tok.Span.End)
	}
	eof := lx.Next()
	if eof.Kind != token.EOF || !eof.Span.Empty() || eof.Span.Start != 7 {
		t.Fatalf("eof = %s %d-%d", eof.Kind, eof.Span.Start, eof.Span.End)
	}
}

func TestLexerPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("Peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("Next after Peek = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("second Next = %q", n.Text)
	}
}

func TestLexerEOFIsSticky(t *testing.T) {
	lx, _ := makeTestLexer("x ")
	lx.Next()
	first := lx.Next()
	if first.Kind != token.EOF || len(first.Leading) != 1 {
		t.Fatalf("first EOF = %s leading %d", first.Kind, len(first.Leading))
	}
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.EOF || len(tok.Leading) != 0 {
			t.Fatalf("repeated EOF = %s leading %d", tok.Kind, len(tok.Leading))
		}
	}
}

func TestLexerAllStopsEarly(t *testing.T) {
	lx, _ := makeTestLexer("a b c")
	n := 0
	for range lx.All() {
		n++
		if n == 2 {
			break
		}
	}
	if rest := lx.Next(); rest.Text != "c" {
		t.Fatalf("after early break Next = %q, want c", rest.Text)
	}
}

func TestTokenize(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.ql", []byte("var a = 1\n")))
	toks := lexer.Tokenize(file, lexer.Options{})
	if len(toks) != 5 || toks[4].Kind != token.EOF {
		t.Fatalf("Tokenize = %s", tokensToString(toks))
	}
}

func reconstruct(tokens []token.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Source())
	}
	return sb.String()
}

var reconstructSeeds = []string{
	"",
	"var x = 5",
	"// only a comment",
	"{ var a = \"s\" }\n\n  a = a + 1 // bump\n",
	"3.14.5 == 2147483648",
	"\"unterminated\n",
	"x @ # \xff\xfe y",
	"  ключ\r\t",
}

func TestLexerReconstructsSource(t *testing.T) {
	for _, input := range reconstructSeeds {
		lx, _ := makeTestLexer(input)
		if got := reconstruct(collectAllTokens(lx)); got != input {
			t.Fatalf("reconstruct(%q) = %q", input, got)
		}
	}
}

func FuzzLexerReconstructsSource(f *testing.F) {
	for _, seed := range reconstructSeeds {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, input string) {
		lx, _ := makeTestLexer(input)
		tokens := collectAllTokens(lx)
		if got := reconstruct(tokens); got != input {
			t.Fatalf("reconstruct(%q) = %q", input, got)
		}
		for _, tok := range tokens {
			if tok.Kind != token.EOF && tok.Span.Empty() {
				t.Fatalf("empty span for %s in %q", tok.Kind, input)
			}
		}
	})
}
