package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"quill/internal/source"
	"quill/internal/token"
)

// SpanOutput is a token span with its resolved start position.
type SpanOutput struct {
	Start uint32 `json:"start" yaml:"start"`
	End   uint32 `json:"end" yaml:"end"`
	Line  uint32 `json:"line" yaml:"line"`
	Col   uint32 `json:"col" yaml:"col"`
}

type TokenOutput struct {
	Kind    string     `json:"kind" yaml:"kind"`
	Text    string     `json:"text,omitempty" yaml:"text,omitempty"`
	Value   any        `json:"value,omitempty" yaml:"value,omitempty"`
	Span    SpanOutput `json:"span" yaml:"span"`
	Leading []string   `json:"leading,omitempty" yaml:"leading,omitempty"`
}

// TokenDump is the serialisable token stream of one file.
type TokenDump struct {
	File   string        `json:"file" yaml:"file"`
	Tokens []TokenOutput `json:"tokens" yaml:"tokens"`
}

// BuildTokenDump converts tokens up to and including the first EOF.
func BuildTokenDump(fs *source.FileSet, id source.FileID, tokens []token.Token, mode PathMode) TokenDump {
	dump := TokenDump{Tokens: make([]TokenOutput, 0, len(tokens))}
	if f := fs.Get(id); f != nil {
		dump.File = formatPath(f, fs, mode)
	}

	for _, tok := range tokens {
		start, _ := fs.Resolve(tok.Span)
		out := TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Value: literalPayload(tok),
			Span: SpanOutput{
				Start: tok.Span.Start,
				End:   tok.Span.End,
				Line:  start.Line,
				Col:   start.Col,
			},
		}
		for _, tv := range tok.Leading {
			out.Leading = append(out.Leading, tv.Kind.String())
		}
		dump.Tokens = append(dump.Tokens, out)

		if tok.Kind == token.EOF {
			break
		}
	}
	return dump
}

func literalPayload(tok token.Token) any {
	switch tok.Kind {
	case token.StringLit:
		return tok.Str
	case token.IntLit:
		return tok.Int
	case token.FloatLit:
		return tok.Dec
	case token.BoolLit:
		return tok.Bool
	default:
		return nil
	}
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		var leading []string
		for _, trivia := range tok.Leading {
			leading = append(leading, trivia.Kind.String())
		}

		if _, err := fmt.Fprintf(w, "%3d: %-10s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		if v := literalPayload(tok); v != nil && tok.Kind != token.BoolLit {
			fmt.Fprintf(w, " = %v", v)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)
		if len(leading) > 0 {
			fmt.Fprintf(w, " (leading: %s)", strings.Join(leading, ", "))
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, dumps []TokenDump) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(dumps)
}

// FormatTokensYAML выводит токены в YAML формате
func FormatTokensYAML(w io.Writer, dumps []TokenDump) error {
	payload, err := yaml.Marshal(dumps)
	if err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	_, err = w.Write(payload)
	return err
}
