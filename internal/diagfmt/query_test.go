package diagfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestSelectTokens(t *testing.T) {
	_, _, first := lexDump(t, "a.ql", "var x = 1\nvar y = x")
	_, _, second := lexDump(t, "b.ql", "{ var z = \"q\" }")
	dumps := []TokenDump{first, second}

	tests := []struct {
		name string
		expr string
		want []any
	}{
		{
			name: "identifier texts",
			expr: `$[0].tokens[?@.kind == 'Ident'].text`,
			want: []any{"x", "y", "x"},
		},
		{
			name: "files",
			expr: `$[*].file`,
			want: []any{"a.ql", "b.ql"},
		},
		{
			name: "string payloads",
			expr: `$..tokens[?@.kind == 'StringLit'].value`,
			want: []any{"q"},
		},
		{
			name: "no match",
			expr: `$[0].tokens[?@.kind == 'LBrace']`,
			want: []any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectTokens(dumps, tt.expr)
			if err != nil {
				t.Fatalf("SelectTokens: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSelectTokensErrors(t *testing.T) {
	if _, err := SelectTokens(nil, ""); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("empty expression: err = %v", err)
	}
	if _, err := SelectTokens(nil, "$[?"); err == nil {
		t.Error("expected parse error")
	}
}

func TestQueryTokensWritesJSON(t *testing.T) {
	_, _, dump := lexDump(t, "a.ql", "var n = 7")

	var buf bytes.Buffer
	if err := QueryTokens(&buf, []TokenDump{dump}, `$[0].tokens[?@.kind == 'IntLit'].value`); err != nil {
		t.Fatal(err)
	}
	var got []float64
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if len(got) != 1 || got[0] != 7 {
		t.Errorf("got %v", got)
	}
}
