package diag

import (
	"testing"

	"quill/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSetWithBase("/workspace")
	file := fs.Add("/workspace/scripts/sample.ql", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     BindUnclosedScope,
			Message:  "another",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     LexUnknownChar,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 2, End: 3}, Msg: "note line"},
				{Span: source.Span{File: 99}, Msg: "dangling"},
			},
		},
	}

	expected := "error LEX1001 scripts/sample.ql:1:1 first line second\n" +
		"note LEX1001 scripts/sample.ql:2:1 note line\n" +
		"warning BND2003 scripts/sample.ql:2:1 another"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}

	withoutNotes := "error LEX1001 scripts/sample.ql:1:1 first line second\n" +
		"warning BND2003 scripts/sample.ql:2:1 another"
	if got := FormatShortDiagnostics(diags, fs, false); got != withoutNotes {
		t.Fatalf("unexpected diagnostics without notes:\n%s", got)
	}
}

func TestFormatShortDiagnosticsEmpty(t *testing.T) {
	if got := FormatShortDiagnostics(nil, source.NewFileSet(), true); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
