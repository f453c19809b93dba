package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"quill/internal/binder"
	"quill/internal/diag"
	"quill/internal/lexer"
	"quill/internal/source"
)

// overflowAndUnclosed: LEX1003 на строке 1, незакрытые скобка и строка на строке 2.
const overflowAndUnclosed = "var n = 99999999999\n{ var s = \"abc"

// analyze прогоняет лексер и биндер над content и возвращает отсортированный bag.
func analyze(t *testing.T, fs *source.FileSet, path, content string) *diag.Bag {
	t.Helper()
	file := fs.Get(fs.AddVirtual(path, []byte(content)))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	toks := lexer.Tokenize(file, lexer.Options{Reporter: rep})
	binder.New(binder.Options{Reporter: rep}).Bind(toks)
	bag.Sort()
	return bag
}

func renderJSON(t *testing.T, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	t.Helper()
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var output DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &output); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	return output
}

func TestJSONLexerAndBinderDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	bag := analyze(t, fs, "main.ql", overflowAndUnclosed)

	output := renderJSON(t, bag, fs, JSONOpts{
		IncludePositions: true,
		PathMode:         PathModeBasename,
		IncludeNotes:     true,
		IncludeFixes:     true,
	})

	if output.Count != 3 || len(output.Diagnostics) != 3 {
		t.Fatalf("count = %d, diagnostics = %+v", output.Count, output.Diagnostics)
	}

	tests := []struct {
		code      string
		severity  string
		startByte uint32
		endByte   uint32
		line, col uint32
		notes     int
		fixText   string
	}{
		{"LEX1003", "ERROR", 8, 19, 1, 9, 0, ""},
		{"BND2003", "WARNING", 20, 21, 2, 1, 0, "}"},
		{"LEX1002", "WARNING", 30, 31, 2, 11, 1, `"`},
	}
	for i, tt := range tests {
		d := output.Diagnostics[i]
		if d.Code != tt.code || d.Severity != tt.severity {
			t.Errorf("[%d] = %s %s, want %s %s", i, d.Severity, d.Code, tt.severity, tt.code)
			continue
		}
		loc := d.Location
		if loc.File != "main.ql" || loc.StartByte != tt.startByte || loc.EndByte != tt.endByte {
			t.Errorf("%s location = %+v", tt.code, loc)
		}
		if loc.StartLine != tt.line || loc.StartCol != tt.col {
			t.Errorf("%s position = %d:%d, want %d:%d", tt.code, loc.StartLine, loc.StartCol, tt.line, tt.col)
		}
		if len(d.Notes) != tt.notes {
			t.Errorf("%s notes = %+v", tt.code, d.Notes)
		}
		if tt.fixText == "" {
			if len(d.Fixes) != 0 {
				t.Errorf("%s fixes = %+v", tt.code, d.Fixes)
			}
			continue
		}
		if len(d.Fixes) != 1 || len(d.Fixes[0].Edits) != 1 {
			t.Fatalf("%s fixes = %+v", tt.code, d.Fixes)
		}
		edit := d.Fixes[0].Edits[0]
		if edit.NewText != tt.fixText || edit.OldText != "" {
			t.Errorf("%s edit = %+v", tt.code, edit)
		}
		// вставка в конец файла
		if edit.Location.StartByte != 34 || edit.Location.EndByte != 34 || edit.Location.StartLine != 2 || edit.Location.StartCol != 15 {
			t.Errorf("%s edit location = %+v", tt.code, edit.Location)
		}
	}

	lit := output.Diagnostics[2]
	if lit.Notes[0].Message != "string literal runs to end of file" ||
		lit.Notes[0].Location.StartByte != 30 || lit.Notes[0].Location.EndByte != 34 {
		t.Errorf("string note = %+v", lit.Notes[0])
	}
	if lit.Fixes[0].Title != "insert closing quote" {
		t.Errorf("fix title = %q", lit.Fixes[0].Title)
	}
}

func TestJSONFixPreview(t *testing.T) {
	fs := source.NewFileSet()
	bag := analyze(t, fs, "main.ql", overflowAndUnclosed)

	output := renderJSON(t, bag, fs, JSONOpts{
		PathMode:        PathModeBasename,
		IncludeFixes:    true,
		IncludePreviews: true,
	})

	want := map[string]string{
		"BND2003": `{ var s = "abc}`,
		"LEX1002": `{ var s = "abc"`,
	}
	for _, d := range output.Diagnostics {
		after, ok := want[d.Code]
		if !ok {
			continue
		}
		edit := d.Fixes[0].Edits[0]
		if edit.PreviewError != "" {
			t.Fatalf("%s preview error: %s", d.Code, edit.PreviewError)
		}
		if len(edit.BeforeLines) != 1 || edit.BeforeLines[0] != `{ var s = "abc` {
			t.Errorf("%s before = %q", d.Code, edit.BeforeLines)
		}
		if len(edit.AfterLines) != 1 || edit.AfterLines[0] != after {
			t.Errorf("%s after = %q, want %q", d.Code, edit.AfterLines, after)
		}
		delete(want, d.Code)
	}
	if len(want) != 0 {
		t.Fatalf("no preview for %v", want)
	}
}

func TestJSONOptionsTrimOutput(t *testing.T) {
	fs := source.NewFileSet()
	bag := analyze(t, fs, "main.ql", overflowAndUnclosed)

	output := renderJSON(t, bag, fs, JSONOpts{PathMode: PathModeBasename, Max: 2})
	if output.Count != 2 || len(output.Diagnostics) != 2 {
		t.Fatalf("count = %d, want 2", output.Count)
	}
	for _, d := range output.Diagnostics {
		if len(d.Notes) != 0 || len(d.Fixes) != 0 {
			t.Errorf("%s carries notes/fixes without the flags: %+v", d.Code, d)
		}
		// без IncludePositions остаются только байтовые смещения
		if d.Location.StartLine != 0 || d.Location.StartCol != 0 || d.Location.EndByte == 0 {
			t.Errorf("%s location = %+v", d.Code, d.Location)
		}
	}
	if output.Diagnostics[0].Code != "LEX1003" || output.Diagnostics[1].Code != "BND2003" {
		t.Fatalf("codes = %s %s", output.Diagnostics[0].Code, output.Diagnostics[1].Code)
	}
}

func TestJSONPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	bag := analyze(t, fs, "/home/user/project/src/main.ql", "var n = 4294967296")

	tests := []struct {
		name     string
		pathMode PathMode
		expected string
	}{
		{"Absolute", PathModeAbsolute, "/home/user/project/src/main.ql"},
		{"Relative", PathModeRelative, "src/main.ql"},
		{"Basename", PathModeBasename, "main.ql"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := renderJSON(t, bag, fs, JSONOpts{PathMode: tt.pathMode})
			if len(output.Diagnostics) != 1 || output.Diagnostics[0].Code != "LEX1003" {
				t.Fatalf("diagnostics = %+v", output.Diagnostics)
			}
			if got := output.Diagnostics[0].Location.File; got != tt.expected {
				t.Errorf("file = %s, want %s", got, tt.expected)
			}
		})
	}
}
