package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"quill/internal/binder"
	"quill/internal/lexer"
	"quill/internal/source"
)

func bindSource(t *testing.T, input string) binder.Result {
	t.Helper()
	fs := source.NewFileSet()
	toks := lexer.Tokenize(fs.Get(fs.AddVirtual("b.ql", []byte(input))), lexer.Options{})
	return binder.New(binder.Options{}).Bind(toks)
}

func TestFormatBindingsPretty(t *testing.T) {
	res := bindSource(t, "var a = 1\n{ var b = \"x\" a = 2 }\nvar c = true")

	var buf bytes.Buffer
	if err := FormatBindingsPretty(&buf, res, true); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"globals (open frames: 1)\n",
		"  a: int = 2\n",
		"  c: bool = true\n",
		"frame #1 depth=2 owned=[b]\n",
		" *b: text = \"x\"\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestFormatBindingsPrettyEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := FormatBindingsPretty(&buf, bindSource(t, ""), false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "(none)") {
		t.Errorf("expected (none), got:\n%s", buf.String())
	}
}

func TestBindingsOutputJSONAndYAML(t *testing.T) {
	res := bindSource(t, "var x = 1.25\n{ var y = false }")
	out := BuildBindingsOutput("b.ql", res)

	if len(out.Globals) != 1 || out.Globals[0].Kind != "decimal" {
		t.Fatalf("globals = %+v", out.Globals)
	}
	if len(out.Exited) != 1 || out.Exited[0].Depth != 2 {
		t.Fatalf("exited = %+v", out.Exited)
	}

	var jsonBuf bytes.Buffer
	if err := FormatBindingsJSON(&jsonBuf, out); err != nil {
		t.Fatal(err)
	}
	var decoded BindingsOutput
	if err := json.Unmarshal(jsonBuf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Globals[0].Value != 1.25 {
		t.Errorf("x = %v", decoded.Globals[0].Value)
	}

	var yamlBuf bytes.Buffer
	if err := FormatBindingsYAML(&yamlBuf, out); err != nil {
		t.Fatal(err)
	}
	// "y" is a YAML 1.1 boolean, so the encoder quotes it; compare decoded values
	var fromYAML BindingsOutput
	if err := yaml.Unmarshal(yamlBuf.Bytes(), &fromYAML); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, yamlBuf.String())
	}
	if len(fromYAML.Exited) != 1 || len(fromYAML.Exited[0].Bindings) != 2 {
		t.Fatalf("yaml exited = %+v", fromYAML.Exited)
	}
	if b := fromYAML.Exited[0].Bindings[1]; b.Name != "y" || b.Kind != "bool" || b.Value != false || !b.Owned {
		t.Errorf("yaml frame binding = %+v", b)
	}
	if fromYAML.File != "b.ql" || fromYAML.Globals[0].Name != "x" {
		t.Errorf("yaml payload = %+v", fromYAML)
	}
}
