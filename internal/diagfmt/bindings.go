package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"

	"quill/internal/binder"
	"quill/internal/scope"
)

type BindingOutput struct {
	Name  string `json:"name" yaml:"name"`
	Kind  string `json:"kind" yaml:"kind"`
	Value any    `json:"value" yaml:"value"`
	Owned bool   `json:"owned,omitempty" yaml:"owned,omitempty"`
}

type FrameOutput struct {
	Depth    int             `json:"depth" yaml:"depth"`
	Owned    []string        `json:"owned,omitempty" yaml:"owned,omitempty"`
	Bindings []BindingOutput `json:"bindings" yaml:"bindings"`
}

// BindingsOutput is the serialisable result of binding one file.
type BindingsOutput struct {
	File    string          `json:"file" yaml:"file"`
	Depth   int             `json:"depth" yaml:"depth"`
	Globals []BindingOutput `json:"globals" yaml:"globals"`
	Exited  []FrameOutput   `json:"exited,omitempty" yaml:"exited,omitempty"`
}

func BuildBindingsOutput(file string, res binder.Result) BindingsOutput {
	out := BindingsOutput{
		File:    file,
		Depth:   res.Depth,
		Globals: convertBindings(res.Globals),
	}
	for _, fr := range res.Exited {
		out.Exited = append(out.Exited, FrameOutput{
			Depth:    fr.Depth,
			Owned:    fr.Owned,
			Bindings: convertBindings(fr.Bindings),
		})
	}
	return out
}

func convertBindings(in []scope.Binding) []BindingOutput {
	out := make([]BindingOutput, 0, len(in))
	for _, b := range in {
		out = append(out, BindingOutput{
			Name:  b.Name,
			Kind:  b.Value.Kind.String(),
			Value: b.Value.Raw(),
			Owned: b.Owned,
		})
	}
	return out
}

// FormatBindingsPretty печатает глобальные привязки и, если frames, историю закрытых фреймов.
// Привязки, объявленные в самом фрейме, помечаются '*'.
func FormatBindingsPretty(w io.Writer, res binder.Result, frames bool) error {
	if _, err := fmt.Fprintf(w, "globals (open frames: %d)\n", res.Depth); err != nil {
		return err
	}
	writeBindings(w, res.Globals, false)

	if !frames {
		return nil
	}
	for i, fr := range res.Exited {
		fmt.Fprintf(w, "frame #%d depth=%d", i+1, fr.Depth)
		if len(fr.Owned) > 0 {
			fmt.Fprintf(w, " owned=[%s]", strings.Join(fr.Owned, ", "))
		}
		fmt.Fprintln(w)
		writeBindings(w, fr.Bindings, true)
	}
	return nil
}

func writeBindings(w io.Writer, bindings []scope.Binding, markOwned bool) {
	if len(bindings) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, b := range bindings {
		mark := " "
		if markOwned && b.Owned {
			mark = "*"
		}
		fmt.Fprintf(w, " %s%s: %s = %s\n", mark, b.Name, b.Value.Kind, b.Value)
	}
}

func FormatBindingsJSON(w io.Writer, out BindingsOutput) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func FormatBindingsYAML(w io.Writer, out BindingsOutput) error {
	payload, err := yaml.Marshal(out)
	if err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	_, err = w.Write(payload)
	return err
}
