package testkit

import (
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"

	"quill/internal/binder"
	"quill/internal/scope"
	"quill/internal/source"
	"quill/internal/token"
)

// CheckTokenInvariants runs the token stream invariants on a lexed file:
// 1) the stream is non-empty and ends with its only EOF
// 2) every span belongs to sf, lies within its content and matches Text
// 3) only EOF may have an empty span
// 4) leading trivia and tokens tile the content without gaps, so joining
// every Token.Source() reproduces it exactly
func CheckTokenInvariants(sf *source.File, toks []token.Token) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if len(toks) == 0 {
		return fmt.Errorf("empty token stream")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var cursor uint32
	check := func(what string, sp source.Span, text string) error {
		if sp.File != sf.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, sf.ID)
		}
		if sp.Start > sp.End || sp.End > lenContent {
			return fmt.Errorf("%s span %v outside content of %d bytes", what, sp, lenContent)
		}
		if sp.Start != cursor {
			return fmt.Errorf("%s span %v does not start at offset %d", what, sp, cursor)
		}
		if got := string(sf.Content[sp.Start:sp.End]); got != text {
			return fmt.Errorf("%s text %q does not match source %q", what, text, got)
		}
		cursor = sp.End
		return nil
	}

	for i, tok := range toks {
		last := i == len(toks)-1
		if tok.Kind == token.EOF && !last {
			return fmt.Errorf("EOF at index %d before end of stream", i)
		}
		if last && tok.Kind != token.EOF {
			return fmt.Errorf("stream ends with %v, want EOF", tok.Kind)
		}
		for j, tv := range tok.Leading {
			if tv.Span.Empty() {
				return fmt.Errorf("token %d: empty trivia %d", i, j)
			}
			if err := check(fmt.Sprintf("token %d trivia %d (%v)", i, j, tv.Kind), tv.Span, tv.Text); err != nil {
				return err
			}
		}
		if tok.Kind != token.EOF && tok.Span.Empty() {
			return fmt.Errorf("token %d (%v) has empty span", i, tok.Kind)
		}
		if err := check(fmt.Sprintf("token %d (%v)", i, tok.Kind), tok.Span, tok.Text); err != nil {
			return err
		}
	}
	if cursor != lenContent {
		return fmt.Errorf("tokens cover %d of %d bytes", cursor, lenContent)
	}
	return nil
}

// Reconstruct joins the source text of every token, trivia included.
func Reconstruct(toks []token.Token) string {
	var b strings.Builder
	for _, tok := range toks {
		b.WriteString(tok.Source())
	}
	return b.String()
}

// CheckBindInvariants checks the shape of a binder result: at least the base
// frame is open, globals are sorted unique names, and every exited frame sat
// above the base and lists its names in order.
func CheckBindInvariants(res binder.Result) error {
	if res.Depth < 1 {
		return fmt.Errorf("depth %d below base frame", res.Depth)
	}
	if err := checkBindings("globals", res.Globals); err != nil {
		return err
	}
	for i, fr := range res.Exited {
		if fr.Depth < 2 {
			return fmt.Errorf("exited frame %d has depth %d", i, fr.Depth)
		}
		if !slices.IsSorted(fr.Owned) {
			return fmt.Errorf("exited frame %d: owned names not sorted: %v", i, fr.Owned)
		}
		if err := checkBindings(fmt.Sprintf("exited frame %d", i), fr.Bindings); err != nil {
			return err
		}
		for _, name := range fr.Owned {
			idx := slices.IndexFunc(fr.Bindings, func(b scope.Binding) bool { return b.Name == name })
			if idx < 0 || !fr.Bindings[idx].Owned {
				return fmt.Errorf("exited frame %d: owned name %q missing from bindings", i, name)
			}
		}
	}
	return nil
}

func checkBindings(what string, bs []scope.Binding) error {
	for i := 1; i < len(bs); i++ {
		if bs[i-1].Name >= bs[i].Name {
			return fmt.Errorf("%s: bindings not sorted unique at %q, %q", what, bs[i-1].Name, bs[i].Name)
		}
	}
	return nil
}
