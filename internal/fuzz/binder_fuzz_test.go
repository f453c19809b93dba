package fuzztests

import (
	"context"
	"testing"
	"time"
	"unicode/utf8"

	"quill/internal/binder"
	"quill/internal/diag"
	"quill/internal/lexer"
	"quill/internal/source"
	"quill/internal/testkit"
)

// bindTimeout is the maximum time allowed for binding a single input.
// If binding takes longer, it indicates a potential infinite loop.
const bindTimeout = 5 * time.Second

func FuzzBinder(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		if !utf8.Valid(input) {
			t.Skip()
		}

		ctx, cancel := context.WithTimeout(context.Background(), bindTimeout)
		defer cancel()

		done := make(chan binder.Result, 1)
		go func() {
			fs := source.NewFileSet()
			file := fs.Get(fs.AddVirtual("fuzz.ql", input))

			bag := diag.NewBag(128)
			reporter := diag.BagReporter{Bag: bag}
			toks := lexer.Tokenize(file, lexer.Options{Reporter: reporter})
			done <- binder.New(binder.Options{Reporter: reporter, MaxErrors: 128}).Bind(toks)
		}()

		select {
		case res := <-done:
			if err := testkit.CheckBindInvariants(res); err != nil {
				t.Fatalf("bind invariants: %v\ninput: %q", err, truncateForLog(input, 200))
			}
		case <-ctx.Done():
			t.Fatalf("binder hang detected: binding took longer than %v\ninput (%d bytes): %q",
				bindTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
