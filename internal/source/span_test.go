package source

import "testing"

func TestSpanBasics(t *testing.T) {
	sp := Span{File: 1, Start: 4, End: 9}
	if sp.Empty() {
		t.Fatalf("span must not be empty")
	}
	if sp.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", sp.Len())
	}
	if sp.String() != "1:4-9" {
		t.Fatalf("String() = %q", sp.String())
	}
	if !sp.Contains(4) || sp.Contains(9) {
		t.Fatalf("Contains must be half-open")
	}
	if !(Span{Start: 3, End: 3}).Empty() {
		t.Fatalf("zero-length span must be empty")
	}
}

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{File: 1, Start: 2, End: 4}, Span{File: 1, Start: 8, End: 10}, Span{File: 1, Start: 2, End: 10}},
		{"nested", Span{File: 1, Start: 0, End: 10}, Span{File: 1, Start: 3, End: 5}, Span{File: 1, Start: 0, End: 10}},
		{"other file", Span{File: 1, Start: 2, End: 4}, Span{File: 2, Start: 0, End: 10}, Span{File: 1, Start: 2, End: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Fatalf("Cover = %v, want %v", got, tt.want)
			}
		})
	}
}
