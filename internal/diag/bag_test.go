package diag

import (
	"slices"
	"testing"

	"quill/internal/source"
)

func TestBagLimit(t *testing.T) {
	bag := NewBag(2)
	for i := 0; i < 3; i++ {
		added := bag.Add(NewError(LexUnknownChar, source.Span{Start: uint32(i), End: uint32(i + 1)}, "x"))
		if want := i < 2; added != want {
			t.Fatalf("Add #%d = %v, want %v", i, added, want)
		}
	}
	if bag.Len() != 2 || !bag.HasErrors() {
		t.Fatalf("expected 2 errors, got %d", bag.Len())
	}
}

func TestBagUnlimited(t *testing.T) {
	bag := NewBag(0)
	for i := 0; i < 100; i++ {
		bag.Add(New(SevInfo, LexInfo, source.Span{}, "info"))
	}
	if bag.Len() != 100 {
		t.Fatalf("unlimited bag dropped diagnostics: %d", bag.Len())
	}
	if bag.HasWarnings() || bag.HasErrors() {
		t.Fatalf("info diagnostics must not count as warnings")
	}
}

func TestBagSortAndDedup(t *testing.T) {
	bag := NewBag(10)
	late := source.Span{File: 0, Start: 10, End: 11}
	early := source.Span{File: 0, Start: 1, End: 2}
	bag.Add(New(SevWarning, LexUnterminatedString, late, "w"))
	bag.Add(NewError(LexUnknownChar, early, "e"))
	bag.Add(NewError(LexUnknownChar, early, "e again"))
	bag.Add(NewError(LexNumberOverflow, late, "overflow"))

	bag.Sort()
	items := bag.Items()
	if items[0].Primary != early || items[2].Severity != SevError || items[3].Severity != SevWarning {
		t.Fatalf("unexpected order: %+v", items)
	}

	bag.Dedup()
	if bag.Len() != 3 {
		t.Fatalf("Dedup() left %d items, want 3", bag.Len())
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(NewError(LexUnknownChar, source.Span{}, "a"))
	b := NewBag(2)
	b.Add(NewError(LexUnknownChar, source.Span{}, "b1"))
	b.Add(NewError(LexUnknownChar, source.Span{}, "b2"))

	a.Merge(b)
	if a.Len() != 3 || a.Cap() != 3 {
		t.Fatalf("Merge: len=%d cap=%d", a.Len(), a.Cap())
	}
	a.Merge(nil)
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(5)
	sp := source.Span{Start: 3, End: 4}
	b := ReportWarning(BagReporter{Bag: bag}, LexUnterminatedString, sp, "unterminated").
		WithNote(source.Span{Start: 0, End: 1}, "opened here").
		WithFix("close string", FixEdit{Span: source.Span{Start: 4, End: 4}, NewText: "\""})
	b.Emit()
	b.Emit()

	if bag.Len() != 1 {
		t.Fatalf("expected single emission, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if len(d.Notes) != 1 || len(d.Fixes) != 1 || d.Fixes[0].Edits[0].NewText != "\"" {
		t.Fatalf("builder lost details: %+v", d)
	}

	var nilBuilder *ReportBuilder
	nilBuilder.WithNote(sp, "x").Emit()
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(10)
	r := NewDedupReporter(BagReporter{Bag: bag})
	sp := source.Span{Start: 1, End: 2}
	r.Report(LexUnknownChar, SevError, sp, "unknown character", nil, nil)
	r.Report(LexUnknownChar, SevError, sp, "unknown character", nil, nil)
	r.Report(LexUnknownChar, SevError, sp, "other message", nil, nil)
	r.Report(LexUnknownChar, SevWarning, sp, "unknown character", nil, nil)
	if bag.Len() != 3 || r.Dropped() != 1 {
		t.Fatalf("got %d diagnostics, %d dropped; want 3 and 1", bag.Len(), r.Dropped())
	}

	var nilReporter *DedupReporter
	nilReporter.Report(LexUnknownChar, SevError, sp, "x", nil, nil)
	if nilReporter.Dropped() != 0 {
		t.Fatal("nil reporter must be inert")
	}
}

func TestWithNoteAndFixCopy(t *testing.T) {
	sp := source.Span{Start: 1, End: 2}
	base := NewError(LexUnknownChar, sp, "x").WithNote(sp, "first")
	base.Notes = slices.Grow(base.Notes, 4)

	a := base.WithNote(sp, "a")
	b := base.WithNote(sp, "b")
	if a.Notes[1].Msg != "a" || b.Notes[1].Msg != "b" || len(base.Notes) != 1 {
		t.Fatalf("notes share storage: a=%v b=%v base=%v", a.Notes, b.Notes, base.Notes)
	}

	edits := []FixEdit{{Span: sp, NewText: "y"}}
	f := base.WithFix("replace", edits...)
	edits[0].NewText = "z"
	if f.Fixes[0].Edits[0].NewText != "y" {
		t.Fatalf("fix edits alias the caller's slice: %+v", f.Fixes[0].Edits)
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		LexUnknownChar:   "LEX1001",
		BindUnknownIdent: "BND2001",
		IOLoadFileError:  "IO4001",
		UnknownCode:      "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if Code(1999).Title() != "Unknown error" {
		t.Errorf("unregistered code must fall back to unknown title")
	}
	if LexUnknownChar.String() != "[LEX1001]: Unknown character" {
		t.Errorf("String() = %q", LexUnknownChar.String())
	}
}
