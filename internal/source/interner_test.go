package source

import "testing"

func TestInternerBasic(t *testing.T) {
	interner := NewInterner()

	// NoStringID зарезервирован для пустой строки
	if s, ok := interner.Lookup(NoStringID); !ok || s != "" {
		t.Errorf("NoStringID must map to empty string, got %q, ok=%v", s, ok)
	}

	id1 := interner.Intern("counter")
	if id1 == NoStringID {
		t.Error("Intern must not return NoStringID for non-empty string")
	}
	if id2 := interner.Intern("counter"); id1 != id2 {
		t.Errorf("same string must get same id: %d != %d", id1, id2)
	}
	if s := interner.MustLookup(id1); s != "counter" {
		t.Errorf("Lookup returned %q", s)
	}
	if id3 := interner.Intern("total"); id3 == id1 {
		t.Error("different strings must get different ids")
	}
	if interner.Len() != 3 {
		t.Errorf("Len() = %d, want 3", interner.Len())
	}
}

func TestInternerFindDoesNotInsert(t *testing.T) {
	interner := NewInterner()
	if _, ok := interner.Find("missing"); ok {
		t.Fatalf("Find must not report unknown strings")
	}
	if interner.Len() != 1 {
		t.Fatalf("Find must not intern, Len() = %d", interner.Len())
	}
	id := interner.Intern("x")
	if got, ok := interner.Find("x"); !ok || got != id {
		t.Fatalf("Find(x) = %d, %v", got, ok)
	}
}

func TestInternerInvalidID(t *testing.T) {
	interner := NewInterner()
	if _, ok := interner.Lookup(StringID(42)); ok {
		t.Fatalf("Lookup must fail for unknown id")
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("MustLookup must panic for unknown id")
		}
	}()
	interner.MustLookup(StringID(42))
}

func TestInternerSnapshotIsCopy(t *testing.T) {
	interner := NewInterner()
	interner.Intern("a")
	snap := interner.Snapshot()
	snap[1] = "mutated"
	if interner.MustLookup(1) != "a" {
		t.Fatalf("Snapshot must return a copy")
	}
}
