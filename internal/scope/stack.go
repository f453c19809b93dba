package scope

import (
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"quill/internal/source"
	"quill/internal/value"
)

// Stack is a non-empty stack of lexical frames. It is not safe for
// concurrent use.
type Stack struct {
	names  *source.Interner
	cells  *cells
	frames []frame
}

// NewStack creates a stack holding only the base frame.
func NewStack() *Stack {
	return NewStackWithInterner(source.NewInterner())
}

// NewStackWithInterner creates a stack that interns names in the given interner.
func NewStackWithInterner(names *source.Interner) *Stack {
	if names == nil {
		names = source.NewInterner()
	}
	return &Stack{
		names:  names,
		cells:  newCells(0),
		frames: []frame{newFrame(0)},
	}
}

// Depth returns the number of frames, base included.
func (s *Stack) Depth() int { return len(s.frames) }

// LiveCells returns the number of binding cells still referenced by a frame.
func (s *Stack) LiveCells() int { return s.cells.live }

func (s *Stack) top() *frame { return &s.frames[len(s.frames)-1] }

// Push enters a frame that inherits every binding visible from the current one.
func (s *Stack) Push() {
	parent := s.top()
	child := newFrame(len(parent.vars))
	for name, id := range parent.vars {
		child.vars[name] = id
		s.cells.retain(id)
	}
	s.frames = append(s.frames, child)
}

// Pop exits the current frame and returns its record. Bindings it declared
// disappear with it; inherited ones stay with the ancestors that hold them.
func (s *Stack) Pop() (Frame, error) {
	if len(s.frames) == 1 {
		return Frame{}, ErrBaseScope
	}
	rec := s.snapshot()
	top := s.top()
	for _, id := range top.vars {
		s.cells.release(id)
	}
	s.frames = s.frames[:len(s.frames)-1]
	return rec, nil
}

// Declare binds name to a fresh cell holding v in the current frame,
// shadowing any binding of the same name visible so far.
func (s *Stack) Declare(name string, v value.Value) {
	key := s.names.Intern(normalize(name))
	top := s.top()
	if old, ok := top.vars[key]; ok {
		s.cells.release(old)
	}
	top.vars[key] = s.cells.alloc(v)
	top.owned[key] = struct{}{}
}

// Set replaces the value of the binding visible under name. Every frame
// sharing that binding observes the change. The stack is left untouched
// when no such binding exists.
func (s *Stack) Set(name string, v value.Value) error {
	id, ok := s.lookup(name)
	if !ok {
		return &UnknownIdentError{Name: name}
	}
	s.cells.get(id).val = v
	return nil
}

// Get resolves name from the current frame.
func (s *Stack) Get(name string) (value.Value, bool) {
	id, ok := s.lookup(name)
	if !ok {
		return value.Value{}, false
	}
	return s.cells.get(id).val, true
}

// Visible returns the bindings visible from the current frame sorted by name.
func (s *Stack) Visible() []Binding {
	return s.bindings(s.top())
}

func (s *Stack) lookup(name string) (CellID, bool) {
	key, ok := s.names.Find(normalize(name))
	if !ok {
		return NoCellID, false
	}
	id, ok := s.top().vars[key]
	return id, ok
}

func (s *Stack) snapshot() Frame {
	top := s.top()
	rec := Frame{
		Depth:    len(s.frames),
		Owned:    make([]string, 0, len(top.owned)),
		Bindings: s.bindings(top),
	}
	for key := range top.owned {
		rec.Owned = append(rec.Owned, s.names.MustLookup(key))
	}
	slices.Sort(rec.Owned)
	return rec
}

func (s *Stack) bindings(f *frame) []Binding {
	out := make([]Binding, 0, len(f.vars))
	for key, id := range f.vars {
		_, owned := f.owned[key]
		out = append(out, Binding{
			Name:  s.names.MustLookup(key),
			Value: s.cells.get(id).val,
			Owned: owned,
		})
	}
	slices.SortFunc(out, func(a, b Binding) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// normalize приводит имя к NFC, чтобы разные кодировки одной буквы совпадали.
func normalize(name string) string {
	if norm.NFC.IsNormalString(name) {
		return name
	}
	return norm.NFC.String(name)
}
