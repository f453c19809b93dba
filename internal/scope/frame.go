package scope

import (
	"quill/internal/source"
	"quill/internal/value"
)

// frame is one live environment on the stack.
type frame struct {
	vars  map[source.StringID]CellID
	owned map[source.StringID]struct{}
}

func newFrame(capacity int) frame {
	return frame{
		vars:  make(map[source.StringID]CellID, capacity),
		owned: make(map[source.StringID]struct{}),
	}
}

// Binding is a name visible from a frame together with its current value.
type Binding struct {
	Name  string
	Value value.Value
	Owned bool // declared in this frame rather than inherited
}

// Frame is the record of a popped frame: its depth, the names it declared
// and the bindings that were visible when it was exited. Both slices are
// sorted by name.
type Frame struct {
	Depth    int
	Owned    []string
	Bindings []Binding
}
