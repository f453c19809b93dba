package scope

import (
	"fmt"

	"fortio.org/safecast"

	"quill/internal/value"
)

type cell struct {
	val  value.Value
	refs uint32
}

// cells stores binding cells in a slice-based arena with reference counts.
// Freed slots are reused through a free list.
type cells struct {
	data []cell
	free []CellID
	live int
}

func newCells(capacity uint32) *cells {
	if capacity == 0 {
		capacity = 32
	}
	return &cells{
		data: make([]cell, 1, capacity+1), // index 0 reserved for NoCellID
	}
}

// alloc creates a cell holding v with a single reference.
func (c *cells) alloc(v value.Value) CellID {
	c.live++
	if n := len(c.free); n > 0 {
		id := c.free[n-1]
		c.free = c.free[:n-1]
		c.data[id] = cell{val: v, refs: 1}
		return id
	}
	n, err := safecast.Conv[uint32](len(c.data))
	if err != nil {
		panic(fmt.Errorf("cells arena overflow: %w", err))
	}
	c.data = append(c.data, cell{val: v, refs: 1})
	return CellID(n)
}

func (c *cells) get(id CellID) *cell {
	if !id.IsValid() || int(id) >= len(c.data) || c.data[id].refs == 0 {
		return nil
	}
	return &c.data[id]
}

func (c *cells) retain(id CellID) {
	if ce := c.get(id); ce != nil {
		ce.refs++
	}
}

// release drops one reference; the slot is recycled when none remain.
func (c *cells) release(id CellID) {
	ce := c.get(id)
	if ce == nil {
		return
	}
	ce.refs--
	if ce.refs == 0 {
		*ce = cell{}
		c.free = append(c.free, id)
		c.live--
	}
}
