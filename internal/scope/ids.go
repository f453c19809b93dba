package scope

// CellID identifies a binding cell inside the stack arena.
type CellID uint32

const (
	// NoCellID marks the absence of a cell reference.
	NoCellID CellID = 0
)

// IsValid reports whether the cell ID refers to an allocated cell.
func (id CellID) IsValid() bool { return id != NoCellID }
