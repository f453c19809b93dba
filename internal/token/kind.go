package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid marks an unrecognised character or a rejected literal.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// KwVar represents the 'var' keyword.
	KwVar // var

	// StringLit represents a string literal.
	StringLit
	// IntLit represents a 32-bit integer literal.
	IntLit
	// FloatLit represents a 32-bit decimal literal.
	FloatLit
	// BoolLit represents 'true' or 'false'.
	BoolLit

	Plus   // +
	Minus  // -
	Star   // *
	Slash  // /
	Assign // =
	EqEq   // ==

	LBrace // {
	RBrace // }

	kindCount
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	KwVar:     "KwVar",
	StringLit: "StringLit",
	IntLit:    "IntLit",
	FloatLit:  "FloatLit",
	BoolLit:   "BoolLit",
	Plus:      "Plus",
	Minus:     "Minus",
	Star:      "Star",
	Slash:     "Slash",
	Assign:    "Assign",
	EqEq:      "EqEq",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Kinds returns every token kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Invalid; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}
