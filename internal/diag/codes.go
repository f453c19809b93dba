package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexNumberOverflow     Code = 1003

	// Связывание имён (binder)
	BindInfo               Code = 2000
	BindUnknownIdent       Code = 2001
	BindUnbalancedScope    Code = 2002
	BindUnclosedScope      Code = 2003
	BindExpectIdent        Code = 2004
	BindExpectOperand      Code = 2005
	BindUnsupportedExpr    Code = 2006
	BindUnexpectedToken    Code = 2007
	BindMissingInitializer Code = 2008

	IOLoadFileError Code = 4001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:            "Unknown error",
		LexInfo:                "Lexical information",
		LexUnknownChar:         "Unknown character",
		LexUnterminatedString:  "Unterminated string literal",
		LexNumberOverflow:      "Numeric literal out of range",
		BindInfo:               "Binding information",
		BindUnknownIdent:       "Unknown identifier",
		BindUnbalancedScope:    "Closing brace without open scope",
		BindUnclosedScope:      "Scope not closed before end of file",
		BindExpectIdent:        "Expected identifier",
		BindExpectOperand:      "Expected literal or identifier",
		BindUnsupportedExpr:    "Operator expressions are not evaluated",
		BindUnexpectedToken:    "Unexpected token",
		BindMissingInitializer: "Declaration without initializer",
		IOLoadFileError:        "I/O load file error",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("BND%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
