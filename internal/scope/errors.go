package scope

import (
	"errors"
	"fmt"
)

var (
	// ErrBaseScope is returned by Pop when only the base frame remains.
	ErrBaseScope = errors.New("cannot pop the base scope")
	// ErrUnknownIdent matches every *UnknownIdentError.
	ErrUnknownIdent = errors.New("unknown identifier")
)

// UnknownIdentError reports a Set of a name no visible binding has.
type UnknownIdentError struct {
	Name string
}

func (e *UnknownIdentError) Error() string {
	return fmt.Sprintf("unknown identifier %q", e.Name)
}

// Is lets errors.Is(err, ErrUnknownIdent) match.
func (e *UnknownIdentError) Is(target error) bool {
	return target == ErrUnknownIdent
}
