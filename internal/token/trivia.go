package token

import "quill/internal/source"

type TriviaKind uint8

const (
	TriviaSpace       TriviaKind = iota // пробельные символы кроме '\n'
	TriviaNewline                       // подряд идущие '\n'
	TriviaLineComment                   // "//" до '\n' включительно
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaLineComment:
		return "LineComment"
	default:
		return "Trivia(?)"
	}
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
