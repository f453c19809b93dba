package lexer

import (
	"fmt"
	"math"
	"strconv"

	"fortio.org/safecast"

	"quill/internal/diag"
	"quill/internal/token"
)

// scanNumber читает последовательность цифр с не более чем одной точкой.
// Вторая точка не входит в литерал и будет отдельным токеном.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	seenDot := false
	for {
		b := lx.cursor.Peek()
		if isDec(b) {
			lx.cursor.Bump()
			continue
		}
		if b == '.' && !seenDot {
			seenDot = true
			lx.cursor.Bump()
			continue
		}
		break
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	if !seenDot {
		v, err := parseInt32(text)
		if err != nil {
			lx.errLex(diag.LexNumberOverflow, sp, fmt.Sprintf("integer literal %s does not fit in a 32-bit signed integer", text))
			return token.Token{Kind: token.Invalid, Span: sp, Text: text}
		}
		return token.Token{Kind: token.IntLit, Span: sp, Text: text, Int: v}
	}

	v, err := parseFloat32(text)
	if err != nil {
		lx.errLex(diag.LexNumberOverflow, sp, fmt.Sprintf("float literal %s is out of range for a 32-bit float", text))
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.FloatLit, Span: sp, Text: text, Dec: v}
}

func parseInt32(text string) (int32, error) {
	u, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, err
	}
	return safecast.Conv[int32](u)
}

func parseFloat32(text string) (float32, error) {
	f, err := strconv.ParseFloat(text, 32)
	if err != nil {
		return 0, err
	}
	if math.IsInf(f, 0) {
		return 0, strconv.ErrRange
	}
	return float32(f), nil
}
