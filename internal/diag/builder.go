package diag

import (
	"slices"

	"quill/internal/source"
)

// New builds a Diagnostic without a Reporter. Фазы пишут через
// ReportError/ReportWarning; New нужен там, где фазы нет: ошибки загрузки в
// driver и заготовки в тестах.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// WithNote и WithFix возвращают копию; срезы исходного значения не трогаются,
// так что от одной заготовки можно строить несколько вариантов.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(slices.Clip(d.Notes), Note{Span: sp, Msg: msg})
	return d
}

func (d Diagnostic) WithFix(title string, edits ...FixEdit) Diagnostic {
	d.Fixes = append(slices.Clip(d.Fixes), Fix{Title: title, Edits: slices.Clone(edits)})
	return d
}
