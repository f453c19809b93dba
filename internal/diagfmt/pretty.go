package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"quill/internal/diag"
	"quill/internal/source"
)

type palette struct {
	err, warn, info func(a ...any) string
	code, path      func(a ...any) string
	gutter, marker  func(a ...any) string
	note, fix       func(a ...any) string
	minus, plus     func(a ...any) string
}

func plain(a ...any) string { return fmt.Sprint(a...) }

func colorFunc(enabled bool, attrs ...color.Attribute) func(a ...any) string {
	if !enabled {
		return plain
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.SprintFunc()
}

func newPalette(enabled bool) palette {
	return palette{
		err:    colorFunc(enabled, color.FgRed, color.Bold),
		warn:   colorFunc(enabled, color.FgYellow, color.Bold),
		info:   colorFunc(enabled, color.FgCyan, color.Bold),
		code:   colorFunc(enabled, color.Bold),
		path:   colorFunc(enabled, color.FgWhite, color.Bold),
		gutter: colorFunc(enabled, color.FgBlue),
		marker: colorFunc(enabled, color.FgGreen, color.Bold),
		note:   colorFunc(enabled, color.FgCyan),
		fix:    colorFunc(enabled, color.FgMagenta),
		minus:  colorFunc(enabled, color.FgRed),
		plus:   colorFunc(enabled, color.FgGreen),
	}
}

func (p palette) severity(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return p.err(sev.String())
	case diag.SevWarning:
		return p.warn(sev.String())
	default:
		return p.info(sev.String())
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
// Отрицательный Context отключает вывод исходника.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.path(position(fs, d.Primary, opts.PathMode)),
		p.severity(d.Severity),
		p.code(d.Code.ID()),
		d.Message)

	if opts.Context >= 0 {
		writeSnippet(w, fs, d.Primary, int(opts.Context), p)
	}

	if opts.ShowNotes {
		for _, note := range d.Notes {
			fmt.Fprintf(w, "  %s %s: %s\n", p.note("note:"), position(fs, note.Span, opts.PathMode), note.Msg)
		}
	}

	if !opts.ShowFixes {
		return
	}
	for i, fix := range d.Fixes {
		fmt.Fprintf(w, "  %s %s\n", p.fix("fix #"+strconv.Itoa(i+1)+":"), fix.Title)
		for _, edit := range fix.Edits {
			fmt.Fprintf(w, "    apply=%s at %s\n", strconv.Quote(edit.NewText), position(fs, edit.Span, opts.PathMode))
			if !opts.ShowPreview {
				continue
			}
			preview, err := buildFixEditPreview(fs, edit)
			if err != nil {
				fmt.Fprintf(w, "    preview unavailable: %v\n", err)
				continue
			}
			fmt.Fprintln(w, "    preview:")
			for _, line := range preview.before {
				fmt.Fprintf(w, "      %s\n", p.minus("- "+line))
			}
			for _, line := range preview.after {
				fmt.Fprintf(w, "      %s\n", p.plus("+ "+line))
			}
		}
	}
}

func position(fs *source.FileSet, span source.Span, mode PathMode) string {
	f := fs.Get(span.File)
	if f == nil {
		return "<unknown>"
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", formatPath(f, fs, mode), start.Line, start.Col)
}

// writeSnippet печатает строку со span и context строк вокруг неё.
func writeSnippet(w io.Writer, fs *source.FileSet, span source.Span, context int, p palette) {
	f := fs.Get(span.File)
	if f == nil || len(f.Content) == 0 {
		return
	}
	start, end := fs.Resolve(span)
	primary := int(start.Line)
	lastLine := len(f.LineIdx) + 1

	from := max(primary-context, 1)
	to := min(primary+context, lastLine)
	width := len(strconv.Itoa(to))
	blank := strings.Repeat(" ", width)

	for ln := from; ln <= to; ln++ {
		line := f.GetLine(uint32(ln)) //nolint:gosec // ln ограничен числом строк файла
		fmt.Fprintf(w, " %*d %s %s\n", width, ln, p.gutter("|"), line)
		if ln != primary {
			continue
		}
		endCol := len(line) + 1
		if end.Line == start.Line {
			endCol = min(int(end.Col), endCol)
		}
		pad, markWidth := underline(line, int(start.Col), endCol)
		marks := "^" + strings.Repeat("~", markWidth-1)
		fmt.Fprintf(w, " %s %s %s%s\n", blank, p.gutter("|"), pad, p.marker(marks))
	}
}

// underline считает отступ до startCol и ширину подчёркивания в колонках терминала.
// Колонки 1-based и байтовые.
func underline(line string, startCol, endCol int) (string, int) {
	startOff := min(max(startCol-1, 0), len(line))
	endOff := min(max(endCol-1, startOff), len(line))

	var pad strings.Builder
	for _, r := range line[:startOff] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return pad.String(), max(runewidth.StringWidth(line[startOff:endOff]), 1)
}
