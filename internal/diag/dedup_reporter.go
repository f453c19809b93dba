package diag

import "quill/internal/source"

// DedupReporter forwards only the first diagnostic with a given code,
// severity, primary span and message. driver.Bind puts it in front of the Bag
// shared by the lexer and the binder.
type DedupReporter struct {
	next    Reporter
	seen    map[reportKey]struct{}
	dropped int
}

type reportKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[reportKey]struct{})}
}

// Dropped returns the number of repeats swallowed so far.
func (r *DedupReporter) Dropped() int {
	if r == nil {
		return 0
	}
	return r.dropped
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r == nil || r.next == nil {
		return
	}
	k := reportKey{code: code, sev: sev, span: primary, msg: msg}
	if _, dup := r.seen[k]; dup {
		r.dropped++
		return
	}
	r.seen[k] = struct{}{}
	r.next.Report(code, sev, primary, msg, notes, fixes)
}
