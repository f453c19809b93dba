package fix

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"sort"

	"quill/internal/diag"
	"quill/internal/source"
)

// ErrNoFixes is returned when no fixes were applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines selection strategy for fixes.
type ApplyMode uint8

const (
	// ApplyModeOnce applies the first fix in application order.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies every fix that does not conflict with an earlier one.
	ApplyModeAll
	// ApplyModeID applies the fix whose identifier equals ApplyOptions.TargetID.
	ApplyModeID
)

// ApplyOptions configures how fixes are selected and written.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	DryRun   bool // не записывать файлы, только вернуть новое содержимое
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID          string
	Title       string
	Code        diag.Code
	Message     string
	PrimaryPath string
	EditCount   int
}

// SkippedFix captures a skipped fix with a reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// FileChange summarises modifications performed on a file.
type FileChange struct {
	Path      string
	EditCount int
	Content   []byte // содержимое после правок
}

// ApplyResult aggregates applied fixes, skipped ones, and file changes.
type ApplyResult struct {
	Applied     []AppliedFix
	Skipped     []SkippedFix
	FileChanges []FileChange
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	id    string
	order int
}

type stagedEdit struct {
	edit diag.FixEdit
	seq  int
}

// Apply collects fixes from diagnostics, selects a subset according to opts,
// and applies them. A fix is all-or-nothing: if any of its edits is out of
// range or overlaps an edit accepted earlier, the whole fix is skipped.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{}
	if fs == nil {
		return result, errors.New("fix: FileSet is nil")
	}

	candidates, skips := gatherCandidates(diagnostics)
	result.Skipped = append(result.Skipped, skips...)
	if len(candidates) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(candidates)
	switch opts.Mode {
	case ApplyModeOnce:
		candidates = candidates[:1]
	case ApplyModeID:
		idx := slices.IndexFunc(candidates, func(c candidate) bool { return c.id == opts.TargetID })
		if idx < 0 {
			return result, fmt.Errorf("%w: no fix with id %q", ErrNoFixes, opts.TargetID)
		}
		candidates = candidates[idx : idx+1]
	}

	staged := make(map[source.FileID][]stagedEdit)
	seq := 0
	for _, cand := range candidates {
		if reason := checkCandidate(fs, staged, cand); reason != "" {
			result.Skipped = append(result.Skipped, SkippedFix{ID: cand.id, Title: cand.fix.Title, Reason: reason})
			continue
		}
		for _, edit := range cand.fix.Edits {
			staged[edit.Span.File] = append(staged[edit.Span.File], stagedEdit{edit: edit, seq: seq})
			seq++
		}
		result.Applied = append(result.Applied, AppliedFix{
			ID:          cand.id,
			Title:       cand.fix.Title,
			Code:        cand.diag.Code,
			Message:     cand.diag.Message,
			PrimaryPath: formatFilePath(fs, cand.diag.Primary.File),
			EditCount:   len(cand.fix.Edits),
		})
	}
	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	ids := make([]source.FileID, 0, len(staged))
	for id := range staged {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		file := fs.Get(id)
		content, err := rewrite(file, staged[id])
		if err != nil {
			return result, err
		}
		if !opts.DryRun {
			mode := os.FileMode(0o644)
			if info, err := os.Stat(file.Path); err == nil {
				mode = info.Mode()
			}
			if err := os.WriteFile(file.Path, content, mode); err != nil {
				return result, fmt.Errorf("write %s: %w", file.Path, err)
			}
		}
		result.FileChanges = append(result.FileChanges, FileChange{
			Path:      file.FormatPath("relative", fs.BaseDir()),
			EditCount: len(staged[id]),
			Content:   content,
		})
	}
	return result, nil
}

// gatherCandidates flattens diagnostics into fix candidates. Fixes without
// edits are skipped; missing IDs are synthesised from code and position.
func gatherCandidates(diagnostics []diag.Diagnostic) ([]candidate, []SkippedFix) {
	var (
		cands []candidate
		skips []SkippedFix
		seen  = make(map[string]struct{})
	)
	order := 0
	for _, d := range diagnostics {
		for idx, f := range d.Fixes {
			id := fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), d.Primary.File, d.Primary.Start, idx)
			if len(f.Edits) == 0 {
				skips = append(skips, SkippedFix{ID: id, Title: f.Title, Reason: "fix has no edits"})
				continue
			}
			if _, dup := seen[id]; dup {
				skips = append(skips, SkippedFix{ID: id, Title: f.Title, Reason: "duplicate fix id"})
				continue
			}
			seen[id] = struct{}{}
			cands = append(cands, candidate{diag: d, fix: f, id: id, order: order})
			order++
		}
	}
	return cands, skips
}

// sortCandidates orders candidates by file, then by diagnostic code so that
// lexer fixes precede binder fixes, then by primary position. Binder fixes
// assume the lexer ones are already in place: a closing quote must land
// before the closing braces inserted at the same offset.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		ci, cj := candidates[i], candidates[j]
		di, dj := ci.diag.Primary, cj.diag.Primary
		if di.File != dj.File {
			return di.File < dj.File
		}
		if ci.diag.Code != cj.diag.Code {
			return ci.diag.Code < cj.diag.Code
		}
		if di.Start != dj.Start {
			return di.Start < dj.Start
		}
		if di.End != dj.End {
			return di.End < dj.End
		}
		return ci.order < cj.order
	})
}

func checkCandidate(fs *source.FileSet, staged map[source.FileID][]stagedEdit, cand candidate) string {
	for i, edit := range cand.fix.Edits {
		file := fs.Get(edit.Span.File)
		if file == nil {
			return "target file not found"
		}
		if file.Flags&source.FileVirtual != 0 {
			return "target file is virtual"
		}
		if edit.Span.Start > edit.Span.End || int(edit.Span.End) > len(file.Content) {
			return "edit span out of range"
		}
		for _, prev := range staged[edit.Span.File] {
			if spansConflict(prev.edit.Span, edit.Span) {
				return "conflicts with previously applied edits in " + file.FormatPath("auto", fs.BaseDir())
			}
		}
		for _, other := range cand.fix.Edits[:i] {
			if other.Span.File == edit.Span.File && spansConflict(other.Span, edit.Span) {
				return "fix has overlapping edits"
			}
		}
	}
	return ""
}

// spansConflict reports whether two edit spans overlap.
// Spans are half-open intervals [Start, End). Two zero-length edits never
// conflict; a zero-length edit conflicts with a span containing its position.
func spansConflict(a, b source.Span) bool {
	switch {
	case a.Start == a.End && b.Start == b.End:
		return false
	case a.Start == a.End:
		return b.Start <= a.Start && a.Start < b.End
	case b.Start == b.End:
		return a.Start <= b.Start && b.Start < a.End
	default:
		return a.Start < b.End && b.Start < a.End
	}
}

// applyEdits builds the new content in one pass. Insertions at the same
// offset keep the order in which they were accepted.
func applyEdits(content []byte, edits []stagedEdit) []byte {
	sorted := append([]stagedEdit(nil), edits...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].edit.Span, sorted[j].edit.Span
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return sorted[i].seq < sorted[j].seq
	})

	out := make([]byte, 0, len(content))
	cursor := uint32(0)
	for _, e := range sorted {
		out = append(out, content[cursor:e.edit.Span.Start]...)
		out = append(out, e.edit.NewText...)
		cursor = e.edit.Span.End
	}
	return append(out, content[cursor:]...)
}

func formatFilePath(fs *source.FileSet, fileID source.FileID) string {
	file := fs.Get(fileID)
	if file == nil {
		return ""
	}
	return file.FormatPath("auto", fs.BaseDir())
}
