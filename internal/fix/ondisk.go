package fix

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"fortio.org/safecast"

	"quill/internal/source"
)

// ErrChangedOnDisk is returned when a normalised file no longer matches its
// bytes on disk, so edits cannot be mapped back.
var ErrChangedOnDisk = errors.New("file changed on disk since it was loaded")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// rewrite applies edits to file. Файлы, нормализованные при загрузке (BOM,
// CRLF), правятся поверх байтов с диска: BOM и окончания строк сохраняются.
func rewrite(file *source.File, edits []stagedEdit) ([]byte, error) {
	if file.Flags&(source.FileHadBOM|source.FileNormalizedCRLF) == 0 {
		return applyEdits(file.Content, edits), nil
	}
	raw, offs, err := rawOffsets(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Path, err)
	}
	crlf := file.Flags&source.FileNormalizedCRLF != 0

	mapped := make([]stagedEdit, len(edits))
	for i, e := range edits {
		e.edit.Span.Start = offs[e.edit.Span.Start]
		e.edit.Span.End = offs[e.edit.Span.End]
		if crlf {
			e.edit.NewText = strings.ReplaceAll(e.edit.NewText, "\n", "\r\n")
		}
		mapped[i] = e
	}
	return applyEdits(raw, mapped), nil
}

// rawOffsets re-reads file from disk and maps every offset of the normalised
// content (including the end) to an offset in the raw bytes. "\r\n" maps to
// the position of '\r'.
func rawOffsets(file *source.File) ([]byte, []uint32, error) {
	// #nosec G304 -- path came from FileSet.Load
	raw, err := os.ReadFile(file.Path)
	if err != nil {
		return nil, nil, err
	}
	n, err := safecast.Conv[uint32](len(raw))
	if err != nil {
		return nil, nil, fmt.Errorf("file size overflow: %w", err)
	}

	var i uint32
	if file.Flags&source.FileHadBOM != 0 {
		if !bytes.HasPrefix(raw, utf8BOM) {
			return nil, nil, ErrChangedOnDisk
		}
		i = uint32(len(utf8BOM))
	}
	crlf := file.Flags&source.FileNormalizedCRLF != 0

	offs := make([]uint32, 0, len(file.Content)+1)
	norm := make([]byte, 0, len(file.Content))
	for i < n {
		offs = append(offs, i)
		if crlf && raw[i] == '\r' && i+1 < n && raw[i+1] == '\n' {
			norm = append(norm, '\n')
			i += 2
			continue
		}
		norm = append(norm, raw[i])
		i++
	}
	offs = append(offs, n)

	if !bytes.Equal(norm, file.Content) {
		return nil, nil, ErrChangedOnDisk
	}
	return raw, offs, nil
}
