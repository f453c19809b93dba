package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"quill/internal/diag"
	"quill/internal/observ"
	"quill/internal/source"
	"quill/internal/token"
	"quill/internal/trace"
)

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path   string        // путь к файлу (как при обходе каталога)
	FileID source.FileID // ID файла в FileSet; при ошибке загрузки — пустой виртуальный файл
	Tokens []token.Token // nil при ошибке загрузки
	Bag    *diag.Bag
	Cached bool
}

// ListSourceFiles returns every *.ql file under dir, sorted.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	slices.Sort(files)
	return files, nil
}

// TokenizeDir tokenizes every *.ql file under dir in parallel. Results come
// back in ListSourceFiles order. A file that cannot be loaded gets an
// IOLoadFileError diagnostic instead of failing the run.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []TokenizeDirResult, error) {
	ctx, run := startRun(ctx, "tokenize-dir", dir)
	defer run.End("")

	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	for _, path := range files {
		opts.emit(Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// FileSet не потокобезопасен, поэтому все файлы загружаем заранее
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		load := opts.Timer.Begin(observ.PhaseLoad)
		file, err := loadFile(fileSet, path)
		load.End("")
		if err != nil {
			// пустой виртуальный файл, чтобы диагностике было куда указывать
			loadErrors[path] = err
			fileIDs[path] = fileSet.AddVirtual(path, nil)
			continue
		}
		fileIDs[path] = file.ID
	}

	pass := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "lex", run.ID()).
		WithExtra("files", strconv.Itoa(len(files)))
	passCtx := trace.WithSpan(ctx, pass)

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]TokenizeDirResult, len(files))

	g, gctx := errgroup.WithContext(passCtx)
	g.SetLimit(opts.jobs(len(files)))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			started := time.Now()
			bag := diag.NewBag(opts.MaxDiagnostics)

			if loadErr, failed := loadErrors[path]; failed {
				id := fileIDs[path]
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: id},
					fmt.Sprintf("failed to load file: %v", loadErr)))
				results[i] = TokenizeDirResult{Path: path, FileID: id, Bag: bag}
				opts.emit(Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr, Elapsed: time.Since(started)})
				return nil
			}

			opts.emit(Event{File: path, Stage: StageLex, Status: StatusWorking})
			file := fileSet.Get(fileIDs[path])
			lex := opts.Timer.Begin(observ.PhaseLex)
			tokens, cached := lexFile(gctx, file, opts.Cache, bag, nil)
			lex.End("")
			results[i] = TokenizeDirResult{
				Path:   path,
				FileID: file.ID,
				Tokens: tokens,
				Bag:    bag,
				Cached: cached,
			}

			status := StatusDone
			if bag.HasErrors() {
				status = StatusError
			}
			opts.emit(Event{File: path, Stage: StageLex, Status: status, Cached: cached, Elapsed: time.Since(started)})
			return nil
		})
	}

	err = g.Wait()
	pass.End("")
	return fileSet, results, err
}
