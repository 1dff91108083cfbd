package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"chearmyp/internal/diag"
	"chearmyp/internal/source"
	"chearmyp/internal/trace"
)

// listFiles возвращает отсортированный список файлов с расширением ext
func listFiles(dir, ext string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// ParseDir парсит все документы в директории параллельно.
// Results are in path order; a file that failed to load gets a result
// with a nil File and an IOLoadFileError diagnostic.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []*ParseResult, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "parse_dir", trace.CurrentSpan(ctx).SpanID).
		WithExtra("dir", dir)
	defer span.End("")
	ctx = trace.WithSpan(ctx, span)

	files, err := listFiles(dir, opts.extension())
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}
	for _, path := range files {
		opts.Progress.emit(ProgressEvent{File: path, Stage: StageQueued, Status: StatusQueued})
	}

	// FileSet не потокобезопасен: загружаем последовательно
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		opts.Progress.emit(ProgressEvent{File: path, Stage: StageLoad, Status: StatusWorking})
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]*ParseResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(&diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
				})
				results[i] = &ParseResult{Path: path, FileSet: fileSet, Bag: bag}
				opts.Progress.emit(ProgressEvent{File: path, Stage: StageLoad, Status: StatusError, Diags: 1})
				return nil
			}

			results[i] = parseLoaded(gctx, fileSet, fileSet.Get(fileIDs[path]), opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
