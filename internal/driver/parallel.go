package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"ssc/internal/diag"
	"ssc/internal/source"
)

// SourceExt is the extension of checked files.
const SourceExt = ".ss"

// ListSourceFiles возвращает отсортированный список всех *.ss файлов в директории.
// exclude получает путь относительно dir; каталоги, попавшие под exclude, пропускаются целиком.
func ListSourceFiles(dir string, exclude func(rel string) bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if exclude != nil && path != dir {
			if rel, relErr := filepath.Rel(dir, path); relErr == nil && exclude(rel) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, filepath.ToSlash(filepath.Clean(path)))
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

// CheckDir checks every *.ss file under dir as an independent module, in
// parallel. Results follow ListSourceFiles order. A file that fails to load
// gets an IO diagnostic instead of aborting the run.
func CheckDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []*CheckResult, error) {
	files, err := ListSourceFiles(dir, opts.Exclude)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// FileSet не потокобезопасен: загружаем всё заранее
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make(map[int]error)
	loadIdx := opts.Timer.Begin("load")
	for i, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[i] = err
			continue
		}
		fileIDs[i] = fileID
	}
	opts.Timer.End(loadIdx, "")

	// Настраиваем параллелизм
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]*CheckResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[i]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{}, "failed to load file: "+loadErr.Error()))
				results[i] = &CheckResult{Path: path, FileSet: fileSet, Bag: bag}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}

			results[i] = CheckLoaded(gctx, fileSet, fileIDs[i], opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
