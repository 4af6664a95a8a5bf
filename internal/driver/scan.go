package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"clint/internal/diag"
	"clint/internal/rules"
	"clint/internal/source"
)

// Options configures a scan or fix run.
type Options struct {
	// MaxDiagnostics ограничивает размер Bag на файл.
	MaxDiagnostics int
	// Jobs — число параллельных воркеров; <=0 означает GOMAXPROCS.
	Jobs int
	// Progress, если задан, получает события по ходу работы.
	Progress ProgressSink
}

// FileResult содержит результат проверки одного файла.
type FileResult struct {
	Path   string        // путь, как он был найден
	FileID source.FileID // ID файла в FileSet
	Bag    *diag.Bag     // диагностики файла
}

const defaultMaxDiagnostics = 100

func (o *Options) maxDiagnostics() int {
	if o == nil || o.MaxDiagnostics <= 0 {
		return defaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

func (o *Options) jobs() int {
	if o == nil || o.Jobs <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Jobs
}

// ListCFiles возвращает отсортированный список всех *.c и *.h файлов в
// директории (рекурсивно).
func ListCFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && source.IsCSource(path) {
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

// ScanFile проверяет один файл и возвращает его диагностики.
func ScanFile(fileSet *source.FileSet, path string, opts *Options) FileResult {
	bag := diag.NewBag(opts.maxDiagnostics())

	fileID, err := fileSet.Load(path)
	if err != nil {
		// файл не прочитан, но диагностике нужна настоящая привязка к пути
		fileID = fileSet.AddVirtual(path, nil)
		bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: fileID}, "failed to load file: "+err.Error()))
		return FileResult{Path: path, FileID: fileID, Bag: bag}
	}

	file := fileSet.Get(fileID)
	rules.CheckFile(file, diag.BagReporter{Bag: bag})
	bag.Sort()
	return FileResult{Path: path, FileID: fileID, Bag: bag}
}

// ScanDir проверяет все *.c/*.h файлы в директории параллельно.
// Файлы предзагружаются в FileSet последовательно (FileSet не потокобезопасен
// на запись), сама проверка — чистая функция — выполняется в errgroup.
func ScanDir(ctx context.Context, dir string, opts *Options) (*source.FileSet, []FileResult, error) {
	files, err := ListCFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}
	return scanFiles(ctx, fileSet, files, opts)
}

func scanFiles(ctx context.Context, fileSet *source.FileSet, files []string, opts *Options) (*source.FileSet, []FileResult, error) {
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))

	for _, path := range files {
		publish(opts.progress(), Event{File: path, Stage: StageScan, Status: StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			fileID = fileSet.AddVirtual(path, nil)
		}
		fileIDs[path] = fileID
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.jobs(), len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			publish(opts.progress(), Event{File: path, Stage: StageScan, Status: StatusWorking})
			bag := diag.NewBag(opts.maxDiagnostics())

			if loadErr, hadError := loadErrors[path]; hadError {
				fileID := fileIDs[path]
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: fileID}, "failed to load file: "+loadErr.Error()))
				results[i] = FileResult{Path: path, FileID: fileID, Bag: bag}
				publish(opts.progress(), Event{File: path, Stage: StageScan, Status: StatusError})
				return nil
			}

			fileID := fileIDs[path]
			file := fileSet.Get(fileID)
			rules.CheckFile(file, diag.BagReporter{Bag: bag})
			bag.Sort()

			results[i] = FileResult{Path: path, FileID: fileID, Bag: bag}

			status := StatusDone
			if bag.HasWarnings() || bag.HasErrors() {
				status = StatusError
			}
			publish(opts.progress(), Event{File: path, Stage: StageScan, Status: status})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

func (o *Options) progress() ProgressSink {
	if o == nil {
		return nil
	}
	return o.Progress
}
