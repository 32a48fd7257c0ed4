// Package parser scans an input directory for Rust sources and builds one
// sorted model.Manifest from every matching file.
//
// Files are read, parsed and extracted in parallel; merging and sorting is
// the only step that sees all of them. A file the front-end cannot read fails
// the whole scan, so callers never emit output from a partial manifest.
package parser

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/misha-mad/vercel-rpc-sub000/diag"
	"github.com/misha-mad/vercel-rpc-sub000/errors"
	"github.com/misha-mad/vercel-rpc-sub000/logger"
	"github.com/misha-mad/vercel-rpc-sub000/model"
	"github.com/misha-mad/vercel-rpc-sub000/parser/extract"
	"github.com/misha-mad/vercel-rpc-sub000/parser/rust"
	"golang.org/x/sync/errgroup"
)

// ScanOptions selects the files to read.
type ScanOptions struct {
	Dir     string
	Include []string
	Exclude []string
	// Workers bounds parallel parsing; 0 means GOMAXPROCS.
	Workers int
}

// ScanResult is a merged, sorted manifest plus everything worth reporting.
type ScanResult struct {
	Manifest    *model.Manifest
	Diagnostics diag.List
	// Files are the scanned paths (Dir joined with the relative path), sorted.
	Files []string
}

type fileResult struct {
	manifest *model.Manifest
	diags    diag.List
	err      error
}

// Scan reads every selected file under opts.Dir.
//
// Errors:
//   - errors.ErrNotFound: Dir does not exist
//   - errors.ErrInvalidConfig: a malformed glob pattern
//   - errors.ErrEmptyInput: no matching files, or no declarations in them
//   - errors.ErrFrontend: at least one file could not be parsed
func Scan(ctx context.Context, opts ScanOptions) (*ScanResult, error) {
	log := logger.ComponentLogger(logger.ComponentScan)
	start := time.Now()

	files, err := ListFiles(opts.Dir, NewMatcher(opts.Include, opts.Exclude))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrEmptyInput, "no .rs files matched in %s", opts.Dir),
			"check the [input] dir, include and exclude settings in rpc.config.toml")
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log.Debugw("scanning", logger.FieldDir, opts.Dir, logger.FieldFiles, len(files), logger.FieldWorkers, workers)

	results := make([]fileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = parseFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "scan cancelled")
	}

	var merr *multierror.Error
	result := &ScanResult{Manifest: &model.Manifest{}, Files: files}
	for _, r := range results {
		if r.err != nil {
			merr = multierror.Append(merr, r.err)
			continue
		}
		result.Manifest.Merge(r.manifest)
		result.Diagnostics.Merge(r.diags)
	}
	if merr != nil {
		err := errors.Mark(errors.Wrapf(merr, "failed to parse %d of %d files", merr.Len(), len(files)), errors.ErrFrontend)
		return nil, errors.WithHint(err, "fix the syntax errors above; no output was written")
	}

	result.Manifest.Sort()
	if result.Manifest.IsEmpty() {
		return nil, errors.WithHint(
			errors.Wrapf(errors.ErrEmptyInput, "no procedures or serializable types in %d files under %s", len(files), opts.Dir),
			"annotate handlers with #[rpc_query] or #[rpc_mutation]")
	}

	for _, name := range result.Manifest.Duplicates() {
		result.Diagnostics.Add(diag.New(diag.KindDuplicate, "%s is declared more than once", name).
			For(name).
			WithSuggestion("generated names must be unique across the input directory"))
	}
	result.Diagnostics.Sort()

	stats := result.Manifest.Stats()
	log.Debugw("scan complete",
		logger.FieldFiles, len(files),
		logger.FieldProcedures, stats.Queries+stats.Mutations,
		logger.FieldRecords, stats.Records,
		logger.FieldSums, stats.Sums,
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return result, nil
}

// ListFiles walks dir and returns the selected files, sorted.
func ListFiles(dir string, m *Matcher) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WithHint(
				errors.NewNotFoundError("input directory %s does not exist", dir),
				"set [input] dir in rpc.config.toml or pass --dir")
		}
		return nil, errors.Wrapf(err, "failed to stat %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.Newf("input path %s is not a directory", dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		ok, err := m.Match(rel)
		if err != nil {
			return err
		}
		if ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk %s", dir)
	}

	sort.Strings(files)
	return files, nil
}

func parseFile(path string) fileResult {
	src, err := os.ReadFile(path)
	if err != nil {
		return fileResult{err: errors.Mark(errors.Wrapf(err, "failed to read %s", path), errors.ErrFrontend)}
	}
	m, diags, err := ParseSource(path, src)
	return fileResult{manifest: m, diags: diags, err: err}
}

// ParseSource parses and extracts a single file held in memory.
func ParseSource(path string, src []byte) (*model.Manifest, diag.List, error) {
	f, err := rust.ParseFile(path, src)
	if err != nil {
		return nil, nil, err
	}
	m, diags := extract.File(f)
	return m, diags, nil
}
