package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"colfmt.dev/pkg/colfmt/internal/adapter"
	"colfmt.dev/pkg/colfmt/internal/controller"
	"colfmt.dev/pkg/colfmt/internal/domain/align"
	"colfmt.dev/pkg/colfmt/internal/domain/similarity"
	m "colfmt.dev/pkg/colfmt/internal/model"
	pkg "colfmt.dev/pkg/colfmt/pkg"
)

var (
	// ErrFilesFailed is returned when at least one file could not be processed.
	ErrFilesFailed = errors.New("file(s) failed")
	// ErrChangesRequired is returned in check mode when a file would change.
	ErrChangesRequired = errors.New("formatting changes required")
)

// EstimateArgs selects the files to look at and the similarity settings.
type EstimateArgs struct {
	Paths   []m.Path
	Exclude []string
	// Threshold enables similarity marking when greater than zero.
	Threshold float64
	// Matrix is an optional TOML file of substitution matrix overrides.
	Matrix m.Path
}

// FormatArgs contains the arguments of align, mark and unmark runs.
type FormatArgs struct {
	EstimateArgs
	UseCache  bool
	CacheFile m.Path
	Threads   int
	// SpillDir holds the temporary file of per-file results. Empty means the
	// system temp directory.
	SpillDir string

	// Check reports files that would change without writing them.
	Check bool
	// Diff attaches a unified diff to every changed file without writing it.
	Diff bool
	// Stdout prints formatted buffers instead of writing them.
	Stdout bool

	FmtTags bool
	Debug   bool
}

func (a FormatArgs) writes() bool {
	return !a.Check && !a.Diff && !a.Stdout
}

// Workflow runs colfmt operations over sets of files.
type Workflow interface {
	Align(ctx context.Context, args FormatArgs) error
	Mark(ctx context.Context, args FormatArgs) error
	Unmark(ctx context.Context, args FormatArgs) error
	Estimate(ctx context.Context, args EstimateArgs) error
}

type workflow struct {
	fs        adapter.SourceFSAdapter
	cache     adapter.CacheStore
	matrix    adapter.MatrixFileAdapter
	ui        controller.UI
	formatter Formatter

	// displayMu keeps the lines printed for one file together.
	displayMu sync.Mutex
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	cacheStore adapter.CacheStore,
	matrixAdapter adapter.MatrixFileAdapter,
	ui controller.UI,
	formatter Formatter,
) Workflow {
	return &workflow{
		fs:        fsAdapter,
		cache:     cacheStore,
		matrix:    matrixAdapter,
		ui:        ui,
		formatter: formatter,
	}
}

// transform turns the content of one file into its formatted form.
type transform func(code string) (Output, error)

func (w *workflow) Align(ctx context.Context, args FormatArgs) error {
	opts := align.Options{AddSentinels: args.FmtTags, Debug: args.Debug}
	settings := fmt.Sprintf("fmt_tags=%t", args.FmtTags)

	return w.run(ctx, m.OperationAlign, args, settings, func(code string) (Output, error) {
		return w.formatter.Align(code, opts)
	})
}

func (w *workflow) Mark(ctx context.Context, args FormatArgs) error {
	if !(args.Threshold > 0) {
		return fmt.Errorf("mark: %w", similarity.ErrThresholdRequired)
	}

	matrixHash, err := w.applyMatrix(args.Matrix)
	if err != nil {
		return err
	}

	settings := fmt.Sprintf("threshold=%g matrix=%s", args.Threshold, matrixHash)

	return w.run(ctx, m.OperationMark, args, settings, func(code string) (Output, error) {
		return w.formatter.Mark(code, args.Threshold)
	})
}

func (w *workflow) Unmark(ctx context.Context, args FormatArgs) error {
	return w.run(ctx, m.OperationUnmark, args, "", func(code string) (Output, error) {
		return w.formatter.Unmark(code), nil
	})
}

// applyMatrix loads the override file, if any, into the formatter and
// returns its hash for the cache settings.
func (w *workflow) applyMatrix(path m.Path) (string, error) {
	if path == "" {
		return "", nil
	}

	overrides, err := w.matrix.Load(path)
	if err != nil {
		return "", fmt.Errorf("load matrix: %w", err)
	}

	if err := w.formatter.ApplyOverrides(overrides); err != nil {
		return "", fmt.Errorf("apply matrix %s: %w", path, err)
	}

	hash, err := w.fs.HashFile(path)
	if err != nil {
		return "", fmt.Errorf("hash matrix %s: %w", path, err)
	}

	slog.Info("loaded matrix overrides", "path", path, "count", len(overrides))

	return hash, nil
}

func (w *workflow) run(ctx context.Context, op m.Operation, args FormatArgs, settings string, fn transform) error {
	sources, err := w.fs.Get(ctx, args.Paths, args.Exclude...)
	if err != nil {
		slog.Error("Failed to get sources", "error", err)
		return fmt.Errorf("get sources: %w", err)
	}

	useCache := args.UseCache && !args.Stdout && args.CacheFile != ""

	cache := adapter.NewCache()
	if useCache {
		cache, err = w.cache.Load(args.CacheFile)
		if err != nil {
			return fmt.Errorf("load cache: %w", err)
		}

		sources = freshFilter(cache, op, sources, settings)
	}

	threads := max(args.Threads, 1)

	if !args.Stdout {
		if err := w.ui.Start(ctx, controller.WithFormatMode()); err != nil {
			slog.Error("Failed to start workflow UI", "error", err)
			return err
		}

		w.ui.DisplayRunInfo(ctx, op, len(sources), threads)
	}

	defer w.ui.Close(ctx)

	results, err := pkg.NewFileSpillIn[m.Result](args.SpillDir)
	if err != nil {
		return fmt.Errorf("create result spill: %w", err)
	}

	slog.Debug("spilling results", "path", results.Path())

	defer func() {
		if err := results.Close(); err != nil {
			slog.Warn("failed to close result spill", "error", err)
		}
	}()

	var cacheMu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for _, source := range sources {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			result, hash := w.processSource(op, args, source, fn)

			if useCache {
				cacheMu.Lock()
				recordInCache(cache, op, source, hash, settings, result.Failed())
				cacheMu.Unlock()
			}

			if err := results.Append(result); err != nil {
				return fmt.Errorf("record result for %s: %w", source.Display(), err)
			}

			if !args.Stdout {
				w.displayMu.Lock()
				w.ui.DisplayResult(groupCtx, result)
				w.displayMu.Unlock()
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	if useCache {
		if err := w.cache.Save(args.CacheFile, cache); err != nil {
			slog.Error("Failed to save cache", "path", args.CacheFile, "error", err)
			return fmt.Errorf("save cache: %w", err)
		}
	}

	summary, err := summaryFromResults(results)
	if err != nil {
		return fmt.Errorf("summarize results: %w", err)
	}

	if args.Stdout {
		if err := w.printFormatted(ctx, results); err != nil {
			return err
		}
	} else {
		w.ui.DisplaySummary(ctx, summary)
		w.ui.Wait(ctx)
	}

	slog.Info("run finished", "operation", op, "files", summary.Files,
		"changed", summary.Changed, "failed", summary.Failed)

	return summaryError(summary, args.Check)
}

// processSource applies fn to one file. The returned hash is the state to
// record in the cache, or empty when the file is not known to be formatted.
func (w *workflow) processSource(op m.Operation, args FormatArgs, source m.Source, fn transform) (m.Result, string) {
	result := m.Result{Source: source, Operation: op}
	path := source.Origin.FullPath

	content, err := w.fs.ReadFile(path)
	if err != nil {
		slog.Error("Failed to read source", "path", path, "error", err)
		result.Err = fmt.Sprintf("read: %v", err)

		return result, ""
	}

	original := string(content)

	out, err := fn(original)
	if err != nil {
		slog.Error("Failed to format source", "path", path, "operation", op, "error", err)
		result.Err = err.Error()

		return result, ""
	}

	result.Blocks = out.Blocks
	result.Changed = out.Code != original

	if args.Stdout {
		result.Formatted = out.Code
	}

	if !result.Changed {
		return result, source.Origin.Hash
	}

	if args.Diff {
		diff, err := unifiedDiff(source.Display(), original, out.Code)
		if err != nil {
			slog.Warn("Failed to compute diff", "path", path, "error", err)
		}

		result.Diff = diff
	}

	if !args.writes() {
		return result, ""
	}

	if err := w.fs.WriteFile(path, []byte(out.Code)); err != nil {
		slog.Error("Failed to write source", "path", path, "error", err)
		result.Err = fmt.Sprintf("write: %v", err)

		return result, ""
	}

	slog.Debug("rewrote source", "path", path, "operation", op, "blocks", out.Blocks)

	return result, adapter.HashContent([]byte(out.Code))
}

// printFormatted writes the formatted buffers in path order.
func (w *workflow) printFormatted(ctx context.Context, results pkg.FileSpill[m.Result]) error {
	var ordered []m.Result

	err := results.Range(func(_ uint64, result m.Result) error {
		ordered = append(ordered, result)
		return nil
	})
	if err != nil {
		return fmt.Errorf("read results: %w", err)
	}

	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Source.Display() < ordered[j].Source.Display()
	})

	for _, result := range ordered {
		if result.Failed() {
			slog.Error("not printing failed source", "path", result.Source.Display(), "error", result.Err)
			continue
		}

		w.ui.DisplayFormatted(ctx, result)
	}

	return nil
}

func freshFilter(cache *adapter.Cache, op m.Operation, sources []m.Source, settings string) []m.Source {
	changed := make([]m.Source, 0, len(sources))

	for _, source := range sources {
		if cache.Fresh(op, source, settings) {
			slog.Debug("skipping cached source", "path", source.Display(), "operation", op)
			continue
		}

		changed = append(changed, source)
	}

	return changed
}

// recordInCache stores the formatted state of a file. Failed files are
// forgotten so the next run retries them.
func recordInCache(cache *adapter.Cache, op m.Operation, source m.Source, hash, settings string, failed bool) {
	switch {
	case failed:
		cache.Forget(source.Origin.FullPath)
	case hash != "":
		cache.Put(op, source.Origin.FullPath, hash, settings)
	}
}

func unifiedDiff(name, original, formatted string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(original),
		B:        difflib.SplitLines(formatted),
		FromFile: name,
		ToFile:   name,
		Context:  3,
	})
}

func summaryError(summary m.Summary, check bool) error {
	if summary.Failed > 0 {
		return fmt.Errorf("%d %w", summary.Failed, ErrFilesFailed)
	}

	if check && summary.Changed > 0 {
		return ErrChangesRequired
	}

	return nil
}
