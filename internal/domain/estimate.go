package domain

import (
	"context"
	"fmt"
	"log/slog"

	"colfmt.dev/pkg/colfmt/internal/controller"
	m "colfmt.dev/pkg/colfmt/internal/model"
)

// Estimate counts, per file, what align and mark would do and hands the
// table to the UI. Nothing is written.
func (w *workflow) Estimate(ctx context.Context, args EstimateArgs) error {
	if err := w.ui.Start(ctx, controller.WithEstimateMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	estimates, err := w.collectEstimates(ctx, args)
	if err != nil {
		w.ui.Close(ctx)
		slog.Error("Failed to estimate sources", "error", err)

		return fmt.Errorf("estimate: %w", err)
	}

	if err := w.ui.DisplayEstimation(ctx, estimates, nil); err != nil {
		w.ui.Close(ctx)
		slog.Error("Failed to display estimation", "error", err)

		return fmt.Errorf("display: %w", err)
	}

	w.ui.Wait(ctx)
	w.ui.Close(ctx)

	return nil
}

func (w *workflow) collectEstimates(ctx context.Context, args EstimateArgs) ([]m.Estimate, error) {
	threshold := max(args.Threshold, 0)
	if threshold > 0 {
		if _, err := w.applyMatrix(args.Matrix); err != nil {
			return nil, err
		}
	}

	sources, err := w.fs.Get(ctx, args.Paths, args.Exclude...)
	if err != nil {
		return nil, fmt.Errorf("get sources: %w", err)
	}

	estimates := make([]m.Estimate, 0, len(sources))

	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := w.fs.ReadFile(source.Origin.FullPath)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", source.Display(), err)
		}

		counts, err := w.formatter.Estimate(string(content), threshold)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source.Display(), err)
		}

		estimates = append(estimates, m.Estimate{
			Source:           source,
			AlignBlocks:      counts.AlignBlocks,
			OneLiners:        counts.OneLiners,
			SimilarityBlocks: counts.SimilarityBlocks,
		})
	}

	return estimates, nil
}
