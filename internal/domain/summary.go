package domain

import (
	m "colfmt.dev/pkg/colfmt/internal/model"
	pkg "colfmt.dev/pkg/colfmt/pkg"
)

func summaryFromResults(results pkg.FileSpill[m.Result]) (m.Summary, error) {
	var summary m.Summary

	err := results.Range(func(_ uint64, result m.Result) error {
		summary.Files++

		switch {
		case result.Failed():
			summary.Failed++
		case result.Changed:
			summary.Changed++
			summary.Blocks += result.Blocks
		default:
			summary.Unchanged++
			summary.Blocks += result.Blocks
		}

		return nil
	})
	if err != nil {
		return m.Summary{}, err
	}

	return summary, nil
}
