package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "colfmt.dev/pkg/colfmt/internal/model"
)

var (
	addedColor   = color.New(color.FgGreen)
	removedColor = color.New(color.FgRed)
	hunkColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.Bold)
	failedColor  = color.New(color.FgRed, color.Bold)
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, _ ...StartOption) error {
	return ctx.Err()
}

// Close finalizes the UI.
func (s *SimpleUI) Close(_ context.Context) {}

// Wait returns immediately; SimpleUI never blocks.
func (s *SimpleUI) Wait(_ context.Context) {}

// DisplayEstimation prints the estimation table or error.
func (s *SimpleUI) DisplayEstimation(ctx context.Context, estimates []m.Estimate, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err != nil {
		s.printf("estimation error: %v\n", err)
		return err
	}

	s.printf("\n%s", renderEstimationTable(sortEstimates(estimates)))

	return nil
}

func sortEstimates(estimates []m.Estimate) []m.Estimate {
	sorted := append([]m.Estimate(nil), estimates...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Source.Display() < sorted[j].Source.Display()
	})

	return sorted
}

func renderEstimationTable(estimates []m.Estimate) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Align blocks", "One-liners", "Similar blocks"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	var totals m.Estimate

	for _, est := range estimates {
		table.Append([]string{
			est.Source.Display(),
			strconv.Itoa(est.AlignBlocks),
			strconv.Itoa(est.OneLiners),
			similarityCell(est.SimilarityBlocks),
		})

		totals.AlignBlocks += est.AlignBlocks
		totals.OneLiners += est.OneLiners
		totals.SimilarityBlocks += max(est.SimilarityBlocks, 0)
	}

	similarTotal := "-"
	if len(estimates) > 0 && estimates[0].SimilarityBlocks >= 0 {
		similarTotal = strconv.Itoa(totals.SimilarityBlocks)
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(estimates)),
		strconv.Itoa(totals.AlignBlocks),
		strconv.Itoa(totals.OneLiners),
		similarTotal,
	})

	table.Render()

	return tableBuffer.String()
}

func similarityCell(blocks int) string {
	if blocks < 0 {
		return "-"
	}

	return strconv.Itoa(blocks)
}

// DisplayRunInfo shows what is about to run.
func (s *SimpleUI) DisplayRunInfo(ctx context.Context, op m.Operation, files int, workers int) {
	if ctx.Err() != nil {
		return
	}

	s.printf("Running %s on %d file(s) with %d worker(s)\n", op, files, workers)
}

// DisplayResult prints one line per file, followed by its diff when present.
func (s *SimpleUI) DisplayResult(ctx context.Context, result m.Result) {
	if ctx.Err() != nil {
		return
	}

	path := result.Source.Display()

	switch {
	case result.Failed():
		s.printf("%s %s: %s\n", failedColor.Sprint("error"), path, result.Err)
	case result.Changed:
		s.printf("%s %s (%d block(s))\n", resultVerb(result.Operation), path, result.Blocks)
	default:
		s.printf("unchanged %s\n", path)
	}

	if result.Diff != "" {
		s.printf("%s", colorDiff(result.Diff))
	}
}

func resultVerb(op m.Operation) string {
	switch op {
	case m.OperationMark:
		return "marked"
	case m.OperationUnmark:
		return "unmarked"
	default:
		return "aligned"
	}
}

// colorDiff colours the lines of a unified diff.
func colorDiff(diff string) string {
	var b strings.Builder

	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			b.WriteString(headerColor.Sprint(line))
		case strings.HasPrefix(line, "@@"):
			b.WriteString(hunkColor.Sprint(line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(addedColor.Sprint(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(removedColor.Sprint(line))
		default:
			b.WriteString(line)
		}
	}

	return b.String()
}

// DisplayFormatted writes the formatted buffer unchanged.
func (s *SimpleUI) DisplayFormatted(ctx context.Context, result m.Result) {
	if ctx.Err() != nil {
		return
	}

	s.printf("%s", result.Formatted)
}

// DisplaySummary prints the totals of a run.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.Summary) {
	if ctx.Err() != nil {
		return
	}

	s.printf("%s\n", formatSummary(summary))
}

func formatSummary(summary m.Summary) string {
	return fmt.Sprintf("%d file(s): %d changed, %d unchanged, %d failed, %d block(s)",
		summary.Files, summary.Changed, summary.Unchanged, summary.Failed, summary.Blocks)
}

func (s *SimpleUI) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
