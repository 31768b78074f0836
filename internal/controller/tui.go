package controller

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	m "colfmt.dev/pkg/colfmt/internal/model"
)

const (
	appTitle = "colfmt - column formatter"

	defaultPageSize = 10
	// reservedLines covers the header, totals and footer of the estimation view.
	reservedLines = 12
	recentResults = 8
	defaultWidth  = 80
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Border(lipgloss.DoubleBorder()).Padding(0, 2)
	zeroStyle    = lipgloss.NewStyle().Faint(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	changedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer

	mu       sync.Mutex
	program  *tea.Program
	done     chan struct{}
	deferred bytes.Buffer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Start launches the progress view in format mode. Estimation renders once
// the estimates are known.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if newStartConfig(options).Mode() != ModeFormat {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.program = tea.NewProgram(newRunModel(), tea.WithOutput(t.output), tea.WithContext(ctx))
	t.done = make(chan struct{})

	go func(program *tea.Program, done chan struct{}) {
		defer close(done)

		if _, err := program.Run(); err != nil {
			slog.Debug("progress view stopped", "error", err)
		}
	}(t.program, t.done)

	return nil
}

// Close stops the progress view and prints the diffs and buffers collected
// while it was running.
func (t *TUI) Close(_ context.Context) {
	t.mu.Lock()
	program, done := t.program, t.done
	t.program, t.done = nil, nil
	t.mu.Unlock()

	if program != nil {
		program.Quit()
		<-done
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.deferred.Len() > 0 {
		_, _ = t.output.Write(t.deferred.Bytes())
		t.deferred.Reset()
	}
}

// Wait blocks until the progress view has finished.
func (t *TUI) Wait(ctx context.Context) {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done == nil {
		return
	}

	select {
	case <-ctx.Done():
	case <-done:
	}
}

func (t *TUI) send(msg tea.Msg) {
	t.mu.Lock()
	program := t.program
	t.mu.Unlock()

	if program != nil {
		program.Send(msg)
	}
}

// DisplayEstimation renders the estimation list, paging it when it does not
// fit the terminal.
func (t *TUI) DisplayEstimation(ctx context.Context, estimates []m.Estimate, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if err != nil {
		_, _ = fmt.Fprintf(t.output, "estimation error: %v\n", err)
		return err
	}

	model := newEstimateModel(sortEstimates(estimates))

	if f, ok := t.output.(*os.File); ok {
		width, height, sizeErr := term.GetSize(int(f.Fd()))
		if sizeErr == nil {
			model.width = width
			model.height = height
		}
	}

	if !model.needsPagination() {
		_, err := fmt.Fprint(t.output, model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

type runInfoMsg struct {
	op      m.Operation
	files   int
	workers int
}

type resultMsg m.Result

type summaryMsg m.Summary

// DisplayRunInfo forwards the run size to the progress view.
func (t *TUI) DisplayRunInfo(_ context.Context, op m.Operation, files int, workers int) {
	t.send(runInfoMsg{op: op, files: files, workers: workers})
}

// DisplayResult forwards a result to the progress view. Diffs are printed
// once the view has closed.
func (t *TUI) DisplayResult(_ context.Context, result m.Result) {
	t.send(resultMsg(result))

	if result.Diff == "" {
		return
	}

	t.mu.Lock()
	t.deferred.WriteString(colorDiff(result.Diff))
	t.mu.Unlock()
}

// DisplayFormatted queues a formatted buffer for printing after the view closes.
func (t *TUI) DisplayFormatted(_ context.Context, result m.Result) {
	t.mu.Lock()
	t.deferred.WriteString(result.Formatted)
	t.mu.Unlock()
}

// DisplaySummary shows the totals and ends the progress view.
func (t *TUI) DisplaySummary(_ context.Context, summary m.Summary) {
	t.send(summaryMsg(summary))
}

// runModel is the progress view of a formatting run.
type runModel struct {
	op        m.Operation
	total     int
	workers   int
	processed int
	recent    []m.Result
	summary   *m.Summary
	spinner   spinner.Model
	progress  progress.Model
	width     int
}

func newRunModel() runModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = defaultWidth - 4

	return runModel{spinner: sp, progress: prog, width: defaultWidth}
}

func (rm runModel) Init() tea.Cmd {
	return rm.spinner.Tick
}

func (rm runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case runInfoMsg:
		rm.op, rm.total, rm.workers = msg.op, msg.files, msg.workers
		return rm, nil

	case resultMsg:
		rm.processed++

		rm.recent = append(rm.recent, m.Result(msg))
		if len(rm.recent) > recentResults {
			rm.recent = rm.recent[len(rm.recent)-recentResults:]
		}

		return rm, nil

	case summaryMsg:
		summary := m.Summary(msg)
		rm.summary = &summary

		return rm, tea.Quit

	case spinner.TickMsg:
		if rm.summary != nil {
			return rm, nil
		}

		var cmd tea.Cmd
		rm.spinner, cmd = rm.spinner.Update(msg)

		return rm, cmd

	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			rm.width = msg.Width
			rm.progress.Width = max(msg.Width-4, 10)
		}

		return rm, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return rm, tea.Quit
		}
	}

	return rm, nil
}

func (rm runModel) percent() float64 {
	if rm.total == 0 {
		return 0
	}

	return float64(rm.processed) / float64(rm.total)
}

func (rm runModel) View() string {
	var b strings.Builder

	header := fmt.Sprintf("%s %s: %d/%d file(s), %d worker(s)",
		rm.spinner.View(), rm.op, rm.processed, rm.total, rm.workers)
	if rm.summary != nil {
		header = fmt.Sprintf("done: %s %d/%d file(s)", rm.op, rm.processed, rm.total)
	}

	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(rm.progress.ViewAs(rm.percent()))
	b.WriteString("\n\n")

	nameWidth := max(rm.width-14, 20)

	for _, result := range rm.recent {
		fmt.Fprintf(&b, "  %s %s\n", statusLabel(result), truncate(result.Source.Display(), nameWidth))
	}

	if rm.summary != nil {
		fmt.Fprintf(&b, "\n  %s\n", formatSummary(*rm.summary))
	}

	return b.String()
}

func statusLabel(result m.Result) string {
	switch {
	case result.Failed():
		return errorStyle.Render("error    ")
	case result.Changed:
		return changedStyle.Render(fmt.Sprintf("%-9s", resultVerb(result.Operation)))
	default:
		return okStyle.Render("unchanged")
	}
}

// truncate shortens value to at most width terminal cells.
func truncate(value string, width int) string {
	if runewidth.StringWidth(value) <= width {
		return value
	}

	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}

	return runewidth.Truncate(value, width, "...")
}

type estimateKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Quit     key.Binding
}

func newEstimateKeyMap() estimateKeyMap {
	return estimateKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "u"), key.WithHelp("u", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "d"), key.WithHelp("d", "page down")),
		Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k estimateKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Top, k.Bottom, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k estimateKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.PageUp, k.PageDown}, {k.Top, k.Bottom, k.Quit}}
}

// estimateModel is the paged estimation list.
type estimateModel struct {
	estimates []m.Estimate
	totals    m.Estimate
	keys      estimateKeyMap
	help      help.Model
	height    int
	width     int
	offset    int
	quitting  bool
}

func newEstimateModel(estimates []m.Estimate) estimateModel {
	var totals m.Estimate
	for _, est := range estimates {
		totals.AlignBlocks += est.AlignBlocks
		totals.OneLiners += est.OneLiners
		totals.SimilarityBlocks += max(est.SimilarityBlocks, 0)
	}

	return estimateModel{
		estimates: estimates,
		totals:    totals,
		keys:      newEstimateKeyMap(),
		help:      help.New(),
	}
}

func (em estimateModel) Init() tea.Cmd {
	return nil
}

func (em estimateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		em.height = msg.Height
		em.width = msg.Width
		em.help.Width = msg.Width
		em.offset = min(em.offset, em.maxOffset())

		return em, nil

	case tea.KeyMsg:
		return em.handleKeyPress(msg)
	}

	return em, nil
}

func (em estimateModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, em.keys.Quit):
		em.quitting = true
		return em, tea.Quit
	case key.Matches(msg, em.keys.Down):
		em.offset++
	case key.Matches(msg, em.keys.Up):
		em.offset--
	case key.Matches(msg, em.keys.PageDown):
		em.offset += em.itemsPerPage()
	case key.Matches(msg, em.keys.PageUp):
		em.offset -= em.itemsPerPage()
	case key.Matches(msg, em.keys.Top):
		em.offset = 0
	case key.Matches(msg, em.keys.Bottom):
		em.offset = em.maxOffset()
	}

	em.offset = max(0, min(em.offset, em.maxOffset()))

	return em, nil
}

// itemsPerPage calculates how many items can fit on screen.
func (em estimateModel) itemsPerPage() int {
	if em.height == 0 {
		return defaultPageSize
	}

	return max(em.height-reservedLines, 1)
}

func (em estimateModel) maxOffset() int {
	return max(len(em.estimates)-em.itemsPerPage(), 0)
}

// needsPagination returns true if the list is too large to fit on screen.
func (em estimateModel) needsPagination() bool {
	return em.height > 0 && len(em.estimates) > em.itemsPerPage()
}

func (em estimateModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(appTitle))
	b.WriteString("\n\n")

	if len(em.estimates) == 0 {
		b.WriteString("  No source files found\n")
		return b.String()
	}

	b.WriteString("  Formatting estimate:\n\n")

	visible := em.estimates
	start, end := 0, len(em.estimates)

	if em.needsPagination() {
		start = min(em.offset, em.maxOffset())
		end = min(start+em.itemsPerPage(), len(em.estimates))
		visible = em.estimates[start:end]
	}

	width := em.width
	if width == 0 {
		width = defaultWidth
	}

	nameWidth := max(width-48, 20)

	for _, est := range visible {
		fmt.Fprintf(&b, "  %s: %s aligned, %s one-liners, %s similar\n",
			truncate(est.Source.Display(), nameWidth),
			countCell(est.AlignBlocks), countCell(est.OneLiners), countCell(est.SimilarityBlocks))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "  Total: %d aligned block(s), %d one-liner(s)", em.totals.AlignBlocks, em.totals.OneLiners)

	if em.estimates[0].SimilarityBlocks >= 0 {
		fmt.Fprintf(&b, ", %d similar block(s)", em.totals.SimilarityBlocks)
	}

	fmt.Fprintf(&b, " across %d file(s)\n", len(em.estimates))

	if em.needsPagination() {
		b.WriteString("\n")

		perPage := em.itemsPerPage()
		fmt.Fprintf(&b, "  Page %d/%d | Showing %d-%d of %d\n",
			start/perPage+1, (len(em.estimates)+perPage-1)/perPage, start+1, end, len(em.estimates))
		b.WriteString("  " + em.help.View(em.keys) + "\n")
	}

	return b.String()
}

func countCell(n int) string {
	if n < 0 {
		return zeroStyle.Render("-")
	}

	if n == 0 {
		return zeroStyle.Render("0")
	}

	return fmt.Sprintf("%d", n)
}
