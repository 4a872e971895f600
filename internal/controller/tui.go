package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	m "tracehook.dev/pkg/tracehook/internal/model"
	"tracehook.dev/pkg/tracehook/internal/vm"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	maxRecentOut = 8
)

// TUI implements UI using Bubble Tea: a live progress view while patching
// and a pager for listings taller than the terminal.
type TUI struct {
	cmd *cobra.Command

	mu      sync.Mutex
	program *tea.Program
	done    chan struct{}
}

// NewTUI creates a new TUI.
func NewTUI(cmd *cobra.Command) *TUI {
	return &TUI{cmd: cmd}
}

func (t *TUI) output() io.Writer {
	return t.cmd.OutOrStdout()
}

// Start launches the progress view in patch mode.
func (t *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := NewStartConfig(options...)
	if cfg.Mode() != ModePatch {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program != nil {
		return nil
	}

	t.program = tea.NewProgram(newProgressModel(cfg.Interrupt()), tea.WithOutput(t.output()), tea.WithContext(ctx))
	t.done = make(chan struct{})

	go func() {
		defer close(t.done)

		if _, err := t.program.Run(); err != nil {
			fmt.Fprintf(t.cmd.ErrOrStderr(), "progress view: %v\n", err)
		}
	}()

	return nil
}

// Close stops the progress view if it is running.
func (t *TUI) Close(_ context.Context) {
	t.mu.Lock()
	program, done := t.program, t.done
	t.program = nil
	t.mu.Unlock()

	if program == nil {
		return
	}

	program.Quit()
	<-done
}

// Wait blocks until the progress view exits.
func (t *TUI) Wait(ctx context.Context) {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()

	if done == nil {
		return
	}

	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (t *TUI) send(msg tea.Msg) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.program == nil {
		return false
	}

	t.program.Send(msg)

	return true
}

// DisplayPackage shows the module tree, paged when needed.
func (t *TUI) DisplayPackage(ctx context.Context, path m.Path, modules []*m.Module) {
	if ctx.Err() != nil {
		return
	}

	t.page(titleStyle.Render("Package"), renderPackage(path, modules))
}

// DisplayCandidates shows hookable methods, paged when needed.
func (t *TUI) DisplayCandidates(ctx context.Context, candidates []m.Candidate, hooks []m.HookDescriptor) {
	if ctx.Err() != nil {
		return
	}

	t.page(titleStyle.Render("Candidates"), renderCandidates(candidates, hooks))
}

// DisplayHooks shows the hook set.
func (t *TUI) DisplayHooks(ctx context.Context, hooks []m.HookDescriptor) {
	if ctx.Err() != nil {
		return
	}

	t.page(titleStyle.Render("Hooks"), renderHooks(hooks))
}

// DisplayEvent feeds the progress view.
func (t *TUI) DisplayEvent(ctx context.Context, event m.Event) {
	if ctx.Err() != nil {
		return
	}

	if !t.send(eventMsg(event)) {
		if line := formatEvent(event); line != "" {
			fmt.Fprintln(t.output(), line)
		}
	}
}

// DisplayReport ends the progress view and prints the outcome table.
func (t *TUI) DisplayReport(ctx context.Context, report m.RunReport) {
	if ctx.Err() != nil {
		return
	}

	if t.send(reportMsg(report)) {
		t.Wait(ctx)
		t.Close(ctx)
	}

	fmt.Fprint(t.output(), "\n"+renderReport(report))
}

// DisplayDeploy prints the deployment result.
func (t *TUI) DisplayDeploy(ctx context.Context, device string, success bool, detail string) {
	if ctx.Err() != nil {
		return
	}

	line := formatDeploy(device, success, detail)
	if success {
		line = okStyle.Render(line)
	} else {
		line = failStyle.Render(line)
	}

	fmt.Fprintln(t.output(), line)
}

// DisplayDiff shows a colored unified diff.
func (t *TUI) DisplayDiff(ctx context.Context, method string, diff string) {
	if ctx.Err() != nil {
		return
	}

	if diff == "" {
		fmt.Fprintf(t.output(), "%s: no changes\n", method)
		return
	}

	var b strings.Builder

	for _, line := range strings.SplitAfter(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			b.WriteString(titleStyle.Render(strings.TrimSuffix(line, "\n")) + "\n")
		case strings.HasPrefix(line, "+"):
			b.WriteString(okStyle.Render(strings.TrimSuffix(line, "\n")) + "\n")
		case strings.HasPrefix(line, "-"):
			b.WriteString(failStyle.Render(strings.TrimSuffix(line, "\n")) + "\n")
		default:
			b.WriteString(line)
		}
	}

	t.page(titleStyle.Render(method), b.String())
}

// DisplayTrace shows the trace events of an emulated call.
func (t *TUI) DisplayTrace(ctx context.Context, method string, events []vm.TraceEvent, result string) {
	if ctx.Err() != nil {
		return
	}

	t.page(titleStyle.Render("Trace"), renderTrace(method, events, result))
}

// page prints text directly when it fits the terminal and opens a pager otherwise.
func (t *TUI) page(title, text string) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	model := newPagerModel(title, lines)

	if f, ok := t.output().(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	if !model.needsPagination() {
		fmt.Fprint(t.output(), text)
		return
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output()), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprint(t.output(), text)
	}
}

type eventMsg m.Event

type reportMsg m.RunReport

// progressModel shows the pipeline state and the most recent outcomes.
type progressModel struct {
	spinner   spinner.Model
	state     m.PipelineState
	recent    []string
	counts    map[m.OutcomeStatus]int
	finished  bool
	interrupt func()
}

func newProgressModel(interrupt func()) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return progressModel{
		spinner:   s,
		state:     m.StateIdle,
		counts:    make(map[m.OutcomeStatus]int),
		interrupt: interrupt,
	}
}

func (pm progressModel) Init() tea.Cmd {
	return pm.spinner.Tick
}

func (pm progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if pm.interrupt != nil {
				pm.interrupt()
			}

			return pm, nil
		}

		return pm, nil

	case eventMsg:
		if msg.Outcome != nil {
			pm.counts[msg.Outcome.Status]++
			pm.recent = append(pm.recent, styleOutcome(*msg.Outcome))

			if len(pm.recent) > maxRecentOut {
				pm.recent = pm.recent[len(pm.recent)-maxRecentOut:]
			}
		} else {
			pm.state = msg.State
		}

		return pm, nil

	case reportMsg:
		pm.state = msg.State
		pm.finished = true

		return pm, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		pm.spinner, cmd = pm.spinner.Update(msg)

		return pm, cmd
	}

	return pm, nil
}

func (pm progressModel) View() string {
	var b strings.Builder

	if pm.finished {
		fmt.Fprintf(&b, "%s\n", titleStyle.Render(string(pm.state)))
	} else {
		fmt.Fprintf(&b, "%s %s\n", pm.spinner.View(), titleStyle.Render(string(pm.state)))
	}

	for _, line := range pm.recent {
		b.WriteString(line + "\n")
	}

	fmt.Fprintf(&b, "%s\n", dimStyle.Render(fmt.Sprintf("%d instrumented, %d skipped, %d unmodified | q: cancel",
		pm.counts[m.OutcomeInstrumented], pm.counts[m.OutcomeSkipped], pm.counts[m.OutcomeUnmodified])))

	return b.String()
}

func styleOutcome(o m.Outcome) string {
	line := formatOutcome(o)

	switch o.Status {
	case m.OutcomeInstrumented:
		return okStyle.Render(line)
	case m.OutcomeSkipped:
		return warnStyle.Render(line)
	default:
		return dimStyle.Render(line)
	}
}

// pagerModel scrolls through pre-rendered lines.
type pagerModel struct {
	title  string
	lines  []string
	height int
	width  int
	offset int
}

func newPagerModel(title string, lines []string) pagerModel {
	return pagerModel{title: title, lines: lines}
}

func (pg pagerModel) Init() tea.Cmd {
	return nil
}

func (pg pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pg.height = msg.Height
		pg.width = msg.Width

		return pg, nil

	case tea.KeyMsg:
		return pg.handleKeyPress(msg)
	}

	return pg, nil
}

//nolint:cyclop // Key handling requires multiple cases for UI navigation
func (pg pagerModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return pg, tea.Quit
	case "down", "j":
		pg.offset = min(pg.offset+1, pg.maxOffset())
	case "up", "k":
		pg.offset = max(pg.offset-1, 0)
	case "g", "home":
		pg.offset = 0
	case "G", "end":
		pg.offset = pg.maxOffset()
	case "d", "pgdown":
		pg.offset = min(pg.offset+pg.itemsPerPage(), pg.maxOffset())
	case "u", "pgup":
		pg.offset = max(pg.offset-pg.itemsPerPage(), 0)
	}

	return pg, nil
}

// itemsPerPage reserves a title line, a blank line and a two-line footer.
func (pg pagerModel) itemsPerPage() int {
	if pg.height == 0 {
		return 10
	}

	return max(pg.height-4, 1)
}

func (pg pagerModel) maxOffset() int {
	return max(len(pg.lines)-pg.itemsPerPage(), 0)
}

func (pg pagerModel) needsPagination() bool {
	return pg.height > 0 && len(pg.lines) > pg.itemsPerPage()
}

func (pg pagerModel) View() string {
	var b strings.Builder

	b.WriteString(pg.title + "\n\n")

	end := min(pg.offset+pg.itemsPerPage(), len(pg.lines))
	for _, line := range pg.lines[pg.offset:end] {
		b.WriteString(line + "\n")
	}

	fmt.Fprintf(&b, "\n%s", dimStyle.Render(fmt.Sprintf("Lines %d-%d of %d | ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit",
		pg.offset+1, end, len(pg.lines))))

	return b.String()
}
