package controller

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	m "tracehook.dev/pkg/tracehook/internal/model"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestProgressModel_Update(t *testing.T) {
	pm := newProgressModel(nil)

	model, _ := pm.Update(eventMsg(m.Event{State: m.StateInstrumenting}))
	pm = model.(progressModel)

	for _, status := range []m.OutcomeStatus{m.OutcomeInstrumented, m.OutcomeInstrumented, m.OutcomeSkipped} {
		model, _ = pm.Update(eventMsg(m.Event{State: m.StateInstrumenting, Outcome: &m.Outcome{Method: addID, Status: status}}))
		pm = model.(progressModel)
	}

	if pm.state != m.StateInstrumenting {
		t.Errorf("state = %s, want %s", pm.state, m.StateInstrumenting)
	}

	if len(pm.recent) != 3 {
		t.Errorf("recent = %d lines, want 3", len(pm.recent))
	}

	view := pm.View()
	for _, want := range []string{"instrumenting", "2 instrumented, 1 skipped, 0 unmodified", "q: cancel", addID.String()} {
		if !strings.Contains(view, want) {
			t.Errorf("View() should contain %q, got:\n%s", want, view)
		}
	}
}

func TestProgressModel_RecentIsBounded(t *testing.T) {
	pm := newProgressModel(nil)

	for i := range maxRecentOut + 3 {
		id := addID
		id.Name = fmt.Sprintf("M%d", i)

		model, _ := pm.Update(eventMsg(m.Event{Outcome: &m.Outcome{Method: id, Status: m.OutcomeUnmodified}}))
		pm = model.(progressModel)
	}

	if len(pm.recent) != maxRecentOut {
		t.Fatalf("recent = %d lines, want %d", len(pm.recent), maxRecentOut)
	}

	if !strings.Contains(pm.recent[0], "M3(") {
		t.Errorf("oldest kept line = %q, want M3", pm.recent[0])
	}

	if pm.counts[m.OutcomeUnmodified] != maxRecentOut+3 {
		t.Errorf("unmodified count = %d", pm.counts[m.OutcomeUnmodified])
	}
}

func TestProgressModel_ReportQuits(t *testing.T) {
	pm := newProgressModel(nil)

	model, cmd := pm.Update(reportMsg(m.RunReport{State: m.StateReady}))
	pm = model.(progressModel)

	if !pm.finished || pm.state != m.StateReady {
		t.Errorf("finished = %v, state = %s", pm.finished, pm.state)
	}

	if cmd == nil {
		t.Fatal("expected quit command")
	}

	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestProgressModel_KeysInterrupt(t *testing.T) {
	for _, key := range []string{"q", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			calls := 0
			pm := newProgressModel(func() { calls++ })

			_, cmd := pm.Update(keyMsg(key))

			if calls != 1 {
				t.Errorf("interrupt called %d times, want 1", calls)
			}

			if cmd != nil {
				t.Error("progress view must keep running until the report arrives")
			}
		})
	}

	t.Run("other key", func(t *testing.T) {
		calls := 0
		pm := newProgressModel(func() { calls++ })

		pm.Update(keyMsg("x"))

		if calls != 0 {
			t.Errorf("interrupt called %d times, want 0", calls)
		}
	})
}

func pagerLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}

	return lines
}

func TestPagerModel_Navigation(t *testing.T) {
	pg := newPagerModel("Title", pagerLines(30))

	model, _ := pg.Update(tea.WindowSizeMsg{Width: 80, Height: 14})
	pg = model.(pagerModel)

	tests := []struct {
		key  string
		want int
	}{
		{key: "j", want: 1},
		{key: "j", want: 2},
		{key: "k", want: 1},
		{key: "d", want: 11},
		{key: "d", want: 20},
		{key: "j", want: 20},
		{key: "u", want: 10},
		{key: "g", want: 0},
		{key: "k", want: 0},
		{key: "G", want: 20},
	}

	for i, tt := range tests {
		model, _ = pg.Update(keyMsg(tt.key))
		pg = model.(pagerModel)

		if pg.offset != tt.want {
			t.Fatalf("step %d (%s): offset = %d, want %d", i, tt.key, pg.offset, tt.want)
		}
	}
}

func TestPagerModel_Quit(t *testing.T) {
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		t.Run(key, func(t *testing.T) {
			_, cmd := newPagerModel("T", pagerLines(3)).Update(keyMsg(key))
			if cmd == nil {
				t.Fatal("expected quit command")
			}

			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("expected tea.QuitMsg")
			}
		})
	}
}

func TestPagerModel_NeedsPagination(t *testing.T) {
	tests := []struct {
		name   string
		lines  int
		height int
		want   bool
	}{
		{name: "unknown height", lines: 100, height: 0, want: false},
		{name: "fits", lines: 10, height: 14, want: false},
		{name: "too tall", lines: 11, height: 14, want: true},
		{name: "tiny terminal", lines: 2, height: 3, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pg := newPagerModel("T", pagerLines(tt.lines))
			pg.height = tt.height

			if got := pg.needsPagination(); got != tt.want {
				t.Errorf("needsPagination() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPagerModel_View(t *testing.T) {
	pg := newPagerModel("Candidates", pagerLines(30))
	pg.height = 14
	pg.offset = 5

	view := pg.View()

	for _, want := range []string{"Candidates", "line 6", "line 15", "Lines 6-15 of 30"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() should contain %q, got:\n%s", want, view)
		}
	}

	if strings.Contains(view, "line 16\n") || strings.Contains(view, "line 5\n") {
		t.Errorf("View() shows lines outside the page:\n%s", view)
	}
}

func newTestTUI() (*TUI, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)

	return NewTUI(cmd), &buf
}

func TestTUI_WithoutProgramPrintsDirectly(t *testing.T) {
	ui, buf := newTestTUI()
	ctx := context.Background()

	if err := ui.Start(ctx, WithBrowseMode()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ui.DisplayEvent(ctx, m.Event{State: m.StateUnpacking})
	ui.DisplayHooks(ctx, nil)
	ui.DisplayDiff(ctx, "M", "")
	ui.DisplayReport(ctx, m.RunReport{State: m.StateFailed, Error: "boom"})

	out := buf.String()
	for _, want := range []string{"[unpacking]\n", "no hooks\n", "M: no changes\n", "failed: boom\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}

	ui.Wait(ctx)
	ui.Close(ctx)
}

func TestTUI_DisplayDeploy(t *testing.T) {
	ui, buf := newTestTUI()

	ui.DisplayDeploy(context.Background(), "", true, "")

	if !strings.Contains(buf.String(), "deployed to default device") {
		t.Errorf("DisplayDeploy() output = %q", buf.String())
	}
}

func TestNewUI(t *testing.T) {
	cmd := &cobra.Command{}

	if _, ok := NewUI(cmd, true).(*TUI); !ok {
		t.Error("NewUI(tty) should return a TUI")
	}

	if _, ok := NewUI(cmd, false).(*SimpleUI); !ok {
		t.Error("NewUI(no tty) should return a SimpleUI")
	}

	if IsTTY(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}
}
