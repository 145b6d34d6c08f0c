package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gubarz/sloc/internal/report"
	"github.com/gubarz/sloc/internal/scanner"
)

func sampleEntries() []report.Entry {
	return []report.Entry{
		{Arg: "cmd/main.go", Result: scanner.Result{Total: 40, Code: 30, Blank: 5, Comment: 5}},
		{Arg: "notes.txt", Err: &scanner.UnsupportedExtensionError{Path: "notes.txt", Extension: "txt"}},
		{Arg: "internal/scanner/classify.go", Result: scanner.Result{Total: 120, Code: 80, Blank: 10, Comment: 30}},
		{Arg: "internal/report/text.go", Result: scanner.Result{Total: 60, Code: 50, Blank: 8, Comment: 2, Unterminated: true}},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m browserModel, msgs ...tea.Msg) browserModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(browserModel)
	}
	return m
}

func paths(items []fileItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.entry.Arg
	}
	return out
}

func TestNewBrowserModel(t *testing.T) {
	m := newBrowserModel(sampleEntries(), nil)
	if len(m.filtered) != 4 {
		t.Fatalf("expected 4 items, got %d", len(m.filtered))
	}
	if m.totals.Files != 3 || m.totals.Code != 160 {
		t.Errorf("unexpected totals: %+v", m.totals)
	}
}

func TestCursorMovement(t *testing.T) {
	m := newBrowserModel(sampleEntries(), nil)
	m = update(t, m, key("down"), key("down"))
	if m.cursor != 2 {
		t.Errorf("expected cursor 2, got %d", m.cursor)
	}
	m = update(t, m, key("down"), key("down"), key("down"))
	if m.cursor != 3 {
		t.Errorf("expected cursor clamped to 3, got %d", m.cursor)
	}
	m = update(t, m, key("up"))
	if m.cursor != 2 {
		t.Errorf("expected cursor 2 after up, got %d", m.cursor)
	}
}

func TestFilter(t *testing.T) {
	m := newBrowserModel(sampleEntries(), nil)
	m = update(t, m, key("internal"), filterMsg{})
	if got := paths(m.filtered); len(got) != 2 {
		t.Fatalf("expected 2 matches, got %v", got)
	}

	m = update(t, m, key(" REPORT"), filterMsg{})
	got := paths(m.filtered)
	if len(got) != 1 || got[0] != "internal/report/text.go" {
		t.Errorf("expected case-insensitive multi-word match, got %v", got)
	}
}

func TestSortCycle(t *testing.T) {
	m := newBrowserModel(sampleEntries(), nil)
	m = update(t, m, key("tab"))
	if m.sort != sortTotal {
		t.Fatalf("expected sort by total, got %s", sortNames[m.sort])
	}
	want := []string{"internal/scanner/classify.go", "internal/report/text.go", "cmd/main.go", "notes.txt"}
	if got := paths(m.filtered); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, got)
	}

	m = update(t, m, key("tab"), key("tab"), key("tab"))
	if m.sort != sortPath {
		t.Fatalf("expected sort by path, got %s", sortNames[m.sort])
	}
	want = []string{"cmd/main.go", "internal/report/text.go", "internal/scanner/classify.go", "notes.txt"}
	if got := paths(m.filtered); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, got)
	}

	m = update(t, m, key("tab"))
	if m.sort != sortArgs || m.filtered[1].entry.Arg != "notes.txt" {
		t.Errorf("expected command line order after a full cycle, got %v", paths(m.filtered))
	}
}

func TestEnterOpensOnlyCountedFiles(t *testing.T) {
	var opened []string
	orig := openFileInViewer
	openFileInViewer = func(path string) { opened = append(opened, path) }
	defer func() { openFileInViewer = orig }()

	m := newBrowserModel(sampleEntries(), nil)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter}, key("down"), tea.KeyMsg{Type: tea.KeyEnter})
	if len(opened) != 1 || opened[0] != "cmd/main.go" {
		t.Errorf("expected only cmd/main.go to open, got %v", opened)
	}
}

func TestEscQuits(t *testing.T) {
	m := newBrowserModel(sampleEntries(), nil)
	next, cmd := m.Update(key("esc"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !next.(browserModel).quitting {
		t.Error("expected quitting state")
	}
	if next.(browserModel).View() != "" {
		t.Error("expected empty view after quitting")
	}
}

func TestView(t *testing.T) {
	m := newBrowserModel(sampleEntries(), nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()

	for _, want := range []string{"cmd/main.go", "Lines of code:", "notes.txt", "4/4 files", "160 code / 220 total"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
	if got := strings.Count(view, "\n") + 1; got != 30 {
		t.Errorf("expected view to fill 30 rows, got %d", got)
	}

	m = update(t, m, key("down"))
	if view := m.View(); !strings.Contains(view, `".txt" is not a supported file extension`) {
		t.Error("expected detail pane to show the error of the selected file")
	}
}

func TestScrollWindow(t *testing.T) {
	offset := 0
	start, end := scrollWindow(12, 20, 5, &offset)
	if start != 8 || end != 13 {
		t.Errorf("expected window 8-13, got %d-%d", start, end)
	}
	start, end = scrollWindow(2, 20, 5, &offset)
	if start != 2 || end != 7 {
		t.Errorf("expected window 2-7, got %d-%d", start, end)
	}
}
