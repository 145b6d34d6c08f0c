package ui

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gubarz/sloc/internal/report"
	"github.com/gubarz/sloc/internal/textutil"
)

// ============================================================================
// String Builder Pool
// ============================================================================

var builderPool = sync.Pool{
	New: func() interface{} {
		return &strings.Builder{}
	},
}

func getBuilder() *strings.Builder {
	b := builderPool.Get().(*strings.Builder)
	b.Reset()
	return b
}

func putBuilder(b *strings.Builder) {
	if b.Cap() < 64*1024 {
		builderPool.Put(b)
	}
}

// ============================================================================
// File Item
// ============================================================================

// fileItem wraps a report entry with its lowercased search key
type fileItem struct {
	entry report.Entry
	key   string
}

func newFileItem(e report.Entry) fileItem {
	return fileItem{entry: e, key: strings.ToLower(e.Arg)}
}

// matchesQuery checks if the path contains every search word
func (item *fileItem) matchesQuery(words []string) bool {
	for _, word := range words {
		if !strings.Contains(item.key, word) {
			return false
		}
	}
	return true
}

// ============================================================================
// Sorting
// ============================================================================

type sortMode int

const (
	sortArgs sortMode = iota // command line order
	sortTotal
	sortCode
	sortComment
	sortPath
)

var sortNames = map[sortMode]string{
	sortArgs:    "args",
	sortTotal:   "total",
	sortCode:    "code",
	sortComment: "comment",
	sortPath:    "path",
}

func (s sortMode) next() sortMode {
	return (s + 1) % sortMode(len(sortNames))
}

// sortItems orders items in place; failed entries always sink to the bottom
func sortItems(items []fileItem, mode sortMode) {
	if mode == sortArgs {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].entry, items[j].entry
		if a.OK() != b.OK() {
			return a.OK()
		}
		switch mode {
		case sortTotal:
			return a.Result.Total > b.Result.Total
		case sortCode:
			return a.Result.Code > b.Result.Code
		case sortComment:
			return a.Result.Comment > b.Result.Comment
		default:
			return a.Arg < b.Arg
		}
	})
}

// ============================================================================
// Debounce
// ============================================================================

// filterMsg triggers filtering after debounce
type filterMsg struct{}

func debounceFilter() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg {
		return filterMsg{}
	})
}

// ============================================================================
// Browser Model
// ============================================================================

const detailLines = 7

// browserModel is the Bubble Tea model for browsing scan results
type browserModel struct {
	width     int
	height    int
	textInput textinput.Model
	quitting  bool
	styles    *StyleManager

	items    []fileItem // command line order
	filtered []fileItem
	cursor   int
	offset   int
	sort     sortMode
	totals   report.Totals
}

func newBrowserModel(entries []report.Entry, styles *StyleManager) browserModel {
	ti := textinput.New()
	ti.Placeholder = "Type to filter files..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	items := make([]fileItem, len(entries))
	var totals report.Totals
	for i, e := range entries {
		items[i] = newFileItem(e)
		if e.OK() {
			totals.Add(e.Result)
		}
	}
	if styles == nil {
		styles = DefaultStyles()
	}

	m := browserModel{
		textInput: ti,
		styles:    styles,
		items:     items,
		totals:    totals,
	}
	m.filterItems()
	return m
}

// Init implements tea.Model
func (m browserModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 4
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	case filterMsg:
		m.filterItems()
		return m, nil
	}

	prevQuery := m.textInput.Value()
	var tiCmd tea.Cmd
	m.textInput, tiCmd = m.textInput.Update(msg)
	cmds = append(cmds, tiCmd)

	if m.textInput.Value() != prevQuery {
		cmds = append(cmds, debounceFilter())
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes navigation keys; other keys go to the filter input
func (m *browserModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return tea.Quit, true
	case "up", "ctrl+p":
		m.moveCursor(-1)
	case "down", "ctrl+n":
		m.moveCursor(1)
	case "pgup":
		m.moveCursor(-10)
	case "pgdown":
		m.moveCursor(10)
	case "home", "ctrl+a":
		m.cursor = 0
		m.adjustOffset()
	case "end", "ctrl+e":
		m.cursor = max(0, len(m.filtered)-1)
		m.adjustOffset()
	case "ctrl+s", "tab":
		m.sort = m.sort.next()
		m.filterItems()
	case "ctrl+o", "enter":
		if m.cursor < len(m.filtered) && m.filtered[m.cursor].entry.OK() {
			openFileInViewer(m.filtered[m.cursor].entry.Arg)
		}
	default:
		return nil, false
	}
	return nil, true
}

// moveCursor moves the cursor by delta, clamping to valid range
func (m *browserModel) moveCursor(delta int) {
	m.cursor += delta
	m.cursor = clamp(m.cursor, 0, max(0, len(m.filtered)-1))
	m.adjustOffset()
}

// adjustOffset ensures cursor is visible within viewport
func (m *browserModel) adjustOffset() {
	viewHeight := maxInt(m.height-detailLines-4, 3)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+viewHeight {
		m.offset = m.cursor - viewHeight + 1
	}
	maxOffset := max(0, len(m.filtered)-viewHeight)
	m.offset = clamp(m.offset, 0, maxOffset)
}

// filterItems rebuilds the visible list from the query and sort mode
func (m *browserModel) filterItems() {
	query := strings.TrimSpace(m.textInput.Value())
	words := strings.Fields(strings.ToLower(query))

	filtered := make([]fileItem, 0, len(m.items))
	for i := range m.items {
		if len(words) == 0 || m.items[i].matchesQuery(words) {
			filtered = append(filtered, m.items[i])
		}
	}
	sortItems(filtered, m.sort)
	m.filtered = filtered

	m.cursor = clamp(m.cursor, 0, max(0, len(m.filtered)-1))
	m.adjustOffset()
}

// View implements tea.Model
func (m browserModel) View() string {
	if m.quitting {
		return ""
	}
	width := maxInt(m.width, 80)
	height := maxInt(m.height, 24)

	detail := m.renderDetail(width)
	detailHeight := countLines(detail)

	inputLines := 3 // divider + info + input
	listHeight := maxInt(height-detailHeight-inputLines, 3)
	list := m.renderList(width, listHeight)
	listLines := countLines(list)

	padding := maxInt(height-detailHeight-listLines-inputLines, 0)

	b := getBuilder()
	defer putBuilder(b)
	b.WriteString(detail)
	b.WriteString(list)
	b.WriteString(strings.Repeat("\n", padding))
	b.WriteString(m.renderInput(width))
	return b.String()
}

// renderDetail renders the pane describing the file under the cursor
func (m browserModel) renderDetail(width int) string {
	st := m.styles
	b := getBuilder()
	defer putBuilder(b)
	lines := 0

	if m.cursor < len(m.filtered) {
		e := m.filtered[m.cursor].entry
		b.WriteString(st.DetailHeader.Render(textutil.Truncate(e.Arg, width)))
		b.WriteString("\n")
		lines++

		if !e.OK() {
			b.WriteString(st.Warning.Render(report.Reason(e.Err)))
			b.WriteString("\n")
			lines++
		} else {
			r := e.Result
			for _, row := range []struct {
				label string
				n     int
				style func(...string) string
			}{
				{"Total lines", r.Total, st.Path.Render},
				{"Lines of code", r.Code, st.Code.Render},
				{"Empty lines", r.Blank, st.Blank.Render},
				{"Commented lines", r.Comment, st.Comment.Render},
			} {
				fmt.Fprintf(b, "%s %s %s\n",
					textutil.PadLeft(row.label+":", 16),
					row.style(textutil.PadLeft(fmt.Sprint(row.n), 8)),
					m.renderBar(row.n, r.Total, width-27, row.style))
				lines++
			}
			if r.Unterminated {
				b.WriteString(st.Warning.Render("file ends inside a block comment"))
				b.WriteString("\n")
				lines++
			}
		}
	}

	for lines < detailLines-1 {
		b.WriteString("\n")
		lines++
	}
	b.WriteString(st.Divider.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	return b.String()
}

// renderBar draws a proportional bar of n out of total
func (m browserModel) renderBar(n, total, width int, style func(...string) string) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	filled := n * width / total
	if filled == 0 && n > 0 {
		filled = 1
	}
	return style(strings.Repeat("█", filled))
}

// renderList renders the scrollable list of files
func (m *browserModel) renderList(width, maxHeight int) string {
	if len(m.filtered) == 0 {
		return ""
	}

	start, end := scrollWindow(m.cursor, len(m.filtered), maxHeight, &m.offset)

	b := getBuilder()
	defer putBuilder(b)
	for i := start; i < end; i++ {
		b.WriteString(m.renderListItem(m.filtered[i], i == m.cursor, width))
		b.WriteString("\n")
	}
	return b.String()
}

// renderListItem renders a single list row: path, then the four counts
func (m browserModel) renderListItem(item fileItem, selected bool, width int) string {
	st := m.styles
	path, code, blank, comment, warn := st.Path, st.Code, st.Blank, st.Comment, st.Warning
	if selected {
		path = st.WithSelection(path)
		code = st.WithSelection(code)
		blank = st.WithSelection(blank)
		comment = st.WithSelection(comment)
		warn = st.WithSelection(warn)
	}

	const countsWidth = 4 * 9
	pathWidth := maxInt(width-countsWidth-2, 10)
	line := path.Render(textutil.PadRight(textutil.Truncate(item.entry.Arg, pathWidth), pathWidth))

	e := item.entry
	if e.OK() {
		line += path.Render(textutil.PadLeft(fmt.Sprint(e.Result.Total), 9)) +
			code.Render(textutil.PadLeft(fmt.Sprint(e.Result.Code), 9)) +
			blank.Render(textutil.PadLeft(fmt.Sprint(e.Result.Blank), 9)) +
			comment.Render(textutil.PadLeft(fmt.Sprint(e.Result.Comment), 9))
	} else {
		line += warn.Render(textutil.PadLeft("error", countsWidth))
	}

	if selected {
		return st.Cursor.Render("▶ ") + line
	}
	return "  " + line
}

// renderInput renders the input section at the bottom
func (m browserModel) renderInput(width int) string {
	st := m.styles
	b := getBuilder()
	defer putBuilder(b)
	b.WriteString(st.Divider.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(st.Dim.Render(fmt.Sprintf("  %d/%d files", len(m.filtered), len(m.items))))
	b.WriteString(" • ")
	b.WriteString(st.Dim.Render(fmt.Sprintf("%d code / %d total", m.totals.Code, m.totals.Total)))
	b.WriteString(" • ")
	b.WriteString(st.Dim.Render("Tab sort: " + sortNames[m.sort]))
	b.WriteString(" • ")
	b.WriteString(st.Dim.Render("Enter open"))
	b.WriteString(" • ")
	b.WriteString(st.Dim.Render("ESC exit"))
	b.WriteString("\n")
	b.WriteString(m.textInput.View())
	return b.String()
}

// ============================================================================
// Helpers
// ============================================================================

// clamp restricts v to the range [minV, maxV]
func clamp(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// maxInt returns the larger of a and b
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// countLines counts the newline-terminated lines in a string
func countLines(s string) int {
	return strings.Count(s, "\n")
}

// scrollWindow calculates the visible range for a scrollable list
func scrollWindow(cursor, total, height int, offset *int) (start, end int) {
	if cursor < *offset {
		*offset = cursor
	}
	if cursor >= *offset+height {
		*offset = cursor - height + 1
	}
	maxOffset := max(0, total-height)
	*offset = clamp(*offset, 0, maxOffset)

	start = *offset
	end = min(start+height, total)
	return
}

// openFileInViewer opens the file in $EDITOR or the system default viewer
var openFileInViewer = func(filePath string) {
	var cmd *exec.Cmd

	if editor := os.Getenv("EDITOR"); editor != "" {
		cmd = exec.Command(editor, filePath)
	} else {
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", filePath)
		case "windows":
			cmd = exec.Command("cmd", "/c", "start", "", filePath)
		default:
			cmd = exec.Command("xdg-open", filePath)
		}
	}
	_ = cmd.Start()
}
