package textutil

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// CSI color sequences as produced by lipgloss
var escapeSeq = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)

// Strip removes terminal escape sequences from s
func Strip(s string) string {
	if !strings.ContainsRune(s, 0x1b) {
		return s
	}
	return escapeSeq.ReplaceAllString(s, "")
}

// Width returns the number of terminal cells s occupies
func Width(s string) int {
	s = Strip(s)
	if s == "" {
		return 0
	}
	width := 0
	state := -1
	var cluster string
	for len(s) > 0 {
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		width += runewidth.StringWidth(cluster)
	}
	return width
}

// PadRight left-aligns s in a column of w cells
func PadRight(s string, w int) string {
	if n := w - Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// PadLeft right-aligns s in a column of w cells
func PadLeft(s string, w int) string {
	if n := w - Width(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}

// Truncate shortens s to at most w cells, keeping the tail of the string
// so the file name of a long path stays visible. A leading ellipsis marks
// the cut.
func Truncate(s string, w int) string {
	const ellipsis = "…"
	if w <= 0 {
		return ""
	}
	s = Strip(s)
	if Width(s) <= w {
		return s
	}
	if w == 1 {
		return ellipsis
	}

	var clusters []string
	state := -1
	var cluster string
	rest := s
	for len(rest) > 0 {
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		clusters = append(clusters, cluster)
	}

	budget := w - runewidth.StringWidth(ellipsis)
	start := len(clusters)
	used := 0
	for start > 0 {
		cw := runewidth.StringWidth(clusters[start-1])
		if used+cw > budget {
			break
		}
		used += cw
		start--
	}
	return ellipsis + strings.Join(clusters[start:], "")
}
