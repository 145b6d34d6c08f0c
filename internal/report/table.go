package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gubarz/sloc/internal/textutil"
)

const columnGap = "  "

// tableRenderer buffers entries so columns can be aligned by display width
type tableRenderer struct {
	w       io.Writer
	opts    Options
	entries []Entry
}

func newTable(w io.Writer, opts Options) Renderer {
	return &tableRenderer{w: w, opts: opts}
}

func (r *tableRenderer) Begin() error { return nil }

func (r *tableRenderer) Entry(e Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *tableRenderer) End() error {
	s := r.opts.Styles
	header := []string{"FILE", "TOTAL", "CODE", "BLANK", "COMMENT", "NOTE"}
	rows := make([][]string, 0, len(r.entries)+1)

	var totals Totals
	for _, e := range r.entries {
		if !e.OK() {
			rows = append(rows, []string{e.Arg, "-", "-", "-", "-", s.Paint(s.Warning, Reason(e.Err))})
			continue
		}
		totals.Add(e.Result)
		note := ""
		if e.Result.Unterminated {
			note = "unterminated block comment"
		}
		rows = append(rows, r.counts(e.Arg, e.Result.Total, e.Result.Code, e.Result.Blank, e.Result.Comment, note))
	}
	if r.opts.Totals {
		label := fmt.Sprintf("TOTAL (%d %s)", totals.Files, plural(totals.Files, "file", "files"))
		rows = append(rows, r.counts(label, totals.Total, totals.Code, totals.Blank, totals.Comment, ""))
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = textutil.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := textutil.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	styled := make([]string, len(header))
	for i, h := range header {
		styled[i] = s.Paint(s.Header, h)
	}
	if err := r.line(styled, widths); err != nil {
		return err
	}
	for _, row := range rows {
		if err := r.line(row, widths); err != nil {
			return err
		}
	}
	return nil
}

func (r *tableRenderer) counts(label string, total, code, blank, comment int, note string) []string {
	s := r.opts.Styles
	return []string{
		label,
		fmt.Sprint(total),
		s.Paint(s.Code, fmt.Sprint(code)),
		s.Paint(s.Blank, fmt.Sprint(blank)),
		s.Paint(s.Comment, fmt.Sprint(comment)),
		note,
	}
}

// line writes one row; the file column is left aligned, counts right aligned,
// and the trailing note is never padded.
func (r *tableRenderer) line(cells []string, widths []int) error {
	parts := make([]string, len(cells))
	last := len(cells) - 1
	for i, cell := range cells {
		switch {
		case i == 0:
			parts[i] = textutil.PadRight(cell, widths[i])
		case i == last:
			parts[i] = cell
		default:
			parts[i] = textutil.PadLeft(cell, widths[i])
		}
	}
	_, err := fmt.Fprintln(r.w, strings.TrimRight(strings.Join(parts, columnGap), " "))
	return err
}
