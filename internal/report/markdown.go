package report

import (
	"fmt"
	"io"
	"strings"
)

// markdownRenderer writes a GitHub Flavored Markdown table
type markdownRenderer struct {
	w      io.Writer
	opts   Options
	totals Totals
}

func newMarkdown(w io.Writer, opts Options) Renderer {
	return &markdownRenderer{w: w, opts: opts}
}

func (r *markdownRenderer) Begin() error {
	_, err := io.WriteString(r.w, "| File | Total | Code | Blank | Comment | Note |\n| --- | ---: | ---: | ---: | ---: | --- |\n")
	return err
}

func (r *markdownRenderer) Entry(e Entry) error {
	if !e.OK() {
		return r.row(escapeCell(e.Arg), "", "", "", "", escapeCell(Reason(e.Err)))
	}
	r.totals.Add(e.Result)
	res := e.Result
	note := ""
	if res.Unterminated {
		note = "unterminated block comment"
	}
	return r.row(escapeCell(e.Arg), fmt.Sprint(res.Total), fmt.Sprint(res.Code), fmt.Sprint(res.Blank), fmt.Sprint(res.Comment), note)
}

func (r *markdownRenderer) End() error {
	if !r.opts.Totals {
		return nil
	}
	t := r.totals
	return r.row(fmt.Sprintf("**Total (%d %s)**", t.Files, plural(t.Files, "file", "files")),
		fmt.Sprint(t.Total), fmt.Sprint(t.Code), fmt.Sprint(t.Blank), fmt.Sprint(t.Comment), "")
}

func (r *markdownRenderer) row(cells ...string) error {
	_, err := fmt.Fprintf(r.w, "| %s |\n", strings.Join(cells, " | "))
	return err
}

func escapeCell(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "<br>")
	return strings.ReplaceAll(s, "|", "\\|")
}
