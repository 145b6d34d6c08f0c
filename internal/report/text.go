package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gubarz/sloc/internal/scanner"
)

// Delimiter separates file reports in text output
var Delimiter = strings.Repeat("#", 20)

type textRenderer struct {
	w      io.Writer
	opts   Options
	totals Totals
}

func newText(w io.Writer, opts Options) Renderer {
	return &textRenderer{w: w, opts: opts}
}

func (r *textRenderer) Begin() error {
	return r.delimiter()
}

func (r *textRenderer) Entry(e Entry) error {
	s := r.opts.Styles
	var err error

	var unsupported *scanner.UnsupportedExtensionError
	switch {
	case e.OK():
		r.totals.Add(e.Result)
		err = r.block(fmt.Sprintf(`Stats for "%s":`, e.Arg), e.Result.Total, e.Result.Code, e.Result.Blank, e.Result.Comment)
	case errors.As(e.Err, &unsupported):
		_, err = fmt.Fprintf(r.w, "%s\n\"%s\"\n",
			s.Paint(s.Warning, fmt.Sprintf(`".%s" is not a supported file extension!`, unsupported.Extension)), e.Arg)
	default:
		_, err = fmt.Fprintln(r.w, s.Paint(s.Warning, fmt.Sprintf(`Could not read "%s": %s`, e.Arg, Reason(e.Err))))
	}
	if err != nil {
		return err
	}
	return r.delimiter()
}

func (r *textRenderer) End() error {
	if !r.opts.Totals {
		return nil
	}
	t := r.totals
	if err := r.block(fmt.Sprintf("Totals for %d %s:", t.Files, plural(t.Files, "file", "files")), t.Total, t.Code, t.Blank, t.Comment); err != nil {
		return err
	}
	return r.delimiter()
}

func (r *textRenderer) block(header string, total, code, blank, comment int) error {
	s := r.opts.Styles
	_, err := fmt.Fprintf(r.w, "%s\n    Total lines: %d\n  Lines of code: %s\n    Empty lines: %s\nCommented lines: %s\n",
		s.Paint(s.Header, header),
		total,
		s.Paint(s.Code, fmt.Sprint(code)),
		s.Paint(s.Blank, fmt.Sprint(blank)),
		s.Paint(s.Comment, fmt.Sprint(comment)),
	)
	return err
}

func (r *textRenderer) delimiter() error {
	s := r.opts.Styles
	_, err := fmt.Fprintln(r.w, s.Paint(s.Delimiter, Delimiter))
	return err
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
