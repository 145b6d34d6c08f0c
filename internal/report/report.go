package report

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"

	"github.com/gubarz/sloc/internal/scanner"
	"github.com/gubarz/sloc/internal/termstyle"
)

// Entry is the outcome of scanning one command line argument
type Entry struct {
	Arg    string
	Result scanner.Result
	Err    error
}

// OK reports whether the entry carries counts
func (e Entry) OK() bool {
	return e.Err == nil
}

// Totals aggregates the counts of successfully scanned files
type Totals struct {
	Files   int `json:"files"`
	Total   int `json:"total"`
	Code    int `json:"code"`
	Blank   int `json:"blank"`
	Comment int `json:"comment"`
}

// Add accumulates r into the totals
func (t *Totals) Add(r scanner.Result) {
	t.Files++
	t.Total += r.Total
	t.Code += r.Code
	t.Blank += r.Blank
	t.Comment += r.Comment
}

// Options tunes renderer output
type Options struct {
	// Styles colors text and table output; nil means plain
	Styles *termstyle.Styles
	// Totals appends an aggregate over all scanned files
	Totals bool
}

// Renderer writes scan entries in one output format
type Renderer interface {
	Begin() error
	Entry(e Entry) error
	End() error
}

type factory func(w io.Writer, opts Options) Renderer

var renderers = map[string]factory{
	"text":     newText,
	"table":    newTable,
	"json":     newJSON,
	"ndjson":   newNDJSON,
	"csv":      newCSV,
	"markdown": newMarkdown,
}

// Formats returns the supported output format names
func Formats() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New returns the renderer for format
func New(format string, w io.Writer, opts Options) (Renderer, error) {
	f, ok := renderers[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats(), ", "))
	}
	if opts.Styles == nil {
		opts.Styles = termstyle.Plain()
	}
	return f(w, opts), nil
}

// Write renders all entries with r
func Write(r Renderer, entries []Entry) error {
	if err := r.Begin(); err != nil {
		return err
	}
	for _, e := range entries {
		if err := r.Entry(e); err != nil {
			return err
		}
	}
	return r.End()
}

// Reason is the short human readable cause of a failed entry
func Reason(err error) string {
	var unsupported *scanner.UnsupportedExtensionError
	if errors.As(err, &unsupported) {
		return fmt.Sprintf(`".%s" is not a supported file extension`, unsupported.Extension)
	}
	var access *scanner.FileAccessError
	if errors.As(err, &access) {
		return pathReason(access.Err)
	}
	return err.Error()
}

func pathReason(err error) string {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}
