package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/gubarz/sloc/internal/scanner"
)

var csvHeader = []string{"path", "extension", "total", "code", "blank", "comment", "unterminated", "error"}

// csvRenderer writes RFC 4180 rows with CRLF endings
type csvRenderer struct {
	w *csv.Writer
}

func newCSV(w io.Writer, _ Options) Renderer {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	return &csvRenderer{w: writer}
}

func (r *csvRenderer) Begin() error {
	return r.w.Write(csvHeader)
}

func (r *csvRenderer) Entry(e Entry) error {
	if !e.OK() {
		return r.w.Write([]string{e.Arg, scanner.Extension(e.Arg), "", "", "", "", "", Reason(e.Err)})
	}
	res := e.Result
	return r.w.Write([]string{
		e.Arg,
		res.Extension,
		strconv.Itoa(res.Total),
		strconv.Itoa(res.Code),
		strconv.Itoa(res.Blank),
		strconv.Itoa(res.Comment),
		strconv.FormatBool(res.Unterminated),
		"",
	})
}

func (r *csvRenderer) End() error {
	r.w.Flush()
	return r.w.Error()
}
