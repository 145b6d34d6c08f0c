package report

import (
	"encoding/json"
	"io"

	"github.com/gubarz/sloc/internal/scanner"
)

type fileRecord struct {
	Path         string `json:"path"`
	Extension    string `json:"extension"`
	Total        int    `json:"total"`
	Code         int    `json:"code"`
	Blank        int    `json:"blank"`
	Comment      int    `json:"comment"`
	Unterminated bool   `json:"unterminated,omitempty"`
}

type errorRecord struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

type document struct {
	Files  []fileRecord  `json:"files"`
	Errors []errorRecord `json:"errors"`
	Total  Totals        `json:"total"`
}

func newFileRecord(e Entry) fileRecord {
	return fileRecord{
		Path:         e.Arg,
		Extension:    e.Result.Extension,
		Total:        e.Result.Total,
		Code:         e.Result.Code,
		Blank:        e.Result.Blank,
		Comment:      e.Result.Comment,
		Unterminated: e.Result.Unterminated,
	}
}

// jsonRenderer emits a single document once all entries are known
type jsonRenderer struct {
	w   io.Writer
	doc document
}

func newJSON(w io.Writer, _ Options) Renderer {
	return &jsonRenderer{w: w, doc: document{Files: []fileRecord{}, Errors: []errorRecord{}}}
}

func (r *jsonRenderer) Begin() error { return nil }

func (r *jsonRenderer) Entry(e Entry) error {
	if !e.OK() {
		r.doc.Errors = append(r.doc.Errors, errorRecord{Path: e.Arg, Error: Reason(e.Err)})
		return nil
	}
	r.doc.Total.Add(e.Result)
	r.doc.Files = append(r.doc.Files, newFileRecord(e))
	return nil
}

func (r *jsonRenderer) End() error {
	enc := json.NewEncoder(r.w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(r.doc)
}

type ndjsonRecord struct {
	fileRecord
	Error string `json:"error,omitempty"`
}

// ndjsonRenderer streams one object per argument
type ndjsonRenderer struct {
	enc *json.Encoder
}

func newNDJSON(w io.Writer, _ Options) Renderer {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &ndjsonRenderer{enc: enc}
}

func (r *ndjsonRenderer) Begin() error { return nil }

func (r *ndjsonRenderer) Entry(e Entry) error {
	if !e.OK() {
		return r.enc.Encode(ndjsonRecord{fileRecord: fileRecord{Path: e.Arg, Extension: scanner.Extension(e.Arg)}, Error: Reason(e.Err)})
	}
	return r.enc.Encode(ndjsonRecord{fileRecord: newFileRecord(e)})
}

func (r *ndjsonRenderer) End() error { return nil }
