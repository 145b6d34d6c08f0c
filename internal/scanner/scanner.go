package scanner

import (
	"bufio"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gubarz/sloc/internal/registry"
)

// Result holds the line counts of one scanned file
type Result struct {
	Path      string `json:"path"`
	Extension string `json:"extension"`
	Total     int    `json:"total"`
	Code      int    `json:"code"`
	Blank     int    `json:"blank"`
	Comment   int    `json:"comment"`
	// Unterminated is set when the file ended inside a block comment
	Unterminated bool `json:"unterminated,omitempty"`
}

func (r *Result) count(kind LineKind) {
	r.Total++
	switch kind {
	case Blank:
		r.Blank++
	case Comment:
		r.Comment++
	default:
		r.Code++
	}
}

// Scanner counts lines of files using the comment rules of a registry
type Scanner struct {
	rules  *registry.Registry
	logger *log.Logger
}

// Option configures a Scanner
type Option func(*Scanner)

// WithLogger sets the logger used for scan diagnostics
func WithLogger(l *log.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a scanner backed by rules
func New(rules *registry.Registry, opts ...Option) *Scanner {
	s := &Scanner{
		rules:  rules,
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Extension returns the text after the last dot of the file name, or "" when there is none
func Extension(path string) string {
	base := filepath.Base(path)
	idx := strings.LastIndex(base, ".")
	if idx == -1 {
		return ""
	}
	return base[idx+1:]
}

// ScanFile classifies every line of the file at path.
// It returns an *UnsupportedExtensionError when the registry has no rules for
// the file's extension and a *FileAccessError when the file cannot be read.
func (s *Scanner) ScanFile(path string) (Result, error) {
	ext := Extension(path)
	rules, ok := s.rules.Lookup(ext)
	if !ok {
		return Result{}, &UnsupportedExtensionError{Path: path, Extension: ext}
	}

	file, err := os.Open(path)
	if err != nil {
		return Result{}, &FileAccessError{Path: path, Err: err}
	}
	defer file.Close()

	result, err := Scan(file, rules)
	if err != nil {
		return Result{}, &FileAccessError{Path: path, Err: err}
	}
	result.Path = path
	result.Extension = ext

	if result.Unterminated {
		s.logger.Printf("warning: %s ends inside a block comment", path)
	}
	s.logger.Printf("%s: %d lines (%d code, %d blank, %d comment)",
		path, result.Total, result.Code, result.Blank, result.Comment)
	return result, nil
}

// Scan classifies the lines read from r with the given rules.
// Lines end at "\n"; a final line without one still counts.
func Scan(r io.Reader, rules registry.RuleSet) (Result, error) {
	var result Result
	c := NewClassifier(rules)

	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			result.count(c.Classify(strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, err
		}
	}

	result.Unterminated = c.InsideBlock()
	return result, nil
}
