package scanner

import (
	"strings"

	"github.com/gubarz/sloc/internal/registry"
)

const whitespace = " \t\n\v\f\r"

// LineKind is the classification of a single line
type LineKind int

const (
	Code LineKind = iota
	Blank
	Comment
)

func (k LineKind) String() string {
	switch k {
	case Blank:
		return "blank"
	case Comment:
		return "comment"
	default:
		return "code"
	}
}

// Classifier is the per-file state machine. It is either in normal state or
// inside a block comment waiting for that block's end marker. Nested blocks
// are not tracked.
type Classifier struct {
	rules       registry.RuleSet
	insideBlock bool
	blockEnd    string
}

// NewClassifier returns a classifier in normal state
func NewClassifier(rules registry.RuleSet) *Classifier {
	return &Classifier{rules: rules}
}

// InsideBlock reports whether the last classified line left a block comment open
func (c *Classifier) InsideBlock() bool {
	return c.insideBlock
}

// Classify returns the kind of line and advances the state machine
func (c *Classifier) Classify(line string) LineKind {
	if c.insideBlock {
		if strings.HasSuffix(strings.TrimRight(line, whitespace), c.blockEnd) {
			c.insideBlock = false
			c.blockEnd = ""
		}
		return Comment
	}

	body := strings.Trim(line, whitespace)
	if body == "" {
		return Blank
	}

	for _, marker := range c.rules.LineMarkers {
		if strings.HasPrefix(body, marker) {
			return Comment
		}
	}

	for _, pair := range c.rules.BlockPairs {
		if !strings.HasPrefix(body, pair.Start) {
			continue
		}
		// a line that also ends with the end marker opens and closes on itself
		if !strings.HasSuffix(body, pair.End) {
			c.insideBlock = true
			c.blockEnd = pair.End
		}
		return Comment
	}

	// code followed by a block comment that opens and closes on this line
	for _, pair := range c.rules.BlockPairs {
		idx := strings.Index(body, pair.Start)
		if idx > 0 && strings.HasSuffix(body[idx+len(pair.Start):], pair.End) {
			return Comment
		}
	}

	return Code
}
