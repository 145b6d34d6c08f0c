package registry

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	commentToken = "#sloc#"
	whitespace   = " \t\n\v\f\r"
)

// record stages
const (
	wantHeader = iota
	wantLineMarkers
	wantBlockMarkers
)

// Parse reads the plain-text rule format:
//
//	FILE_EXTENSION ...
//	LINE_COMMENT ...
//	BLOCK_COMMENT_START BLOCK_COMMENT_END ...
//
// Lines starting with "#sloc#" and blank lines between records are ignored.
// Both marker lines always follow an extension line, even when empty.
func Parse(r io.Reader) (*Registry, error) {
	return parseText(r, "")
}

func parseText(r io.Reader, path string) (*Registry, error) {
	reg := newRegistry(path)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		extensions []string
		current    *RuleSet
		stage      = wantHeader
		lineNo     int
		headerLine int
	)

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		switch stage {
		case wantLineMarkers:
			current.LineMarkers = strings.Fields(line)
			stage = wantBlockMarkers
			continue
		case wantBlockMarkers:
			pairs, err := parseBlockPairs(line)
			if err != nil {
				return nil, &ConfigError{Path: path, Line: lineNo, Err: err}
			}
			current.BlockPairs = pairs
			reg.add(extensions, current)
			stage = wantHeader
			continue
		}

		if strings.HasPrefix(line, commentToken) || strings.TrimLeft(line, whitespace) == "" {
			continue
		}

		extensions = strings.Fields(line)
		current = &RuleSet{}
		stage = wantLineMarkers
		headerLine = lineNo
	}
	if err := scanner.Err(); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	if stage != wantHeader {
		missing := "line and block comment lines"
		if stage == wantBlockMarkers {
			missing = "block comment line"
		}
		return nil, &ConfigError{
			Path: path,
			Line: headerLine,
			Err:  fmt.Errorf("record for %q is missing its %s", strings.Join(extensions, " "), missing),
		}
	}

	return reg, nil
}

// parseBlockPairs splits a flattened "start end start end" line into pairs
func parseBlockPairs(line string) ([]BlockPair, error) {
	tokens := strings.Fields(line)
	if len(tokens)%2 != 0 {
		return nil, errors.New("block comment markers must come in start/end pairs")
	}
	pairs := make([]BlockPair, 0, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		pairs = append(pairs, BlockPair{Start: tokens[i], End: tokens[i+1]})
	}
	return pairs, nil
}
