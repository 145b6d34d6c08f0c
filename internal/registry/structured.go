package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// RuleSpec is the structured form of one rule record, used by YAML/TOML/JSON
// rule files and by the extra_rules config key.
type RuleSpec struct {
	Extensions []string   `yaml:"extensions" toml:"extensions" json:"extensions" mapstructure:"extensions"`
	Line       []string   `yaml:"line" toml:"line" json:"line" mapstructure:"line"`
	Block      [][]string `yaml:"block" toml:"block" json:"block" mapstructure:"block"`
}

type ruleFile struct {
	Rules []RuleSpec `yaml:"rules" toml:"rules" json:"rules"`
}

// Format identifies the encoding of a rule definition file
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatForPath picks the rule file format from its extension.
// Anything that is not YAML, TOML or JSON is read as the plain-text format.
func FormatForPath(path string) Format {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lower, ".toml"):
		return FormatTOML
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON
	default:
		return FormatText
	}
}

func parseStructured(data []byte, format Format, path string) (*Registry, error) {
	var file ruleFile
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &file)
	case FormatTOML:
		err = toml.Unmarshal(data, &file)
	case FormatJSON:
		err = json.Unmarshal(data, &file)
	default:
		err = fmt.Errorf("unsupported rule format: %s", format)
	}
	if err != nil {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("parse %s: %w", format, err)}
	}

	reg, err := buildFromSpecs(file.Rules, path)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// FromSpecs builds a registry from structured rule records
func FromSpecs(specs []RuleSpec, source string) (*Registry, error) {
	return buildFromSpecs(specs, source)
}

func buildFromSpecs(specs []RuleSpec, source string) (*Registry, error) {
	reg := newRegistry(source)
	for i, spec := range specs {
		rs, err := spec.ruleSet()
		if err != nil {
			return nil, &ConfigError{Path: source, Err: fmt.Errorf("rule %d: %w", i+1, err)}
		}
		reg.add(spec.Extensions, rs)
	}
	return reg, nil
}

func (s RuleSpec) ruleSet() (*RuleSet, error) {
	if len(s.Extensions) == 0 {
		return nil, errors.New("no extensions listed")
	}
	for _, ext := range s.Extensions {
		if strings.TrimSpace(ext) == "" || strings.ContainsAny(ext, whitespace) {
			return nil, fmt.Errorf("invalid extension %q", ext)
		}
	}

	rs := &RuleSet{}
	for _, marker := range s.Line {
		if marker == "" || strings.ContainsAny(marker, whitespace) {
			return nil, fmt.Errorf("invalid line comment marker %q", marker)
		}
		rs.LineMarkers = append(rs.LineMarkers, marker)
	}
	for _, pair := range s.Block {
		if len(pair) != 2 {
			return nil, fmt.Errorf("block comment pair %v must have exactly a start and an end", pair)
		}
		if pair[0] == "" || pair[1] == "" || strings.ContainsAny(pair[0]+pair[1], whitespace) {
			return nil, fmt.Errorf("invalid block comment pair %q", pair)
		}
		rs.BlockPairs = append(rs.BlockPairs, BlockPair{Start: pair[0], End: pair[1]})
	}
	return rs, nil
}
