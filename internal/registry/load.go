package registry

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed extension_to_comment_map
var defaultRules []byte

// Load reads a rule definition file. YAML, TOML and JSON files are decoded
// as structured rules, everything else as the plain-text format.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	format := FormatForPath(path)
	if format == FormatText {
		return parseText(bytes.NewReader(data), path)
	}
	return parseStructured(data, format, path)
}

// Default returns the rules compiled into the binary
func Default() (*Registry, error) {
	return parseText(bytes.NewReader(defaultRules), "built-in")
}

// Resolve finds the rules to use. An explicit path must exist. Otherwise the
// rule file next to the executable wins over the built-in rules.
func Resolve(explicit string) (*Registry, error) {
	if path := strings.TrimSpace(explicit); path != "" {
		return Load(expandTilde(path))
	}

	if path, ok := besideExecutable(); ok {
		return Load(path)
	}
	return Default()
}

// besideExecutable looks for DefaultFilename in the directory of the running binary
func besideExecutable() (string, bool) {
	exe, err := os.Executable()
	if err != nil {
		return "", false
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	candidate := filepath.Join(filepath.Dir(exe), DefaultFilename)
	info, err := os.Stat(candidate)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return candidate, true
}

// expandTilde expands ~ to the user's home directory
func expandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// IsConfigError reports whether err is (or wraps) a ConfigError
func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// Describe renders a rule set the way --list prints it
func Describe(rs RuleSet) string {
	var parts []string
	if len(rs.LineMarkers) > 0 {
		parts = append(parts, "line: "+strings.Join(rs.LineMarkers, " "))
	}
	if len(rs.BlockPairs) > 0 {
		pairs := make([]string, 0, len(rs.BlockPairs))
		for _, p := range rs.BlockPairs {
			pairs = append(pairs, fmt.Sprintf("%s %s", p.Start, p.End))
		}
		parts = append(parts, "block: "+strings.Join(pairs, ", "))
	}
	if len(parts) == 0 {
		return "no comments"
	}
	return strings.Join(parts, "; ")
}
