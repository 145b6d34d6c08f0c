package registry

import "fmt"

// ConfigError reports a rule definition that is missing, unreadable or malformed.
// No file can be scanned correctly without valid rules, so callers treat it as fatal.
type ConfigError struct {
	Path string // empty for in-memory sources
	Line int    // 1-based line of the offending record, 0 when unknown
	Err  error
}

func (e *ConfigError) Error() string {
	path := e.Path
	if path == "" {
		path = "<rules>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("comment rules %s:%d: %v", path, e.Line, e.Err)
	}
	return fmt.Sprintf("comment rules %s: %v", path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
