package scanner

import "fmt"

// UnsupportedExtensionError is returned for files whose extension has no comment rules
type UnsupportedExtensionError struct {
	Path      string
	Extension string
}

func (e *UnsupportedExtensionError) Error() string {
	return fmt.Sprintf("%q is not a supported file extension", "."+e.Extension)
}

// FileAccessError is returned when a file cannot be opened or read
type FileAccessError struct {
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("could not read %q: %v", e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}
