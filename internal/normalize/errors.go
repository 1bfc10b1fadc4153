package normalize

import "fmt"

// SourceError reports a failure to parse one import source (a standalone
// file or a single archive member).
type SourceError struct {
	Name    string // filename or archive member name
	Message string
	Cause   error
}

func (e *SourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("import source %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("import source %s: %s", e.Name, e.Message)
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}

// UnsupportedFormatError reports a file whose extension is not an accepted
// import format.
type UnsupportedFormatError struct {
	Name string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported import format: %s (expected .csv, .zip, .json, .html or .pdf)", e.Name)
}
