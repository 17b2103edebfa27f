package errors

import (
	"fmt"
	"path/filepath"
)

// Location is the call site that raised an error. Cursors fill it only when
// built with -tags debug; it never takes part in error equality.
type Location struct {
	File     string
	Line     int
	Function string
}

// Valid reports whether the location was captured.
func (l Location) Valid() bool {
	return l.File != ""
}

func (l Location) String() string {
	if !l.Valid() {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(l.File), l.Line)
}
