package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/multierr"
	"golang.org/x/text/width"

	"github.com/nooga/lexkit/pkg/source"
)

// Display writes err to w in a user-friendly format, including the source line
// and a position marker. Errors combined with multierr are printed one after
// another. Errors that did not come from a cursor are printed as-is.
func Display(w io.Writer, f *source.File, err error) {
	for _, e := range multierr.Errors(err) {
		var d Diagnostic
		if !stderrors.As(e, &d) {
			fmt.Fprintf(w, "Error: %s\n\n", e)
			continue
		}

		pos := positionIn(f, d)

		// Format: <Phase> Error at <path>:<Line>:<Column>: <Message>
		// Column is printed 1-based, like editors do.
		fmt.Fprintf(w, "%s Error at %s:%d:%d: %s\n", d.Phase(), f.DisplayPath(), pos.Line, pos.Column+1, d.Message())

		if line, ok := f.Line(int(pos.Line)); ok {
			fmt.Fprintf(w, "  %s\n", strings.TrimRight(line, "\t "))
			fmt.Fprintf(w, "  %s^\n", marker(line, int(pos.Column)))
		}
		if loc := d.Where(); loc.Valid() {
			fmt.Fprintf(w, "  raised at %s\n", loc)
		}
		fmt.Fprintln(w)
	}
}

// marker returns the padding that puts a caret under the column-th character
// of line. Tabs are kept so the terminal expands them the same way, and East
// Asian wide characters take two cells.
func marker(line string, column int) string {
	var b strings.Builder
	n := 0
	for _, r := range line {
		if n == column {
			break
		}
		switch {
		case r == '\t':
			b.WriteByte('\t')
		case isWide(r):
			b.WriteString("  ")
		default:
			b.WriteByte(' ')
		}
		n++
	}
	if n < column {
		b.WriteString(strings.Repeat(" ", column-n))
	}
	return b.String()
}

func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}
