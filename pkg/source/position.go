package source

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// PositionInfo is the human-readable location of a byte offset in a text.
// It is derived on demand and never cached by the cursors.
type PositionInfo struct {
	Line           uint32 // 1-based line number
	Column         uint32 // 0-based count of characters since the last newline
	LineStartIndex int    // byte offset of the first character of Line
	Index          int    // the byte offset that was resolved
}

func (p PositionInfo) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Resolve computes the position of index by re-scanning text from the start.
// It is O(index) and meant for the error path only. An index past the end of
// text resolves to the end-of-text position; Index still reports the query.
func Resolve(text string, index int) PositionInfo {
	pos := PositionInfo{Line: 1, Index: index}
	for i := 0; i < index && i < len(text); {
		r, w := utf8.DecodeRuneInString(text[i:])
		i += w
		if r == '\n' {
			pos.Line++
			pos.Column = 0
			pos.LineStartIndex = i
		} else {
			pos.Column++
		}
	}
	return pos
}

// LineIndex is a table of line-start offsets built once for a text. It answers
// the same queries as Resolve without re-scanning from the beginning, which
// matters when many diagnostics are rendered against one source.
type LineIndex struct {
	text   string
	starts []int // starts[n] is the byte offset of line n+1
}

// NewLineIndex scans text once and records where every line begins.
func NewLineIndex(text string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{text: text, starts: starts}
}

// Lines returns the number of lines, counting a trailing empty line.
func (li *LineIndex) Lines() int {
	return len(li.starts)
}

// Position returns the same PositionInfo that Resolve(text, index) would.
func (li *LineIndex) Position(index int) PositionInfo {
	end := index
	if end > len(li.text) {
		end = len(li.text)
	}
	if end < 0 {
		end = 0
	}
	// Last line whose start is <= end. A newline at end-1 already opened the
	// next line, matching Resolve which consumes every rune below index.
	n := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > end }) - 1

	pos := PositionInfo{
		Line:           uint32(n + 1),
		LineStartIndex: li.starts[n],
		Index:          index,
	}
	for i := li.starts[n]; i < end; {
		_, w := utf8.DecodeRuneInString(li.text[i:])
		i += w
		pos.Column++
	}
	return pos
}

// LineStart returns the byte offset where the 1-based line n begins.
func (li *LineIndex) LineStart(n int) (int, bool) {
	if n < 1 || n > len(li.starts) {
		return 0, false
	}
	return li.starts[n-1], true
}
