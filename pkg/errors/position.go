package errors

import "github.com/nooga/lexkit/pkg/source"

// Position resolves the error's byte offset against the text it was raised
// on. The text is re-scanned from the start on every call.
func (e *TokenizeError) Position(text string) source.PositionInfo {
	return source.Resolve(text, int(e.Index))
}

// Position resolves the offending token's offset against text. It reports
// false for end-of-input errors, which have no token.
func (e *ParseError[K]) Position(text string) (source.PositionInfo, bool) {
	off, ok := e.Offset()
	if !ok {
		return source.PositionInfo{}, false
	}
	return source.Resolve(text, int(off)), true
}

// positionIn resolves d against f, placing offset-less errors at end of text.
func positionIn(f *source.File, d Diagnostic) source.PositionInfo {
	off, ok := d.Offset()
	if !ok {
		return f.Position(len(f.Content))
	}
	return f.Position(int(off))
}
