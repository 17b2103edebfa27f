package source

import (
	"path/filepath"
	"strings"
)

// File represents a source text with its name and metadata
type File struct {
	Name    string // Display name (e.g., "query.sql", "<input>")
	Path    string // Full file path (empty for in-memory input)
	Content string // The text the cursors scan

	index *LineIndex // Cached line table (lazy initialization)
}

// New creates a new source file
func New(name, path, content string) *File {
	return &File{
		Name:    name,
		Path:    path,
		Content: content,
	}
}

// FromString creates a source for in-memory text
func FromString(content string) *File {
	return New("<input>", "", content)
}

// FromFile creates a File from a file path and content
func FromFile(filePath, content string) *File {
	return New(filepath.Base(filePath), filePath, content)
}

// DisplayPath returns the best path for display (prefers Path, falls back to Name)
func (f *File) DisplayPath() string {
	if f.Path != "" {
		return f.Path
	}
	return f.Name
}

// IsFile returns true if this represents an actual file (has a path)
func (f *File) IsFile() bool {
	return f.Path != ""
}

// Lines returns the cached line table.
func (f *File) Lines() *LineIndex {
	if f.index == nil {
		f.index = NewLineIndex(f.Content)
	}
	return f.index
}

// Line returns the text of the 1-based line n without its line terminator.
func (f *File) Line(n int) (string, bool) {
	li := f.Lines()
	start, ok := li.LineStart(n)
	if !ok {
		return "", false
	}
	end := len(f.Content)
	if next, ok := li.LineStart(n + 1); ok {
		end = next - 1
	}
	return strings.TrimSuffix(f.Content[start:end], "\r"), true
}

// Position resolves a byte offset using the cached line table.
func (f *File) Position(index int) PositionInfo {
	return f.Lines().Position(index)
}
