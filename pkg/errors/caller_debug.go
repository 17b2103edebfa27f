//go:build debug

package errors

import "runtime"

// Debug reports whether call sites are captured.
const Debug = true

// Caller returns the location skip frames above its caller: Caller(0) is the
// line calling Caller, Caller(1) that function's caller, and so on.
func Caller(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{}
	}
	loc := Location{File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		loc.Function = fn.Name()
	}
	return loc
}
