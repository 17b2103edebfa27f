//go:build !debug

package errors

// Debug reports whether call sites are captured.
const Debug = false

// Caller returns the zero Location; build with -tags debug to capture call
// sites.
func Caller(skip int) Location {
	return Location{}
}
