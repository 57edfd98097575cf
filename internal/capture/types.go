// Package capture resolves the capture time of photo files.
//
// A file's capture time is looked up with an ordered list of methods:
//
//   - exif:     DateTimeOriginal / DateTime from embedded EXIF metadata
//   - filename: dates encoded in camera file names (DJI, Sony, generic)
//   - stat:     the filesystem modification time
//
// The first method that yields a time wins. A file no method can date is
// returned unresolved, never as an error.
package capture

import (
	"fmt"
	"strings"
	"time"
)

// Method names a capture time lookup strategy.
type Method string

const (
	MethodExif     Method = "exif"
	MethodFilename Method = "filename"
	MethodStat     Method = "stat"
)

// ParseMethod converts a method name into a Method.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case MethodExif, MethodFilename, MethodStat:
		return m, nil
	default:
		return "", fmt.Errorf("unknown capture method %q", s)
	}
}

// Record is the outcome of resolving one file.
type Record struct {
	File     string
	Captured time.Time
	Resolved bool
	Method   Method // empty when unresolved
}

// Unresolved returns a Record for a file without a capture time.
func Unresolved(file string) Record { return Record{File: file} }
