package scan

import "unicode/utf8"

const sniffLen = 8000

// isBinary reports whether data looks like binary rather than source text.
// Only the first sniffLen bytes are inspected: a NUL byte or invalid UTF-8
// marks the file as binary.
func isBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if len(data) > sniffLen {
		data = data[:sniffLen]
	}
	if !utf8.Valid(data) {
		return true
	}
	for _, b := range data {
		if b == 0 {
			return true
		}
	}
	return false
}
