// Package fingerprint computes the dedup key for a parsed application.
//
// The hash is a 64-bit FNV-1a accumulated over the UTF-16 code units of the
// identifying fields. It is NOT a cryptographic digest and must never be used
// for authentication; collisions only cost a wrongly skipped duplicate.
package fingerprint

import (
	"fmt"
	"unicode/utf16"
)

const (
	offset64 = 14695981039346656037
	prime64  = 1099511628211

	// fieldSep is mixed in between fields so that ("ab","c") and
	// ("a","bc") hash differently.
	fieldSep = 0x1f
)

// Sum returns a deterministic 16-hex-char fingerprint of the tuple
// (title, company, date, status).
func Sum(title, company, date, status string) string {
	h := uint64(offset64)
	for _, field := range []string{title, company, date, status} {
		for _, u := range utf16.Encode([]rune(field)) {
			h ^= uint64(u)
			h *= prime64
		}
		h ^= fieldSep
		h *= prime64
	}
	return fmt.Sprintf("%016x", h)
}
