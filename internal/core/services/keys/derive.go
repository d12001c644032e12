// Package keys turns target URLs into artifact identifiers.
//
// A key is the URL with every character outside [A-Za-z0-9] replaced by an
// underscore, cut to maxPrefix characters, followed by a short SHA-256 digest
// of the untouched URL. The prefix keeps filenames readable. The digest keeps
// URLs that only differ in replaced characters (a.b vs a_b) apart, so a
// collision needs a digest collision on top of identical prefixes.
package keys

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	maxPrefix = 96
	digestLen = 12
)

// Derive returns the artifact key for url. It is total and deterministic.
func Derive(url string) string {
	var b strings.Builder
	b.Grow(maxPrefix + 1 + digestLen)
	for i := 0; i < len(url) && b.Len() < maxPrefix; i++ {
		c := url[i]
		if isAlnum(c) {
			b.WriteByte(c)
		} else {
			b.WriteByte('_')
		}
	}

	sum := sha256.Sum256([]byte(url))
	b.WriteByte('_')
	b.WriteString(hex.EncodeToString(sum[:])[:digestLen])
	return b.String()
}

// Valid reports whether key only uses the characters Derive emits.
func Valid(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		if !isAlnum(key[i]) && key[i] != '_' {
			return false
		}
	}
	return true
}

func isAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
