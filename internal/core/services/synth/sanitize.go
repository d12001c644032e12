package synth

import (
	"regexp"
	"strings"
)

const fence = "```"

var declarationPattern = regexp.MustCompile(`\btest(?:\.(?:only|skip|fixme|fail|describe))?\s*\(`)

// StripFences removes one markdown code fence wrapping the response, if any.
// The whole first line is the opener whatever its info string. Fences
// anywhere else are left alone.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, fence) {
		opener, rest, found := strings.Cut(s, "\n")
		switch {
		case found:
			s = rest
		case strings.TrimSpace(opener) == fence:
			s = ""
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, fence)
	return strings.TrimSpace(s)
}

// CountDeclarations counts test declarations such as test(, test.only( or test.describe(.
func CountDeclarations(source string) int {
	return len(declarationPattern.FindAllStringIndex(source, -1))
}
