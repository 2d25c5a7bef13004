package stylesheet

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// unescapeIdent resolves CSS escapes in a class identifier.
//
//	hover\:p-4  => hover:p-4
//	w-1\/2      => w-1/2
//	\32 xl\:p-4 => 2xl:p-4
func unescapeIdent(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}

		// hex escape: up to 6 hex digits, optionally followed by one whitespace
		j := i + 1
		for j < len(s) && j-i-1 < 6 && isHex(s[j]) {
			j++
		}
		if j > i+1 {
			code, err := strconv.ParseUint(s[i+1:j], 16, 32)
			if err != nil || code == 0 || code > utf8.MaxRune {
				b.WriteRune(utf8.RuneError)
			} else {
				b.WriteRune(rune(code))
			}
			if j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n') {
				j++
			}
			i = j - 1
			continue
		}

		b.WriteByte(s[i+1])
		i++
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
