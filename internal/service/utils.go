package service

import (
	"strconv"
	"strings"
)

// sanitizeUTF8 drops invalid UTF-8 sequences, the way text previews are
// read with errors ignored.
func sanitizeUTF8(s string) string {
	return strings.ToValidUTF8(s, "")
}

// firstRunes returns at most n runes of s and whether s was longer.
func firstRunes(s string, n int) (string, bool) {
	count := 0
	for i := range s {
		if count == n {
			return s[:i], true
		}
		count++
	}
	return s, false
}

// groupThousands renders n with comma separators: 1234567 -> "1,234,567".
func groupThousands(n int64) string {
	digits := strconv.FormatInt(n, 10)
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}

	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + b.String()
}
