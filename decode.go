package ttynamed

import (
	"strconv"
	"strings"
)

// DecodeProperty converts udev encoded strings with embedded hex escapes like
// "hello\x20world" to "hello world". Each escaped byte becomes the character
// with that code point. An escape whose two characters are not hex digits
// decodes to '?'.
func DecodeProperty(raw string) string {
	if !strings.Contains(raw, `\x`) {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); {
		if raw[i] == '\\' && i+3 < len(raw) && raw[i+1] == 'x' {
			if v, err := strconv.ParseUint(raw[i+2:i+4], 16, 8); err == nil {
				b.WriteRune(rune(v))
			} else {
				b.WriteByte('?')
			}
			i += 4
			continue
		}
		b.WriteByte(raw[i])
		i++
	}
	return b.String()
}
