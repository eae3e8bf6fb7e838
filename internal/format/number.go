package format

import (
	"fmt"
	"strings"
)

// FormatNumberString inserts thousands separators into a decimal string with
// an optional leading sign.
func FormatNumberString(s string) string {
	sign := ""
	if s != "" && (s[0] == '-' || s[0] == '+') {
		sign, s = s[:1], s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	b.Grow(len(sign) + len(s) + len(s)/3)
	b.WriteString(sign)
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > len(sign) {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// Truncate shortens s to its first and last edges characters when it is
// longer than limit, reporting how many characters were elided. A limit of
// zero or less disables truncation.
func Truncate(s string, limit, edges int) (string, int) {
	if limit <= 0 || len(s) <= limit || 2*edges >= len(s) {
		return s, 0
	}
	elided := len(s) - 2*edges
	return s[:edges] + "..." + s[len(s)-edges:], elided
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
