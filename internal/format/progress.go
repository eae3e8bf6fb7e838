package format

import "strings"

// ProgressBar renders a bar of the given width for a fraction in [0, 1].
// Out-of-range fractions are clamped.
func ProgressBar(fraction float64, width int) string {
	fraction = min(max(fraction, 0), 1)
	filled := int(fraction * float64(width))
	var b strings.Builder
	b.Grow(width * 3)
	for i := range width {
		if i < filled {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}
	return b.String()
}
