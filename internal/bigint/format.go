package bigint

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// limbSep separates limbs in the diagnostic rendering.
const limbSep = '_'

// String returns the diagnostic rendering of x: a sign character followed
// by the limbs of |x| in hexadecimal, most significant first, each padded
// to the full limb width and separated by '_'. It is meant for logs and
// has no parsing counterpart; use Text and SetString for a textual form.
func (x *Int) String() string {
	if x == nil {
		return "<nil>"
	}
	m := x.abs.logical()
	if len(m) == 0 {
		m = nat{0}
	}
	var b strings.Builder
	b.Grow(1 + len(m)*(_W/4+1))
	if x.Sign() < 0 {
		b.WriteByte('-')
	} else {
		b.WriteByte('+')
	}
	for i := len(m) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "%0*x", _W/4, uint(m[i]))
		if i > 0 {
			b.WriteByte(limbSep)
		}
	}
	return b.String()
}

// Format implements fmt.Formatter. %v and %s print the diagnostic form;
// %b, %o, %d, %x and %X print the value in base 2, 8, 10 or 16.
func (x *Int) Format(s fmt.State, ch rune) {
	if x == nil {
		io.WriteString(s, "<nil>")
		return
	}
	var text string
	switch ch {
	case 'v', 's':
		text = x.String()
	case 'b':
		text = x.Text(2)
	case 'o':
		text = x.Text(8)
	case 'd':
		text = x.Text(10)
	case 'x':
		text = x.Text(16)
	case 'X':
		text = strings.ToUpper(x.Text(16))
	default:
		fmt.Fprintf(s, "%%!%c(bigint.Int=%s)", ch, x.String())
		return
	}
	if w, ok := s.Width(); ok && len(text) < w {
		pad := strings.Repeat(" ", w-len(text))
		if s.Flag('-') {
			text += pad
		} else {
			text = pad + text
		}
	}
	io.WriteString(s, text)
}

// Text returns x in the given base, 2 through 36, using lower-case letters
// for digits above 9. A negative value is prefixed with '-'.
func (x *Int) Text(base int) string {
	if base < 2 || base > 36 {
		precondition("Text", ErrInvalidBase)
	}
	m := x.abs.logical()
	if len(m) == 0 {
		return "0"
	}

	bb, ndigits := maxPow(Word(base))
	var chunks []Word
	q := m.clone()
	for len(q) > 0 {
		var r Word
		q, r = q.shortDiv(q, bb)
		chunks = append(chunks, r)
	}

	var b strings.Builder
	if x.neg {
		b.WriteByte('-')
	}
	b.WriteString(strconv.FormatUint(uint64(chunks[len(chunks)-1]), base))
	for i := len(chunks) - 2; i >= 0; i-- {
		d := strconv.FormatUint(uint64(chunks[i]), base)
		b.WriteString(strings.Repeat("0", ndigits-len(d)))
		b.WriteString(d)
	}
	return b.String()
}

// maxPow returns the largest power of b that fits a Word and its exponent.
func maxPow(b Word) (p Word, n int) {
	p, n = b, 1
	for {
		hi, lo := mulAddWWW(p, b, 0)
		if hi != 0 {
			return p, n
		}
		p = lo
		n++
	}
}

// SetString sets z to the value of s in the given base and returns z.
//
// s may start with '+' or '-'. Base 0 selects the base from a 0x, 0o or 0b
// prefix and defaults to 10; only then may '_' separate digits. On failure
// z is unchanged and a *SyntaxError is returned.
func (z *Int) SetString(s string, base int) (*Int, error) {
	fail := &SyntaxError{Input: s, Base: base}
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	underscores := false
	// sawDigit tracks whether '_' may follow; a base prefix counts.
	sawDigit := false
	if base == 0 {
		underscores = true
		base = 10
		if len(s) > 2 && s[0] == '0' {
			switch s[1] {
			case 'x', 'X':
				base, s, sawDigit = 16, s[2:], true
			case 'o', 'O':
				base, s, sawDigit = 8, s[2:], true
			case 'b', 'B':
				base, s, sawDigit = 2, s[2:], true
			}
		}
	}
	if base < 2 || base > 36 || s == "" {
		return z, fail
	}

	var abs nat
	digits := 0
	lastUnderscore := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == '_' && underscores {
			if !sawDigit || lastUnderscore {
				return z, fail
			}
			lastUnderscore = true
			continue
		}
		d := digitVal(ch)
		if d >= base {
			return z, fail
		}
		abs = abs.mulAddWord(Word(base), Word(d))
		digits++
		sawDigit, lastUnderscore = true, false
	}
	if digits == 0 || lastUnderscore {
		return z, fail
	}

	z.abs = z.abs.set(abs)
	z.neg = neg
	return z.canon(), nil
}

func digitVal(ch byte) int {
	switch {
	case '0' <= ch && ch <= '9':
		return int(ch - '0')
	case 'a' <= ch && ch <= 'z':
		return int(ch-'a') + 10
	case 'A' <= ch && ch <= 'Z':
		return int(ch-'A') + 10
	}
	return 36
}
