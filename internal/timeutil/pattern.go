package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// DefaultPattern is the pattern used when none is given
const DefaultPattern = "yyyy-MM-dd HH:mm:ss"

// FormatPattern renders t using date-fns style tokens:
//
//	yyyy yy       year
//	M MM MMM MMMM month (1, 01, Jan, January)
//	d dd          day of month
//	E..EEE EEEE   weekday (Mon, Monday)
//	H HH h hh     hour (24h, 12h)
//	m mm s ss     minute, second
//	S..SSSSSSSSS  fraction of a second
//	a             AM/PM
//	x xx xxx      offset (-07, -0700, -07:00)
//	X XX XXX      offset, Z for UTC
//
// Text inside single quotes is copied verbatim; '' is a literal quote.
// Any other character is copied as is.
func FormatPattern(t time.Time, pattern string) string {
	var b strings.Builder
	runes := []rune(pattern)
	for i := 0; i < len(runes); {
		c := runes[i]

		if c == '\'' {
			i = quoted(runes, i, &b)
			continue
		}

		n := 1
		for i+n < len(runes) && runes[i+n] == c {
			n++
		}
		if !token(t, c, n, &b) {
			b.WriteString(string(runes[i : i+n]))
		}
		i += n
	}
	return b.String()
}

// quoted copies a quoted literal starting at runes[i] and returns the index after it
func quoted(runes []rune, i int, b *strings.Builder) int {
	if i+1 < len(runes) && runes[i+1] == '\'' {
		b.WriteRune('\'')
		return i + 2
	}
	j := i + 1
	for j < len(runes) {
		if runes[j] == '\'' {
			if j+1 < len(runes) && runes[j+1] == '\'' {
				b.WriteRune('\'')
				j += 2
				continue
			}
			return j + 1
		}
		b.WriteRune(runes[j])
		j++
	}
	return j
}

func token(t time.Time, c rune, n int, b *strings.Builder) bool {
	switch c {
	case 'y':
		if n == 2 {
			fmt.Fprintf(b, "%02d", t.Year()%100)
		} else {
			fmt.Fprintf(b, "%0*d", n, t.Year())
		}
	case 'M':
		switch {
		case n >= 4:
			b.WriteString(t.Month().String())
		case n == 3:
			b.WriteString(t.Format("Jan"))
		default:
			fmt.Fprintf(b, "%0*d", n, int(t.Month()))
		}
	case 'd':
		fmt.Fprintf(b, "%0*d", n, t.Day())
	case 'E':
		if n >= 4 {
			b.WriteString(t.Weekday().String())
		} else {
			b.WriteString(t.Format("Mon"))
		}
	case 'H':
		fmt.Fprintf(b, "%0*d", n, t.Hour())
	case 'h':
		h := t.Hour() % 12
		if h == 0 {
			h = 12
		}
		fmt.Fprintf(b, "%0*d", n, h)
	case 'm':
		fmt.Fprintf(b, "%0*d", n, t.Minute())
	case 's':
		fmt.Fprintf(b, "%0*d", n, t.Second())
	case 'S':
		if n > 9 {
			n = 9
		}
		frac := fmt.Sprintf("%09d", t.Nanosecond())
		b.WriteString(frac[:n])
	case 'a':
		b.WriteString(t.Format("PM"))
	case 'x', 'X':
		b.WriteString(offset(t, n, c == 'X'))
	default:
		return false
	}
	return true
}

func offset(t time.Time, n int, zulu bool) string {
	_, secs := t.Zone()
	if zulu && secs == 0 {
		return "Z"
	}
	switch n {
	case 1:
		if secs%3600 == 0 {
			return t.Format("-07")
		}
		return t.Format("-0700")
	case 2:
		return t.Format("-0700")
	default:
		return t.Format("-07:00")
	}
}
