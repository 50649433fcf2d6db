// Package encoder serializes models.Value trees back to JSON text.
//
// The compact form produced by Marshal is the canonical serialization used for
// deep-equality: object members keep their order, numbers are normalised and
// HTML characters are left unescaped.
package encoder

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mcncl/devkit/internal/models"
)

// Marshal returns the compact canonical form of v
func Marshal(v models.Value) []byte {
	e := &encoder{}
	e.value(v, 0)
	return e.buf.Bytes()
}

// MarshalString is Marshal returning a string
func MarshalString(v models.Value) string {
	return string(Marshal(v))
}

// MarshalIndent returns v with each nesting level indented by the given number of spaces.
// An indent of 0 or less produces the compact form.
func MarshalIndent(v models.Value, indent int) []byte {
	e := &encoder{}
	if indent > 0 {
		e.indent = strings.Repeat(" ", indent)
	}
	e.value(v, 0)
	return e.buf.Bytes()
}

type encoder struct {
	buf    bytes.Buffer
	indent string
}

func (e *encoder) value(v models.Value, depth int) {
	switch v.Kind() {
	case models.NullKind:
		e.buf.WriteString("null")
	case models.BoolKind:
		e.buf.WriteString(strconv.FormatBool(v.Bool()))
	case models.NumberKind:
		e.buf.WriteString(CanonicalNumber(v.Number()))
	case models.StringKind:
		e.str(v.Str())
	case models.ArrayKind:
		items := v.Items()
		if len(items) == 0 {
			e.buf.WriteString("[]")
			return
		}
		e.buf.WriteByte('[')
		for i, item := range items {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			e.newline(depth + 1)
			e.value(item, depth+1)
		}
		e.newline(depth)
		e.buf.WriteByte(']')
	case models.ObjectKind:
		members := v.Members()
		if len(members) == 0 {
			e.buf.WriteString("{}")
			return
		}
		e.buf.WriteByte('{')
		for i, m := range members {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			e.newline(depth + 1)
			e.str(m.Key)
			e.buf.WriteByte(':')
			if e.indent != "" {
				e.buf.WriteByte(' ')
			}
			e.value(m.Value, depth+1)
		}
		e.newline(depth)
		e.buf.WriteByte('}')
	}
}

func (e *encoder) newline(depth int) {
	if e.indent == "" {
		return
	}
	e.buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		e.buf.WriteString(e.indent)
	}
}

func (e *encoder) str(s string) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	// Encoding a Go string cannot fail.
	_ = enc.Encode(s)
	e.buf.Write(bytes.TrimSuffix(b.Bytes(), []byte("\n")))
}

// CanonicalNumber normalises a JSON number literal.
// Integer literals below 1e21 are kept verbatim so large IDs do not lose precision.
// Longer integers switch to exponent form using their exact digits, which makes
// 100000000000000000000000 and 1e23 canonicalise to the same 1e+23.
// Anything with a fraction or exponent is re-emitted in shortest float64 form,
// so 1.0 becomes 1, 1e2 becomes 100 and 0.0000001 becomes 1e-7.
func CanonicalNumber(n json.Number) string {
	lit := string(n)
	if !strings.ContainsAny(lit, ".eE") {
		if lit == "-0" {
			return "0"
		}
		return largeInteger(lit)
	}

	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		// Out of float64 range; keep what the author wrote.
		return lit
	}
	if f == 0 {
		return "0"
	}

	abs := f
	if abs < 0 {
		abs = -abs
	}
	if abs >= 1e21 || abs < 1e-6 {
		return trimExponent(strconv.FormatFloat(f, 'e', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// largeInteger rewrites integers of 22 or more digits as d.ddde+N.
func largeInteger(lit string) string {
	sign, digits := "", lit
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 21 {
		return lit
	}
	mantissa := digits[:1]
	if frac := strings.TrimRight(digits[1:], "0"); frac != "" {
		mantissa += "." + frac
	}
	return sign + mantissa + "e+" + strconv.Itoa(len(digits)-1)
}

// trimExponent turns Go's 1e-07 into 1e-7
func trimExponent(s string) string {
	idx := strings.IndexAny(s, "eE")
	if idx < 0 || idx+2 >= len(s) {
		return s
	}
	mantissa, sign, digits := s[:idx+1], s[idx+1:idx+2], strings.TrimLeft(s[idx+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + sign + digits
}
