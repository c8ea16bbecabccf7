package jprune

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/go-json-experiment/json"
)

// mark ties an offset in the normalized output to the input offset of the
// token it came from.
type mark struct {
	out int
	in  int
}

// normalizer rewrites relaxed JSON into strict JSON. It only rewrites tokens;
// structural validation is left to the strict decoder that consumes the
// output, with marks used to map its error offsets back to the input.
type normalizer struct {
	src   []byte
	pos   int
	out   []byte
	marks []mark
	last  byte // last non-whitespace byte emitted
}

func normalize(src []byte) ([]byte, []mark, error) {
	n := &normalizer{src: src, out: make([]byte, 0, len(src)+len(src)/8)}
	if err := n.run(); err != nil {
		return nil, nil, err
	}
	return n.out, n.marks, nil
}

func (n *normalizer) emit(in int, b ...byte) {
	n.marks = append(n.marks, mark{out: len(n.out), in: in})
	n.out = append(n.out, b...)
	if c := b[len(b)-1]; c != ' ' && c != '\t' && c != '\n' && c != '\r' {
		n.last = c
	}
}

// trailingComma reports whether the comma at n.pos follows a value and
// precedes a closing bracket.
func (n *normalizer) trailingComma() bool {
	switch n.last {
	case 0, '[', '{', ',', ':':
		return false
	}
	next, _ := n.peekSignificant(n.pos + 1)
	return next == ']' || next == '}'
}

// touching reports whether a token starting now would be glued to the
// previous value in the output.
func (n *normalizer) touching() bool {
	if len(n.out) == 0 {
		return false
	}
	switch n.out[len(n.out)-1] {
	case ' ', '\t', '\n', '\r':
		return false
	}
	switch n.last {
	case '[', '{', ',', ':':
		return false
	}
	return true
}

func (n *normalizer) fail(offset int, format string, args ...any) error {
	return newParseError(n.src, offset, fmt.Sprintf(format, args...), nil)
}

func (n *normalizer) run() error {
	for n.pos < len(n.src) {
		start := n.pos
		c := n.src[n.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			n.emit(start, c)
			n.pos++
		case c == '\v' || c == '\f':
			n.emit(start, ' ')
			n.pos++
		case c == '/':
			end, ok := n.skipComment(n.pos)
			if !ok {
				return n.fail(start, "invalid comment")
			}
			n.emit(start, ' ')
			n.pos = end
		case c == '"' || c == '\'':
			if err := n.scanString(); err != nil {
				return err
			}
		case c == ',':
			if n.trailingComma() {
				n.pos++
				continue
			}
			n.emit(start, c)
			n.pos++
		case c == '{' || c == '}' || c == '[' || c == ']' || c == ':':
			n.emit(start, c)
			n.pos++
		case c == '-' || c == '+' || c == '.' || isDigit(c):
			if n.touching() {
				return n.fail(start, "unexpected number")
			}
			if err := n.scanNumber(); err != nil {
				return err
			}
		default:
			r, size := utf8.DecodeRune(n.src[n.pos:])
			switch {
			case isExtraSpace(r):
				n.emit(start, ' ')
				n.pos += size
			case isIdentStart(r):
				if n.touching() {
					return n.fail(start, "unexpected identifier")
				}
				if err := n.scanIdentifier(); err != nil {
					return err
				}
			case r == utf8.RuneError && size <= 1:
				return n.fail(start, "invalid UTF-8")
			default:
				return n.fail(start, "unexpected character %q", r)
			}
		}
	}
	return nil
}

// skipComment returns the offset just past the comment starting at from.
func (n *normalizer) skipComment(from int) (int, bool) {
	if from+1 >= len(n.src) {
		return 0, false
	}
	switch n.src[from+1] {
	case '/':
		i := from + 2
		for i < len(n.src) && n.src[i] != '\n' && n.src[i] != '\r' {
			i++
		}
		return i, true
	case '*':
		end := strings.Index(string(n.src[from+2:]), "*/")
		if end < 0 {
			return 0, false
		}
		return from + 2 + end + 2, true
	default:
		return 0, false
	}
}

// peekSignificant returns the first byte at or after from that is neither
// whitespace nor part of a comment, or 0 at end of input.
func (n *normalizer) peekSignificant(from int) (byte, int) {
	i := from
	for i < len(n.src) {
		c := n.src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f':
			i++
		case c == '/':
			end, ok := n.skipComment(i)
			if !ok {
				return c, i
			}
			i = end
		case c < utf8.RuneSelf:
			return c, i
		default:
			r, size := utf8.DecodeRune(n.src[i:])
			if !isExtraSpace(r) {
				return c, i
			}
			i += size
		}
	}
	return 0, i
}

func (n *normalizer) scanString() error {
	start := n.pos
	quote := n.src[start]
	i := start + 1
	for {
		if i >= len(n.src) {
			return n.fail(start, "unterminated string")
		}
		c := n.src[i]
		if c == quote {
			break
		}
		switch c {
		case '\n', '\r':
			return n.fail(start, "unterminated string")
		case '\\':
			i++
			if i < len(n.src) && n.src[i] == '\r' && i+1 < len(n.src) && n.src[i+1] == '\n' {
				i++
			}
		}
		i++
	}
	raw := string(n.src[start+1 : i])
	if !utf8.ValidString(raw) {
		return n.fail(start, "invalid UTF-8 in string")
	}
	s, ok := unescape(raw, quote)
	if !ok {
		return n.fail(start, "invalid escape sequence in string")
	}
	quoted, err := json.Marshal(s)
	if err != nil {
		return newParseError(n.src, start, "invalid string", err)
	}
	n.emit(start, quoted...)
	n.pos = i + 1
	return nil
}

func (n *normalizer) scanIdentifier() error {
	start := n.pos
	i := start
	for i < len(n.src) {
		r, size := utf8.DecodeRune(n.src[i:])
		if !isIdentPart(r) {
			break
		}
		i += size
	}
	name := string(n.src[start:i])
	n.pos = i

	if next, _ := n.peekSignificant(i); next == ':' {
		quoted, err := json.Marshal(name)
		if err != nil {
			return newParseError(n.src, start, "invalid key", err)
		}
		n.emit(start, quoted...)
		return nil
	}
	switch name {
	case "true", "false", "null":
		n.emit(start, []byte(name)...)
		return nil
	case "Infinity", "NaN":
		return n.fail(start, "non-finite number %s is not supported", name)
	default:
		return n.fail(start, "unexpected identifier %q", name)
	}
}

func (n *normalizer) scanNumber() error {
	start := n.pos
	i := start
	var buf []byte

	switch n.src[i] {
	case '-':
		buf = append(buf, '-')
		i++
	case '+':
		i++
	}
	if i < len(n.src) && (n.src[i] == 'I' || n.src[i] == 'N') {
		return n.fail(start, "non-finite numbers are not supported")
	}

	if i+1 < len(n.src) && n.src[i] == '0' && (n.src[i+1] == 'x' || n.src[i+1] == 'X') {
		j := i + 2
		for j < len(n.src) && isHexDigit(n.src[j]) {
			j++
		}
		if j == i+2 {
			return n.fail(start, "invalid hexadecimal number")
		}
		v, ok := new(big.Int).SetString(string(n.src[i+2:j]), 16)
		if !ok {
			return n.fail(start, "invalid hexadecimal number")
		}
		buf = append(buf, v.String()...)
		n.emit(start, buf...)
		n.pos = j
		return nil
	}

	intStart := i
	for i < len(n.src) && isDigit(n.src[i]) {
		i++
	}
	intPart := n.src[intStart:i]
	var frac []byte
	dot := false
	if i < len(n.src) && n.src[i] == '.' {
		dot = true
		i++
		fracStart := i
		for i < len(n.src) && isDigit(n.src[i]) {
			i++
		}
		frac = n.src[fracStart:i]
	}
	if len(intPart) == 0 && len(frac) == 0 {
		return n.fail(start, "invalid number")
	}
	if len(intPart) == 0 {
		buf = append(buf, '0')
	} else {
		buf = append(buf, intPart...)
	}
	if dot && len(frac) > 0 {
		buf = append(buf, '.')
		buf = append(buf, frac...)
	}
	if i < len(n.src) && (n.src[i] == 'e' || n.src[i] == 'E') {
		buf = append(buf, 'e')
		i++
		if i < len(n.src) && (n.src[i] == '+' || n.src[i] == '-') {
			buf = append(buf, n.src[i])
			i++
		}
		expStart := i
		for i < len(n.src) && isDigit(n.src[i]) {
			i++
		}
		if i == expStart {
			return n.fail(start, "invalid number exponent")
		}
		buf = append(buf, n.src[expStart:i]...)
	}
	n.emit(start, buf...)
	n.pos = i
	return nil
}

// unescape decodes the body of a single- or double-quoted JavaScript string
// literal.
func unescape(raw string, quote byte) (string, bool) {
	if strings.IndexByte(raw, '\\') < 0 {
		return raw, true
	}
	var out strings.Builder
	out.Grow(len(raw))

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' {
			out.WriteByte(c)
			continue
		}
		i++
		if i >= len(raw) {
			return "", false
		}
		switch esc := raw[i]; esc {
		case 'b':
			out.WriteByte('\b')
		case 'f':
			out.WriteByte('\f')
		case 'n':
			out.WriteByte('\n')
		case 'r':
			out.WriteByte('\r')
		case 't':
			out.WriteByte('\t')
		case 'v':
			out.WriteByte('\v')
		case '0':
			if i+1 < len(raw) && isDigit(raw[i+1]) {
				return "", false
			}
			out.WriteByte(0)
		case '\n':
			// line continuation
		case '\r':
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
		case 'x':
			if i+2 >= len(raw) {
				return "", false
			}
			v, err := strconv.ParseUint(raw[i+1:i+3], 16, 8)
			if err != nil {
				return "", false
			}
			out.WriteRune(rune(v))
			i += 2
		case 'u':
			if i+1 < len(raw) && raw[i+1] == '{' {
				end := strings.IndexByte(raw[i+2:], '}')
				if end <= 0 {
					return "", false
				}
				v, err := strconv.ParseUint(raw[i+2:i+2+end], 16, 32)
				if err != nil || v > utf8.MaxRune {
					return "", false
				}
				out.WriteRune(rune(v))
				i += 2 + end
				continue
			}
			if i+4 >= len(raw) {
				return "", false
			}
			v, err := strconv.ParseUint(raw[i+1:i+5], 16, 16)
			if err != nil {
				return "", false
			}
			r := rune(v)
			i += 4
			if utf16.IsSurrogate(r) && i+6 < len(raw) && raw[i+1] == '\\' && raw[i+2] == 'u' {
				if v2, err := strconv.ParseUint(raw[i+3:i+7], 16, 16); err == nil {
					if d := utf16.DecodeRune(r, rune(v2)); d != utf8.RuneError {
						out.WriteRune(d)
						i += 6
						continue
					}
				}
			}
			out.WriteRune(r)
		case '1', '2', '3', '4', '5', '6', '7', '8', '9':
			return "", false
		default:
			if esc == quote {
				out.WriteByte(quote)
				continue
			}
			out.WriteByte(esc)
		}
	}
	return out.String(), true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isExtraSpace(r rune) bool {
	return r == '\uFEFF' || r == '\u2028' || r == '\u2029' || unicode.Is(unicode.Zs, r)
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc) ||
		r == '\u200C' || r == '\u200D'
}
