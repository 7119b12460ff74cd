package rustdoc

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/fwojciec/docmerge"
)

// scanString returns the index of the quote closing the JavaScript string
// literal whose opening quote is at data[start].
func scanString(data string, start int) (int, error) {
	quote := data[start]
	for i := start + 1; i < len(data); i++ {
		switch data[i] {
		case '\\':
			if i+2 < len(data) && data[i+1] == '\r' && data[i+2] == '\n' {
				i++
			}
			i++
		case quote:
			return i, nil
		case '\n':
			return 0, docmerge.Errorf(docmerge.EFORMAT, "unterminated string literal at offset %d", start)
		}
	}
	return 0, docmerge.Errorf(docmerge.EFORMAT, "unterminated string literal at offset %d", start)
}

// unescapeString returns the value of the body of a JavaScript string literal.
func unescapeString(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", docmerge.Errorf(docmerge.EFORMAT, "dangling escape at end of string")
		}
		switch c = s[i]; c {
		case '\n':
			// line continuation
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		case 'x':
			r, err := parseHex(s, i+1, 2)
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
			i += 2
		case 'u':
			r, n, err := parseUnicodeEscape(s, i+1)
			if err != nil {
				return "", err
			}
			i += n
			if utf16.IsSurrogate(r) && i+2 < len(s) && s[i+1] == '\\' && s[i+2] == 'u' {
				lo, m, err := parseUnicodeEscape(s, i+3)
				if err == nil {
					if dec := utf16.DecodeRune(r, lo); dec != utf8.RuneError {
						r = dec
						i += 2 + m
					}
				}
			}
			b.WriteRune(r)
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// parseUnicodeEscape parses the part of a \u escape following the "u",
// either four hex digits or a braced code point. It returns the rune and
// the number of bytes consumed.
func parseUnicodeEscape(s string, at int) (rune, int, error) {
	if at < len(s) && s[at] == '{' {
		end := strings.IndexByte(s[at:], '}')
		if end < 2 {
			return 0, 0, docmerge.Errorf(docmerge.EFORMAT, "invalid unicode escape at offset %d", at)
		}
		r, err := parseHex(s, at+1, end-1)
		if err != nil {
			return 0, 0, err
		}
		return r, end + 1, nil
	}
	r, err := parseHex(s, at, 4)
	return r, 4, err
}

func parseHex(s string, at, n int) (rune, error) {
	if at+n > len(s) {
		return 0, docmerge.Errorf(docmerge.EFORMAT, "truncated escape at offset %d", at)
	}
	v, err := strconv.ParseUint(s[at:at+n], 16, 32)
	if err != nil || v > utf8.MaxRune {
		return 0, docmerge.Errorf(docmerge.EFORMAT, "invalid escape %q at offset %d", s[at:at+n], at)
	}
	return rune(v), nil
}

// escapeString writes s as the body of a single-quoted JavaScript string the
// way rustdoc does: backslashes and single quotes are escaped, and a double
// quote that follows a backslash is escaped as well.
func escapeString(b *strings.Builder, s string) {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '"':
			if i > 0 && s[i-1] == '\\' {
				b.WriteString(`\"`)
			} else {
				b.WriteByte(c)
			}
		default:
			b.WriteByte(c)
		}
	}
}
