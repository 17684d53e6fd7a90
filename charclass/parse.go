package charclass

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Parse builds a Matcher from class body syntax, the text between the
// brackets of a regex character class:
//
//	a        single unit
//	a-z      inclusive range
//	^...     complement (a lone "^" accepts everything)
//	\n \t \r escapes, \xHH and \uHHHH code units, \- \^ \\ \] literals
//
// Single units become Single; everything else becomes a *Table.
func Parse(body string) (Matcher, error) {
	negate := false
	s := body
	if len(s) > 0 && s[0] == '^' {
		negate = true
		s = s[1:]
	}

	var rs []Range
	for len(s) > 0 {
		lo, rest, err := parseChar(s)
		if err != nil {
			return nil, fmt.Errorf("charclass %q: %w", body, err)
		}
		hi := lo
		if len(rest) > 1 && rest[0] == '-' {
			hi, rest, err = parseChar(rest[1:])
			if err != nil {
				return nil, fmt.Errorf("charclass %q: %w", body, err)
			}
			if hi < lo {
				return nil, fmt.Errorf("charclass %q: invalid range %s-%s", body, formatChar(lo), formatChar(hi))
			}
		}
		rs = append(rs, Range{Lo: lo, Hi: hi})
		s = rest
	}

	if len(rs) == 0 && !negate {
		return nil, fmt.Errorf("charclass %q: empty class", body)
	}

	canon := NewRanges(rs...)
	if negate {
		canon = canon.Negate()
		if len(canon) == 1 && canon[0].Lo == 0 && canon[0].Hi == MaxChar {
			return Any, nil
		}
	} else if len(canon) == 1 && canon[0].Lo == canon[0].Hi {
		return Single(canon[0].Lo), nil
	}
	return NewTable(canon...), nil
}

// MustParse is like Parse but panics on error.
func MustParse(body string) Matcher {
	m, err := Parse(body)
	if err != nil {
		panic(err)
	}
	return m
}

func parseChar(s string) (Char, string, error) {
	if s[0] != '\\' {
		r, size := utf8.DecodeRuneInString(s)
		if r > rune(MaxChar) {
			return 0, "", fmt.Errorf("code point %U does not fit a code unit", r)
		}
		return Char(r), s[size:], nil
	}
	if len(s) < 2 {
		return 0, "", fmt.Errorf("trailing backslash")
	}
	switch s[1] {
	case 'n':
		return '\n', s[2:], nil
	case 't':
		return '\t', s[2:], nil
	case 'r':
		return '\r', s[2:], nil
	case 'x':
		return parseHex(s, 2)
	case 'u':
		return parseHex(s, 4)
	default:
		return Char(s[1]), s[2:], nil
	}
}

func parseHex(s string, digits int) (Char, string, error) {
	if len(s) < 2+digits {
		return 0, "", fmt.Errorf("short escape %q", s)
	}
	v, err := strconv.ParseUint(s[2:2+digits], 16, 16)
	if err != nil {
		return 0, "", fmt.Errorf("bad escape %q: %w", s[:2+digits], err)
	}
	return Char(v), s[2+digits:], nil
}
