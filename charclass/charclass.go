// Package charclass provides the character predicates that guard automaton
// edges.
//
// An automaton state carries an ordered list of Matchers, one per outgoing
// edge. The executor treats them as opaque: it only asks whether a code unit
// is accepted. The implementations here cover what automaton producers
// typically emit (single units, sorted ranges, byte tables) and are what the
// table loader builds from class syntax.
package charclass

import (
	"fmt"
	"sort"
	"strings"
)

// Char is one fixed-width input code unit. Byte inputs widen losslessly.
type Char uint16

// MaxChar is the largest representable code unit.
const MaxChar Char = 0xFFFF

// Matcher is a predicate over a single code unit.
type Matcher interface {
	Match(c Char) bool
}

// Single accepts exactly one code unit.
type Single Char

// Match implements Matcher.
func (s Single) Match(c Char) bool {
	return c == Char(s)
}

func (s Single) String() string {
	return fmt.Sprintf("[%s]", formatChar(Char(s)))
}

// Range is an inclusive range of code units.
type Range struct {
	Lo, Hi Char
}

// Ranges accepts the union of sorted, non-overlapping, non-adjacent ranges.
// Build values with NewRanges to get the canonical form.
type Ranges []Range

// NewRanges sorts and merges rs into canonical form.
func NewRanges(rs ...Range) Ranges {
	if len(rs) == 0 {
		return nil
	}
	out := make(Ranges, 0, len(rs))
	for _, r := range rs {
		if r.Lo > r.Hi {
			r.Lo, r.Hi = r.Hi, r.Lo
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Lo < out[j].Lo })

	merged := out[:1]
	for _, r := range out[1:] {
		last := &merged[len(merged)-1]
		if uint32(r.Lo) <= uint32(last.Hi)+1 {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// Match implements Matcher by binary search.
func (rs Ranges) Match(c Char) bool {
	lo, hi := 0, len(rs)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		switch {
		case c < rs[mid].Lo:
			hi = mid
		case c > rs[mid].Hi:
			lo = mid + 1
		default:
			return true
		}
	}
	return false
}

// Negate returns the complement of rs over [0, MaxChar].
func (rs Ranges) Negate() Ranges {
	var out Ranges
	next := uint32(0)
	for _, r := range rs {
		if uint32(r.Lo) > next {
			out = append(out, Range{Lo: Char(next), Hi: r.Lo - 1})
		}
		next = uint32(r.Hi) + 1
	}
	if next <= uint32(MaxChar) {
		out = append(out, Range{Lo: Char(next), Hi: MaxChar})
	}
	return out
}

func (rs Ranges) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for _, r := range rs {
		sb.WriteString(formatChar(r.Lo))
		if r.Hi != r.Lo {
			sb.WriteByte('-')
			sb.WriteString(formatChar(r.Hi))
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// Table accepts bytes through a 256-entry lookup table and wider code units
// through sorted ranges. It is the fastest Matcher for byte inputs.
type Table struct {
	bytes [256]bool
	high  Ranges
}

// NewTable builds a Table accepting the union of rs.
func NewTable(rs ...Range) *Table {
	t := &Table{}
	for _, r := range NewRanges(rs...) {
		for c := uint32(r.Lo); c <= uint32(r.Hi) && c < 256; c++ {
			t.bytes[c] = true
		}
		if r.Hi >= 256 {
			lo := r.Lo
			if lo < 256 {
				lo = 256
			}
			t.high = append(t.high, Range{Lo: lo, Hi: r.Hi})
		}
	}
	return t
}

// Match implements Matcher.
func (t *Table) Match(c Char) bool {
	if c < 256 {
		return t.bytes[c]
	}
	return t.high.Match(c)
}

// Bytes returns the byte lookup table. Callers must not modify it.
func (t *Table) Bytes() *[256]bool {
	return &t.bytes
}

type anyMatcher struct{}

func (anyMatcher) Match(Char) bool { return true }

func (anyMatcher) String() string { return "[^]" }

// Any accepts every code unit.
var Any Matcher = anyMatcher{}

// Not inverts a Matcher.
type Not struct {
	M Matcher
}

// Match implements Matcher.
func (n Not) Match(c Char) bool {
	return !n.M.Match(c)
}

// ByteTable evaluates m over every byte value.
// If m is a *Table its table is returned directly.
func ByteTable(m Matcher) *[256]bool {
	if t, ok := m.(*Table); ok {
		return t.Bytes()
	}
	var table [256]bool
	for c := 0; c < 256; c++ {
		table[c] = m.Match(Char(c))
	}
	return &table
}

func formatChar(c Char) string {
	switch {
	case c == '-' || c == '^' || c == '\\' || c == ']' || c == '[':
		return `\` + string(rune(c))
	case c >= 0x20 && c < 0x7f:
		return string(rune(c))
	case c < 0x100:
		return fmt.Sprintf(`\x%02x`, uint16(c))
	default:
		return fmt.Sprintf(`\u%04x`, uint16(c))
	}
}
