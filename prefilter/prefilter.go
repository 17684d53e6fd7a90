// Package prefilter finds candidate match start positions from the literal
// prefixes an automaton declares.
//
// Every match of such an automaton begins with one of its prefixes, so a
// search only needs to run the automaton, anchored, where a prefix occurs.
// Candidates are not matches: the caller still runs the automaton at each one
// to confirm it and to compute capture groups.
//
// The strategy is chosen from the prefix set:
//   - One single-byte prefix → memchr
//   - One longer prefix → memmem
//   - Prefixes with at most three distinct first bytes → memchr2/memchr3
//     on the first byte, then a prefix check
//   - Anything else → Aho-Corasick
//
// Example usage:
//
//	pf := prefilter.New([][]byte{[]byte("foo"), []byte("bar")})
//	for pos := pf.Find(haystack, 0); pos >= 0; pos = pf.Find(haystack, pos+1) {
//	    // run the automaton anchored at pos
//	}
package prefilter

import (
	"bytes"

	"github.com/coregx/cgdfa/simd"
)

// Prefilter finds candidate match start positions.
type Prefilter interface {
	// Find returns the first candidate position at or after start, or -1.
	// A candidate is a position where one of the prefixes occurs.
	Find(haystack []byte, start int) int

	// MinLen returns the length of the shortest prefix.
	MinLen() int

	// HeapBytes returns the number of bytes of heap memory used by this
	// prefilter.
	HeapBytes() int
}

// New builds the best prefilter for prefixes. Empty prefixes are
// ignored; New returns nil if none remain.
func New(prefixes [][]byte) Prefilter {
	var lits [][]byte
	for _, p := range prefixes {
		if len(p) > 0 {
			lits = append(lits, bytes.Clone(p))
		}
	}
	lits = dedupe(lits)

	switch {
	case len(lits) == 0:
		return nil
	case len(lits) == 1 && len(lits[0]) == 1:
		return &memchrPrefilter{needle: lits[0][0]}
	case len(lits) == 1:
		return &memmemPrefilter{needle: lits[0]}
	}

	if first := firstBytes(lits); len(first) <= 3 {
		return &startBytePrefilter{starts: first, prefixes: lits, minLen: minLen(lits)}
	}
	if pf := newAhoCorasick(lits); pf != nil {
		return pf
	}
	return &startBytePrefilter{starts: firstBytes(lits), prefixes: lits, minLen: minLen(lits)}
}

// dedupe drops duplicate prefixes, keeping the first occurrence.
func dedupe(lits [][]byte) [][]byte {
	out := lits[:0]
	seen := make(map[string]struct{}, len(lits))
	for _, l := range lits {
		if _, ok := seen[string(l)]; ok {
			continue
		}
		seen[string(l)] = struct{}{}
		out = append(out, l)
	}
	return out
}

// firstBytes returns the distinct first bytes of lits in order of
// appearance.
func firstBytes(lits [][]byte) []byte {
	var seen [256]bool
	var out []byte
	for _, l := range lits {
		if !seen[l[0]] {
			seen[l[0]] = true
			out = append(out, l[0])
		}
	}
	return out
}

// minLen returns the minimum literal length.
func minLen(lits [][]byte) int {
	m := len(lits[0])
	for _, l := range lits[1:] {
		m = min(m, len(l))
	}
	return m
}

// memchrPrefilter wraps simd.Memchr as a Prefilter.
//
// This is the fastest prefilter, for automatons whose matches all start
// with one byte.
type memchrPrefilter struct {
	needle byte
}

// Find implements Prefilter.Find using simd.Memchr.
func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memchr(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// MinLen implements Prefilter.MinLen.
func (p *memchrPrefilter) MinLen() int {
	return 1
}

// HeapBytes implements Prefilter.HeapBytes.
// Returns 0 as no heap allocation is needed.
func (p *memchrPrefilter) HeapBytes() int {
	return 0
}

// memmemPrefilter wraps simd.Memmem as a Prefilter for a single
// multi-byte prefix.
type memmemPrefilter struct {
	needle []byte
}

// Find implements Prefilter.Find using simd.Memmem.
func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memmem(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// MinLen implements Prefilter.MinLen.
func (p *memmemPrefilter) MinLen() int {
	return len(p.needle)
}

// HeapBytes implements Prefilter.HeapBytes.
// Returns the size of the needle buffer (stored on heap).
func (p *memmemPrefilter) HeapBytes() int {
	return len(p.needle)
}

// startBytePrefilter scans for the first byte of any prefix and then
// checks the full prefixes at that position.
type startBytePrefilter struct {
	starts   []byte
	prefixes [][]byte
	minLen   int
}

// Find implements Prefilter.Find.
func (p *startBytePrefilter) Find(haystack []byte, start int) int {
	if start < 0 {
		return -1
	}
	for start < len(haystack) {
		idx := simd.MemchrAny(haystack[start:], p.starts)
		if idx == -1 {
			return -1
		}
		pos := start + idx
		for _, lit := range p.prefixes {
			if bytes.HasPrefix(haystack[pos:], lit) {
				return pos
			}
		}
		start = pos + 1
	}
	return -1
}

// MinLen implements Prefilter.MinLen.
func (p *startBytePrefilter) MinLen() int {
	return p.minLen
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *startBytePrefilter) HeapBytes() int {
	n := len(p.starts)
	for _, lit := range p.prefixes {
		n += len(lit)
	}
	return n
}
