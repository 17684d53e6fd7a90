package prefilter

import "github.com/coregx/ahocorasick"

// ahoCorasickPrefilter finds the leftmost occurrence of any prefix with an
// Aho-Corasick automaton. It serves prefix sets too varied for the
// first-byte scanners.
type ahoCorasickPrefilter struct {
	auto   *ahocorasick.Automaton
	minLen int
	bytes  int
}

// newAhoCorasick builds the automaton, returning nil if the builder
// rejects the prefixes.
func newAhoCorasick(lits [][]byte) *ahoCorasickPrefilter {
	builder := ahocorasick.NewBuilder()
	n := 0
	for _, lit := range lits {
		builder.AddPattern(lit)
		n += len(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &ahoCorasickPrefilter{auto: auto, minLen: minLen(lits), bytes: n}
}

// Find implements Prefilter.Find.
func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// MinLen implements Prefilter.MinLen.
func (p *ahoCorasickPrefilter) MinLen() int {
	return p.minLen
}

// HeapBytes implements Prefilter.HeapBytes.
// The automaton size is not exposed; the pattern bytes are a lower bound.
func (p *ahoCorasickPrefilter) HeapBytes() int {
	return p.bytes
}
