package charclass

import "fmt"

// NoEdge is returned when no edge accepts a character.
const NoEdge = -1

// Tree selects the edge accepting a character with a binary search over
// range boundaries instead of testing every Matcher in turn. It is used by
// states with many outgoing edges over a large alphabet.
//
// The code unit space [0, MaxChar] is partitioned into len(edges) ranges:
// range 0 is [0, bounds[0]-1], range i is [bounds[i-1], bounds[i]-1] and the
// last range runs to MaxChar. edges[i] is the edge index for range i.
//
// A Tree must select the same edge as Linear over the matchers it was built
// from for every code unit.
type Tree struct {
	bounds []Char
	edges  []int
}

// NewTree builds a Tree from explicit boundaries.
// bounds must be strictly increasing and non-zero, and
// len(edges) must be len(bounds)+1.
func NewTree(bounds []Char, edges []int) (*Tree, error) {
	if len(edges) != len(bounds)+1 {
		return nil, fmt.Errorf("tree: %d bounds need %d edges, got %d", len(bounds), len(bounds)+1, len(edges))
	}
	for i, b := range bounds {
		if b == 0 || (i > 0 && b <= bounds[i-1]) {
			return nil, fmt.Errorf("tree: bounds not strictly increasing at %d", i)
		}
	}
	for i, e := range edges {
		if e < NoEdge {
			return nil, fmt.Errorf("tree: invalid edge %d for range %d", e, i)
		}
	}
	return &Tree{bounds: bounds, edges: edges}, nil
}

// BuildTree derives a Tree from an ordered matcher list by evaluating Linear
// over the whole code unit space and merging runs with the same edge.
func BuildTree(matchers []Matcher) *Tree {
	t := &Tree{edges: []int{Linear(matchers, 0)}}
	for c := uint32(1); c <= uint32(MaxChar); c++ {
		e := Linear(matchers, Char(c))
		if e != t.edges[len(t.edges)-1] {
			t.bounds = append(t.bounds, Char(c))
			t.edges = append(t.edges, e)
		}
	}
	return t
}

// Lookup returns the edge index accepting c, or NoEdge.
func (t *Tree) Lookup(c Char) int {
	// find the first bound > c
	lo, hi := 0, len(t.bounds)
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if t.bounds[mid] <= c {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return t.edges[lo]
}

// MaxEdge returns the largest edge index the tree can produce, or NoEdge.
func (t *Tree) MaxEdge() int {
	max := NoEdge
	for _, e := range t.edges {
		if e > max {
			max = e
		}
	}
	return max
}

// Linear returns the index of the first matcher accepting c, or NoEdge.
func Linear(matchers []Matcher, c Char) int {
	for i, m := range matchers {
		if m.Match(c) {
			return i
		}
	}
	return NoEdge
}
