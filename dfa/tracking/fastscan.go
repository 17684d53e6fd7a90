package tracking

import (
	"github.com/coregx/cgdfa/charclass"
	"github.com/coregx/cgdfa/simd"
)

// Direction is the stepping direction of a match attempt.
type Direction uint8

const (
	// Forward steps from lower to higher offsets.
	Forward Direction = iota

	// Backward steps from higher to lower offsets.
	Backward
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// step returns the cursor increment for the direction.
func (d Direction) step() int {
	if d == Backward {
		return -1
	}
	return 1
}

// FastScan describes how to skip a run of characters that keep a state on
// its self-loop edge. Accept must accept no character the loop edge
// rejects; it may accept fewer.
type FastScan struct {
	Accept    charclass.Matcher
	Direction Direction

	table *[256]bool
	// exits holds the bytes that leave the loop when there are at most
	// three of them; nil otherwise.
	exits []byte
	// all is set when every byte is accepted.
	all bool
}

// NewFastScan builds a scan descriptor for accept.
func NewFastScan(accept charclass.Matcher, dir Direction) *FastScan {
	f := &FastScan{
		Accept:    accept,
		Direction: dir,
		table:     charclass.ByteTable(accept),
	}
	var exits []byte
	for c := 0; c < 256; c++ {
		if !f.table[c] {
			exits = append(exits, byte(c))
		}
	}
	switch {
	case len(exits) == 0:
		f.all = true
	case len(exits) <= 3:
		f.exits = exits
	}
	return f
}

// Scan returns the first position between from and bound, in the scan
// direction, whose character is not accepted. It returns bound if every
// character is accepted.
//
// Positions are cursor offsets: forward, the character examined at offset
// p is in[p]; backward, it is in[p-1].
func (f *FastScan) Scan(in Input, from, bound int) int {
	if f.Direction == Backward {
		return f.scanBackward(in, from, bound)
	}
	if b, ok := in.(Bytes); ok {
		return from + f.scanBytes(b[from:bound])
	}
	for p := from; p < bound; p++ {
		if !f.Accept.Match(in.At(p)) {
			return p
		}
	}
	return bound
}

// scanBytes returns the index of the first rejected byte in h, or len(h).
func (f *FastScan) scanBytes(h []byte) int {
	if f.all {
		return len(h)
	}
	var i int
	switch len(f.exits) {
	case 1:
		i = simd.Memchr(h, f.exits[0])
	case 2:
		i = simd.Memchr2(h, f.exits[0], f.exits[1])
	case 3:
		i = simd.Memchr3(h, f.exits[0], f.exits[1], f.exits[2])
	default:
		i = simd.MemchrNotInTable(h, f.table)
	}
	if i < 0 {
		return len(h)
	}
	return i
}

func (f *FastScan) scanBackward(in Input, from, bound int) int {
	if b, ok := in.(Bytes); ok {
		p := from
		for p > bound && f.table[b[p-1]] {
			p--
		}
		return p
	}
	p := from
	for p > bound && f.Accept.Match(in.At(p-1)) {
		p--
	}
	return p
}
