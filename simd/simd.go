// Package simd provides word-at-a-time byte scanning primitives.
//
// The loop fast-scanner uses these to skip runs of bytes that keep an
// automaton state on its self-loop, and the literal prefilters use them to
// find candidate match starts. All kernels are pure Go SWAR (SIMD Within A
// Register): eight bytes are loaded into a uint64 and tested in parallel with
// the zero-byte detection trick from Hacker's Delight.
//
// Every function returns the index of the first hit relative to the start of
// the haystack, or -1 if there is none.
package simd

import (
	"encoding/binary"
	"math/bits"

	"golang.org/x/sys/cpu"
)

// wordScan enables the 8-bytes-per-iteration kernels. They depend on cheap
// unaligned 64-bit loads, which x86-64 (SSE2 baseline) and arm64 (ASIMD
// baseline) provide. Other targets use the byte loops.
var wordScan = cpu.X86.HasSSE2 || cpu.ARM64.HasASIMD

// minWordScan is the haystack length below which the byte loop wins.
const minWordScan = 8

const (
	lo8 = uint64(0x0101010101010101)
	hi8 = uint64(0x8080808080808080)
)

// broadcast replicates b into every byte of a uint64.
func broadcast(b byte) uint64 {
	return uint64(b) * lo8
}

// zeroBytes returns a mask with the high bit set for every zero byte in v.
// Bits above the lowest zero byte may be spurious, so callers only inspect
// the lowest set bit.
func zeroBytes(v uint64) uint64 {
	return (v - lo8) & ^v & hi8
}

// firstByte converts a zeroBytes mask to a byte offset within the word.
func firstByte(mask uint64) int {
	return bits.TrailingZeros64(mask) / 8
}

// load reads the little-endian word starting at haystack[i].
func load(haystack []byte, i int) uint64 {
	return binary.LittleEndian.Uint64(haystack[i:])
}
