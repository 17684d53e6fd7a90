// Package conv provides checked integer narrowing for automaton tables.
//
// State ids, transition ids, register rows and register slots are stored in
// narrow integer types. Narrowing an out-of-range value means the table being
// built is larger than the executor supports, which is a programming error,
// so these helpers panic instead of returning an error.
package conv

import "math"

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
//
//go:inline
func IntToUint32(n int) uint32 {
	// uint comparison keeps this correct where int is 32 bits wide
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// IntToUint16 converts n to uint16.
// Panics if n < 0 or n > math.MaxUint16.
//
//go:inline
func IntToUint16(n int) uint16 {
	if n < 0 || n > math.MaxUint16 {
		panic("integer overflow: int value out of uint16 range")
	}
	return uint16(n)
}

// IntToUint8 converts n to uint8.
// Panics if n < 0 or n > math.MaxUint8.
//
//go:inline
func IntToUint8(n int) uint8 {
	if n < 0 || n > math.MaxUint8 {
		panic("integer overflow: int value out of uint8 range")
	}
	return uint8(n)
}

// InUint16 reports whether n fits in a uint16 without panicking.
func InUint16(n int) bool {
	return n >= 0 && n <= math.MaxUint16
}

// InUint8 reports whether n fits in a uint8 without panicking.
func InUint8(n int) bool {
	return n >= 0 && n <= math.MaxUint8
}
