package simd

// MemchrInTable returns the index of the first byte b with table[b] == true.
func MemchrInTable(haystack []byte, table *[256]bool) int {
	if table == nil {
		return -1
	}
	return indexTable(haystack, table, true)
}

// MemchrNotInTable returns the index of the first byte b with table[b] == false.
//
// This is the loop fast-scanner primitive: table holds the bytes that keep
// the automaton on its self-loop, and the result is where the loop breaks.
func MemchrNotInTable(haystack []byte, table *[256]bool) int {
	if table == nil {
		if len(haystack) == 0 {
			return -1
		}
		return 0
	}
	return indexTable(haystack, table, false)
}

// indexTable finds the first byte whose table entry equals want.
// A lookup table cannot be tested in a register, so the loop is unrolled
// by eight instead.
func indexTable(haystack []byte, table *[256]bool, want bool) int {
	n := len(haystack)
	i := 0
	for ; i+8 <= n; i += 8 {
		h := haystack[i : i+8 : i+8]
		switch want {
		case table[h[0]]:
			return i
		case table[h[1]]:
			return i + 1
		case table[h[2]]:
			return i + 2
		case table[h[3]]:
			return i + 3
		case table[h[4]]:
			return i + 4
		case table[h[5]]:
			return i + 5
		case table[h[6]]:
			return i + 6
		case table[h[7]]:
			return i + 7
		}
	}
	for ; i < n; i++ {
		if table[haystack[i]] == want {
			return i
		}
	}
	return -1
}
