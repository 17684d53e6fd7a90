package simd

// Memchr returns the index of the first instance of needle in haystack.
//
// Example:
//
//	pos := simd.Memchr([]byte("xxbxx"), 'b')
//	// pos == 2
func Memchr(haystack []byte, needle byte) int {
	n := len(haystack)
	i := 0
	if wordScan && n >= minWordScan {
		mask := broadcast(needle)
		for ; i+8 <= n; i += 8 {
			if z := zeroBytes(load(haystack, i) ^ mask); z != 0 {
				return i + firstByte(z)
			}
		}
	}
	for ; i < n; i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}

// Memchr2 returns the index of the first byte equal to needle1 or needle2.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	n := len(haystack)
	i := 0
	if wordScan && n >= minWordScan {
		m1, m2 := broadcast(needle1), broadcast(needle2)
		for ; i+8 <= n; i += 8 {
			w := load(haystack, i)
			if z := zeroBytes(w^m1) | zeroBytes(w^m2); z != 0 {
				return i + firstByte(z)
			}
		}
	}
	for ; i < n; i++ {
		if b := haystack[i]; b == needle1 || b == needle2 {
			return i
		}
	}
	return -1
}

// Memchr3 returns the index of the first byte equal to any of the three needles.
func Memchr3(haystack []byte, needle1, needle2, needle3 byte) int {
	n := len(haystack)
	i := 0
	if wordScan && n >= minWordScan {
		m1, m2, m3 := broadcast(needle1), broadcast(needle2), broadcast(needle3)
		for ; i+8 <= n; i += 8 {
			w := load(haystack, i)
			if z := zeroBytes(w^m1) | zeroBytes(w^m2) | zeroBytes(w^m3); z != 0 {
				return i + firstByte(z)
			}
		}
	}
	for ; i < n; i++ {
		if b := haystack[i]; b == needle1 || b == needle2 || b == needle3 {
			return i
		}
	}
	return -1
}

// MemchrAny returns the index of the first byte contained in needles.
// Up to three needles use the SWAR kernels; larger sets fall back to a
// membership table.
func MemchrAny(haystack []byte, needles []byte) int {
	switch len(needles) {
	case 0:
		return -1
	case 1:
		return Memchr(haystack, needles[0])
	case 2:
		return Memchr2(haystack, needles[0], needles[1])
	case 3:
		return Memchr3(haystack, needles[0], needles[1], needles[2])
	}
	var table [256]bool
	for _, b := range needles {
		table[b] = true
	}
	return MemchrInTable(haystack, &table)
}
