package simd

import "bytes"

// Memmem returns the index of the first instance of needle in haystack.
// An empty needle matches at 0, like bytes.Index.
//
// Candidates are located by scanning for the needle's last byte with Memchr
// and then verified in full. Terminating bytes of literal prefixes tend to
// be more selective than leading ones.
func Memmem(haystack, needle []byte) int {
	switch {
	case len(needle) == 0:
		return 0
	case len(needle) > len(haystack):
		return -1
	case len(needle) == 1:
		return Memchr(haystack, needle[0])
	}

	last := len(needle) - 1
	rare := needle[last]
	from := last
	for from < len(haystack) {
		p := Memchr(haystack[from:], rare)
		if p < 0 {
			return -1
		}
		end := from + p
		start := end - last
		if bytes.Equal(haystack[start:end+1], needle) {
			return start
		}
		from = end + 1
	}
	return -1
}
