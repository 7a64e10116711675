package utils

// ReverseSliceInPlace reverses the order of the elements of s.
func ReverseSliceInPlace[V any](s []V) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// TrimRight returns s without its trailing elements equal to v.
// The returned slice shares the backing array of s.
func TrimRight[V comparable](s []V, v V) []V {
	n := len(s)
	for n > 0 && s[n-1] == v {
		n--
	}
	return s[:n]
}
