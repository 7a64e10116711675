package utils

// Pointy creates a new variable holding x and returns its pointer.
func Pointy[V any](x V) *V {
	return &x
}
