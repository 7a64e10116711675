package knapsack

import (
	"strings"
)

// Bitstream is a sequence of bits, one per element, each equal to 0 or 1.
type Bitstream []byte

// NewBitstream returns the concatenation of the 8-bit, MSB-first
// representation of each byte of pt, in order.
func NewBitstream(pt []byte) (bits Bitstream) {
	bits = make(Bitstream, 0, len(pt)*8)
	for _, c := range pt {
		for j := 7; j >= 0; j-- {
			bits = append(bits, (c>>j)&1)
		}
	}
	return
}

// Bytes regroups the bitstream into consecutive 8-bit groups, MSB-first,
// and returns the corresponding bytes. A trailing group of less than 8 bits is dropped.
func (bits Bitstream) Bytes() (pt []byte) {
	pt = make([]byte, len(bits)/8)
	for i := range pt {
		var c byte
		for _, b := range bits[i*8 : (i+1)*8] {
			c = c<<1 | b&1
		}
		pt[i] = c
	}
	return
}

// String returns the bitstream as a string of '0' and '1'.
func (bits Bitstream) String() string {
	var sb strings.Builder
	sb.Grow(len(bits))
	for _, b := range bits {
		sb.WriteByte('0' + b&1)
	}
	return sb.String()
}
