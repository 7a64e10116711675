package structs

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Sequence is an ordered, append-only container supporting constant time
// (amortized) insertion at both ends and traversal in both directions.
//
// Elements pushed at the front are stored in reverse order in front, so that
// the logical sequence is reverse(front) || back.
type Sequence[T any] struct {
	front []T
	back  []T
}

// NewSequence returns a new Sequence holding the given elements in order.
func NewSequence[T any](values ...T) (s *Sequence[T]) {
	s = &Sequence[T]{back: make([]T, len(values))}
	copy(s.back, values)
	return
}

// PushBack appends v at the end of the sequence.
func (s *Sequence[T]) PushBack(v T) {
	s.back = append(s.back, v)
}

// PushFront inserts v at the start of the sequence.
func (s *Sequence[T]) PushFront(v T) {
	s.front = append(s.front, v)
}

// IsEmpty returns true if the sequence has no element.
func (s *Sequence[T]) IsEmpty() bool {
	return s.Len() == 0
}

// Len returns the number of elements of the sequence.
func (s *Sequence[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.front) + len(s.back)
}

// At returns the i-th element of the sequence, starting from the head.
// It panics if i is out of range.
func (s *Sequence[T]) At(i int) T {
	if i < 0 || i >= s.Len() {
		panic(fmt.Errorf("cannot At: index %d out of range [0, %d)", i, s.Len()))
	}

	if i < len(s.front) {
		return s.front[len(s.front)-1-i]
	}

	return s.back[i-len(s.front)]
}

// Head returns the first element of the sequence and false if the sequence is empty.
func (s *Sequence[T]) Head() (v T, ok bool) {
	if s.IsEmpty() {
		return
	}
	return s.At(0), true
}

// Tail returns the last element of the sequence and false if the sequence is empty.
func (s *Sequence[T]) Tail() (v T, ok bool) {
	if s.IsEmpty() {
		return
	}
	return s.At(s.Len() - 1), true
}

// Range calls f on each element from head to tail, stopping early if f returns false.
func (s *Sequence[T]) Range(f func(i int, v T) bool) {
	if s == nil {
		return
	}

	var i int
	for j := len(s.front) - 1; j >= 0; j-- {
		if !f(i, s.front[j]) {
			return
		}
		i++
	}

	for j := range s.back {
		if !f(i, s.back[j]) {
			return
		}
		i++
	}
}

// RangeBackward calls f on each element from tail to head, stopping early if f returns false.
func (s *Sequence[T]) RangeBackward(f func(i int, v T) bool) {
	if s == nil {
		return
	}

	i := s.Len() - 1
	for j := len(s.back) - 1; j >= 0; j-- {
		if !f(i, s.back[j]) {
			return
		}
		i--
	}

	for j := range s.front {
		if !f(i, s.front[j]) {
			return
		}
		i--
	}
}

// Slice returns a new slice holding the elements from head to tail.
// Elements are copied shallowly.
func (s *Sequence[T]) Slice() (v []T) {
	v = make([]T, 0, s.Len())
	s.Range(func(_ int, x T) bool {
		v = append(v, x)
		return true
	})
	return
}

// CopyNew returns a new sequence holding copier(v) for each element v, in the same order.
// A nil copier performs a shallow copy.
func (s *Sequence[T]) CopyNew(copier func(v T) T) (cpy *Sequence[T]) {
	cpy = &Sequence[T]{back: s.Slice()}
	if copier != nil {
		for i := range cpy.back {
			cpy.back[i] = copier(cpy.back[i])
		}
	}
	return
}

// Equal performs a deep equal between the receiver and the operand.
// Options are forwarded to [cmp.Equal], for example to provide a comparer for T.
func (s *Sequence[T]) Equal(other *Sequence[T], opts ...cmp.Option) bool {
	if s.Len() != other.Len() {
		return false
	}
	return cmp.Equal(s.Slice(), other.Slice(), opts...)
}

// String returns the elements of the sequence formatted with %v and separated by a space.
func (s *Sequence[T]) String() string {
	var sb strings.Builder
	s.Range(func(i int, v T) bool {
		if i != 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%v", v)
		return true
	})
	return sb.String()
}
