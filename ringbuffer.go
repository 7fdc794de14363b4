package ringbuffer

import (
	"fmt"
	"slices"
)

// noIndex marks start and end while the buffer holds no elements.
const noIndex = -1

// RingBuffer is a fixed-capacity double-ended circular sequence. Logical
// element i lives in physical slot (start+i) mod capacity.
//
// The zero value is an empty buffer with no storage and capacity 0; it must be
// given a capacity with SetCapacity before anything can be pushed.
//
// RingBuffer is not safe for concurrent use. Wrap it in a Synchronized when
// several goroutines need to share one.
type RingBuffer[T any] struct {
	data []T
	size int
	// head and tail are the slots of the logical first and last element plus
	// one, so zero (including the zero value) means no element.
	head int
	tail int
}

// New creates an empty RingBuffer holding at most capacity elements.
func New[T any](capacity int) (*RingBuffer[T], error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("new buffer with capacity %d: %w", capacity, ErrInvalidArgument)
	}
	return &RingBuffer[T]{data: make([]T, capacity)}, nil
}

// NewFilled creates a full RingBuffer of the given capacity with every slot
// set to value.
func NewFilled[T any](capacity int, value T) (*RingBuffer[T], error) {
	rb, err := New[T](capacity)
	if err != nil {
		return nil, err
	}
	for i := range rb.data {
		rb.data[i] = value
	}
	rb.size = capacity
	rb.setWindow(0, capacity-1)
	return rb, nil
}

// Clone returns a deep copy of rb with its own storage. Capacity and physical
// layout are preserved.
func (rb *RingBuffer[T]) Clone() *RingBuffer[T] {
	c := &RingBuffer[T]{size: rb.size, head: rb.head, tail: rb.tail}
	if len(rb.data) == 0 {
		return c
	}
	c.data = make([]T, len(rb.data))
	first, second := rb.segments()
	copy(c.data[max(rb.start(), 0):], first)
	copy(c.data, second)
	return c
}

// Assign replaces the contents of rb with a deep copy of src.
func (rb *RingBuffer[T]) Assign(src *RingBuffer[T]) {
	if rb == src {
		return
	}
	*rb = *src.Clone()
}

// Swap exchanges the complete state of rb and other, storage included.
func (rb *RingBuffer[T]) Swap(other *RingBuffer[T]) {
	*rb, *other = *other, *rb
}

// Get returns the element at logical index i without bounds checking. The
// result for i outside [0, Len()) is undefined and may panic.
func (rb *RingBuffer[T]) Get(i int) T {
	return rb.data[rb.slot(i)]
}

// Set overwrites the element at logical index i without bounds checking.
func (rb *RingBuffer[T]) Set(i int, v T) {
	rb.data[rb.slot(i)] = v
}

// At returns the element at logical index i.
func (rb *RingBuffer[T]) At(i int) (T, error) {
	if err := rb.checkIndex(i); err != nil {
		var zero T
		return zero, err
	}
	return rb.data[rb.slot(i)], nil
}

// SetAt overwrites the element at logical index i.
func (rb *RingBuffer[T]) SetAt(i int, v T) error {
	if err := rb.checkIndex(i); err != nil {
		return err
	}
	rb.data[rb.slot(i)] = v
	return nil
}

// Front returns the first element, or the zero value if rb is empty.
func (rb *RingBuffer[T]) Front() T {
	var zero T
	if rb.size == 0 {
		return zero
	}
	return rb.data[rb.start()]
}

// Back returns the last element, or the zero value if rb is empty.
func (rb *RingBuffer[T]) Back() T {
	var zero T
	if rb.size == 0 {
		return zero
	}
	return rb.data[rb.end()]
}

// Len returns the number of elements.
func (rb *RingBuffer[T]) Len() int { return rb.size }

// Cap returns the number of slots.
func (rb *RingBuffer[T]) Cap() int { return len(rb.data) }

// Empty reports whether rb holds no elements.
func (rb *RingBuffer[T]) Empty() bool { return rb.size == 0 }

// Full reports whether every slot holds an element. A zero-capacity buffer is
// both empty and full.
func (rb *RingBuffer[T]) Full() bool { return rb.size == len(rb.data) }

// Reserve returns the number of free slots.
func (rb *RingBuffer[T]) Reserve() int { return len(rb.data) - rb.size }

// PushBack appends v after the last element.
func (rb *RingBuffer[T]) PushBack(v T) error {
	if rb.Full() {
		return fmt.Errorf("push back: %w", ErrOverflow)
	}
	rb.pushBack(v)
	return nil
}

// PushFront prepends v before the first element.
func (rb *RingBuffer[T]) PushFront(v T) error {
	if rb.Full() {
		return fmt.Errorf("push front: %w", ErrOverflow)
	}
	if rb.size == 0 {
		rb.setWindow(0, 0)
	} else {
		rb.head = (rb.start()-1+len(rb.data))%len(rb.data) + 1
	}
	rb.data[rb.start()] = v
	rb.size++
	return nil
}

// PopBack removes and returns the last element.
func (rb *RingBuffer[T]) PopBack() (T, error) {
	var zero T
	if rb.size == 0 {
		return zero, fmt.Errorf("pop back: %w", ErrUnderflow)
	}
	return rb.popBack(), nil
}

// PopFront removes and returns the first element.
func (rb *RingBuffer[T]) PopFront() (T, error) {
	var zero T
	if rb.size == 0 {
		return zero, fmt.Errorf("pop front: %w", ErrUnderflow)
	}
	v := rb.data[rb.start()]
	rb.data[rb.start()] = zero
	rb.head = (rb.start()+1)%len(rb.data) + 1
	rb.size--
	if rb.size == 0 {
		rb.reset()
	}
	return v, nil
}

// Linearize moves the elements so they occupy slots [0, Len()) in logical
// order and returns that run. The returned slice aliases the buffer's storage
// and is only valid until the next mutating call. Logical indexes are
// unchanged.
func (rb *RingBuffer[T]) Linearize() []T {
	if rb.size == 0 {
		return nil
	}
	if start := rb.start(); start != 0 {
		if start+rb.size <= len(rb.data) {
			copy(rb.data, rb.data[start:start+rb.size])
			clear(rb.data[max(rb.size, start) : start+rb.size])
		} else {
			// Wrapped: the free slots between end and start end up at the tail.
			rotateLeft(rb.data, start)
		}
		rb.setWindow(0, rb.size-1)
	}
	return rb.data[:rb.size:rb.size]
}

// IsLinearized reports whether the elements already occupy slots
// [0, Len()). An empty buffer is always linearized.
func (rb *RingBuffer[T]) IsLinearized() bool {
	if rb.size == 0 {
		return true
	}
	return rb.start() == 0 && rb.end() == rb.size-1
}

// Rotate makes the element at logical index newBegin the first element,
// keeping the cyclic order of all elements. The buffer is left linearized.
func (rb *RingBuffer[T]) Rotate(newBegin int) error {
	if newBegin < 0 || newBegin >= rb.size {
		return fmt.Errorf("rotate to %d with %d elements: %w", newBegin, rb.size, ErrOutOfRange)
	}
	if newBegin == 0 {
		return nil
	}
	rotateLeft(rb.Linearize(), newBegin)
	return nil
}

// Insert places v at logical index pos, shifting the elements at
// [pos, Len()) one slot toward the back. pos may equal Len().
func (rb *RingBuffer[T]) Insert(pos int, v T) error {
	if pos < 0 || pos > rb.size {
		return fmt.Errorf("insert at %d with %d elements: %w", pos, rb.size, ErrOutOfRange)
	}
	if rb.Full() {
		return fmt.Errorf("insert at %d: %w", pos, ErrOverflow)
	}
	if rb.size == 0 {
		rb.pushBack(v)
		return nil
	}
	for i := rb.size - 1; i >= pos; i-- {
		rb.data[rb.slot(i+1)] = rb.data[rb.slot(i)]
	}
	rb.data[rb.slot(pos)] = v
	rb.size++
	rb.tail = rb.slot(rb.size-1) + 1
	return nil
}

// Erase removes the elements at logical indexes first through last
// inclusive, closing the gap by shifting the following elements forward.
func (rb *RingBuffer[T]) Erase(first, last int) error {
	if first < 0 || last >= rb.size || first > last {
		return fmt.Errorf("erase [%d, %d] with %d elements: %w", first, last, rb.size, ErrOutOfRange)
	}
	n := last - first + 1
	for i := last + 1; i < rb.size; i++ {
		rb.data[rb.slot(i-n)] = rb.data[rb.slot(i)]
	}
	var zero T
	for i := rb.size - n; i < rb.size; i++ {
		rb.data[rb.slot(i)] = zero
	}
	rb.size -= n
	if rb.size == 0 {
		rb.reset()
	} else {
		rb.tail = rb.slot(rb.size-1) + 1
	}
	return nil
}

// Resize grows rb to n elements by appending fill, or shrinks it by dropping
// elements from the back.
func (rb *RingBuffer[T]) Resize(n int, fill T) error {
	if n < 0 || n > len(rb.data) {
		return fmt.Errorf("resize to %d with capacity %d: %w", n, len(rb.data), ErrOutOfRange)
	}
	for rb.size < n {
		rb.pushBack(fill)
	}
	for rb.size > n {
		rb.popBack()
	}
	return nil
}

// SetCapacity reallocates the storage with n slots. The elements are kept in
// logical order starting at slot 0; when n is smaller than Len() the trailing
// elements are dropped.
func (rb *RingBuffer[T]) SetCapacity(n int) error {
	if n <= 0 {
		return fmt.Errorf("set capacity to %d: %w", n, ErrInvalidArgument)
	}
	data := make([]T, n)
	keep := min(rb.size, n)
	first, second := rb.segments()
	copied := copy(data[:keep], first)
	copy(data[copied:keep], second)
	rb.data = data
	rb.size = keep
	if keep == 0 {
		rb.reset()
	} else {
		rb.setWindow(0, keep-1)
	}
	return nil
}

// Clear removes every element. Capacity and storage are kept.
func (rb *RingBuffer[T]) Clear() {
	clear(rb.data)
	rb.size = 0
	rb.reset()
}

// Values returns a copy of the elements in logical order.
func (rb *RingBuffer[T]) Values() []T {
	if rb.size == 0 {
		return nil
	}
	out := make([]T, rb.size)
	first, second := rb.segments()
	copied := copy(out, first)
	copy(out[copied:], second)
	return out
}

// String formats the elements in logical order.
func (rb *RingBuffer[T]) String() string {
	return fmt.Sprint(rb.Values())
}

// Equal reports whether a and b hold the same elements in the same logical
// order. Capacity and physical layout are ignored.
func Equal[T comparable](a, b *RingBuffer[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is like Equal but compares elements with eq.
func EqualFunc[T any](a, b *RingBuffer[T], eq func(T, T) bool) bool {
	if a.size != b.size {
		return false
	}
	for i := 0; i < a.size; i++ {
		if !eq(a.data[a.slot(i)], b.data[b.slot(i)]) {
			return false
		}
	}
	return true
}

func (rb *RingBuffer[T]) slot(i int) int {
	return (rb.start() + i) % len(rb.data)
}

// start returns the slot of the first element, noIndex when empty.
func (rb *RingBuffer[T]) start() int { return rb.head - 1 }

// end returns the slot of the last element, noIndex when empty.
func (rb *RingBuffer[T]) end() int { return rb.tail - 1 }

func (rb *RingBuffer[T]) setWindow(start, end int) {
	rb.head, rb.tail = start+1, end+1
}

func (rb *RingBuffer[T]) checkIndex(i int) error {
	if i < 0 || i >= rb.size {
		return fmt.Errorf("index %d with %d elements: %w", i, rb.size, ErrOutOfRange)
	}
	return nil
}

func (rb *RingBuffer[T]) reset() {
	rb.head, rb.tail = 0, 0
}

// pushBack appends v; the caller has checked that rb is not full.
func (rb *RingBuffer[T]) pushBack(v T) {
	if rb.size == 0 {
		rb.setWindow(0, 0)
	} else {
		rb.tail = (rb.end()+1)%len(rb.data) + 1
	}
	rb.data[rb.end()] = v
	rb.size++
}

// popBack removes the last element; the caller has checked that rb is not
// empty.
func (rb *RingBuffer[T]) popBack() T {
	var zero T
	v := rb.data[rb.end()]
	rb.data[rb.end()] = zero
	rb.tail = (rb.end()-1+len(rb.data))%len(rb.data) + 1
	rb.size--
	if rb.size == 0 {
		rb.reset()
	}
	return v
}

// segments returns the window as at most two physical runs in logical order.
func (rb *RingBuffer[T]) segments() (first, second []T) {
	if rb.size == 0 {
		return nil, nil
	}
	start := rb.start()
	if start+rb.size <= len(rb.data) {
		return rb.data[start : start+rb.size], nil
	}
	return rb.data[start:], rb.data[:rb.end()+1]
}

func rotateLeft[T any](s []T, k int) {
	slices.Reverse(s[:k])
	slices.Reverse(s[k:])
	slices.Reverse(s)
}
