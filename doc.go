/*
Package ringbuffer provides a generic, fixed-capacity circular buffer with
constant-time push and pop at both ends and index-addressable access.

Elements are addressed by logical index: index 0 is the front, Len()-1 is the
back, regardless of where the elements physically sit in the backing slice.
The capacity never changes except through SetCapacity.

Usage:

Create a buffer of a specific type and capacity:

	rb, err := ringbuffer.New[string](4)
	if err != nil {
		return err
	}

Push and pop at either end. Pushing into a full buffer returns ErrOverflow and
popping from an empty one returns ErrUnderflow:

	_ = rb.PushBack("b")
	_ = rb.PushFront("a")
	if err := rb.PushBack("c"); errors.Is(err, ringbuffer.ErrOverflow) {
		// handle a full buffer
	}
	first, _ := rb.PopFront() // "a"

Access elements by logical index. At checks bounds and returns ErrOutOfRange;
Get skips the check for tight loops where the index is known to be valid:

	v, err := rb.At(0)
	for i := 0; i < rb.Len(); i++ {
		fmt.Println(rb.Get(i))
	}

Structural operations:

Insert and Erase work on logical positions, Rotate changes which element is
the front, and Linearize rearranges storage so the elements occupy one
contiguous slice:

	_ = rb.Insert(1, "x")
	_ = rb.Erase(0, 1) // removes indexes 0 and 1
	_ = rb.Rotate(1)
	window := rb.Linearize() // valid until the next mutating call

Concurrency:

RingBuffer is not safe for concurrent use. Synchronized wraps one behind a
single goroutine that serialises access over channels, for producer-consumer
use:

	s, _ := ringbuffer.NewSynchronized[int](10)
	defer s.Stop() // Clean up the background goroutine when done.

	go func() { _ = s.Add(1) }()
	item := s.Get() // blocks until an item is available

Add on a full Synchronized buffer drops the oldest item. Items implementing
Cleanable have Cleanup called when they are dropped that way or when Stop is
called.
*/
package ringbuffer
