package ringbuffer

import "errors"

// Errors returned by RingBuffer and Synchronized operations. Callers should
// compare with errors.Is, since most call sites wrap them with the offending
// index or capacity.
var (
	ErrInvalidArgument = errors.New("ringbuffer: invalid argument")
	ErrOutOfRange      = errors.New("ringbuffer: index out of range")
	ErrOverflow        = errors.New("ringbuffer: buffer is full")
	ErrUnderflow       = errors.New("ringbuffer: buffer is empty")
	ErrStopped         = errors.New("ringbuffer: buffer is stopped")
	ErrPanicked        = errors.New("ringbuffer: callback panicked")
)
