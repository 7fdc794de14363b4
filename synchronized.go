package ringbuffer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Cleanable is an interface for types that require explicit cleanup
// when they are dropped from a Synchronized buffer (either by being
// overwritten or when Stop() is called).
type Cleanable interface {
	// Cleanup performs any necessary resource release.
	Cleanup()
}

// tryGetResponse carries the result of a TryGet back to the caller.
type tryGetResponse[T any] struct {
	item T
	ok   bool
}

type tryAddRequest[T any] struct {
	item T
	resp chan error
}

type doRequest[T any] struct {
	fn   func(*RingBuffer[T])
	resp chan error
}

// Synchronized owns a RingBuffer and serialises all access to it through a
// single goroutine, so it can be shared by producers and consumers.
type Synchronized[T any] struct {
	rb     *RingBuffer[T]
	logger *slog.Logger
	clean  bool

	// pending is the front item offered to Get; only run touches it.
	pending T

	addChan    chan T
	tryAddChan chan tryAddRequest[T]
	getChan    chan T
	tryGetChan chan chan tryGetResponse[T]
	getAllChan chan chan []T
	doChan     chan doRequest[T]

	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
}

// NewSynchronized starts a Synchronized buffer holding at most capacity
// items. Stop must be called to release its goroutine.
func NewSynchronized[T any](capacity int, opts ...Option) (*Synchronized[T], error) {
	rb, err := New[T](capacity)
	if err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &Synchronized[T]{
		rb:         rb,
		logger:     o.logger,
		clean:      o.cleanupOnStop,
		addChan:    make(chan T),
		tryAddChan: make(chan tryAddRequest[T]),
		getChan:    make(chan T),
		tryGetChan: make(chan chan tryGetResponse[T]),
		getAllChan: make(chan chan []T),
		doChan:     make(chan doRequest[T]),
		done:       make(chan struct{}),
		exited:     make(chan struct{}),
	}

	go s.run()

	return s, nil
}

// Add appends item. When the buffer is full the oldest item is dropped
// first, and cleaned up if it implements Cleanable.
func (s *Synchronized[T]) Add(item T) error {
	select {
	case s.addChan <- item:
		return nil
	case <-s.done:
		return ErrStopped
	}
}

// TryAdd appends item, or returns ErrOverflow when the buffer is full.
func (s *Synchronized[T]) TryAdd(item T) error {
	req := tryAddRequest[T]{item: item, resp: make(chan error, 1)}
	select {
	case s.tryAddChan <- req:
		return <-req.resp
	case <-s.done:
		return ErrStopped
	}
}

// Get blocks until an item is available and returns the oldest one. It
// returns the zero value once the buffer is stopped.
func (s *Synchronized[T]) Get() T {
	item, _ := s.GetContext(context.Background())
	return item
}

// GetContext is like Get but gives up when ctx is done.
func (s *Synchronized[T]) GetContext(ctx context.Context) (T, error) {
	var zero T
	select {
	case item := <-s.getChan:
		return item, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-s.done:
		return zero, ErrStopped
	}
}

// TryGet removes and returns the oldest item without blocking. If the
// buffer is empty, it returns the zero value and false.
func (s *Synchronized[T]) TryGet() (T, bool) {
	respChan := make(chan tryGetResponse[T], 1)
	select {
	case s.tryGetChan <- respChan:
	case <-s.done:
		var zero T
		return zero, false
	}
	resp := <-respChan
	return resp.item, resp.ok
}

// GetAll removes every item and returns them oldest first. Cleanup is not
// called on the returned items.
func (s *Synchronized[T]) GetAll() []T {
	respChan := make(chan []T, 1)
	select {
	case s.getAllChan <- respChan:
	case <-s.done:
		return nil
	}
	return <-respChan
}

// Do runs fn against the underlying buffer on the owning goroutine. fn must
// not retain the buffer or any slice obtained from it after returning.
// A panic in fn is recovered and returned as an error wrapping ErrPanicked;
// whatever fn changed before panicking stays applied.
func (s *Synchronized[T]) Do(fn func(rb *RingBuffer[T])) error {
	req := doRequest[T]{fn: fn, resp: make(chan error, 1)}
	select {
	case s.doChan <- req:
	case <-s.done:
		return ErrStopped
	}
	return <-req.resp
}

// Len returns the number of buffered items, or 0 once stopped.
func (s *Synchronized[T]) Len() int {
	var n int
	_ = s.Do(func(rb *RingBuffer[T]) { n = rb.Len() })
	return n
}

// Cap returns the current capacity, or 0 once stopped. It follows any
// SetCapacity made through Do.
func (s *Synchronized[T]) Cap() int {
	var n int
	_ = s.Do(func(rb *RingBuffer[T]) { n = rb.Cap() })
	return n
}

// Stop shuts down the owning goroutine and waits for it to exit. Remaining
// Cleanable items are cleaned up unless disabled with WithCleanupOnStop.
// Stop is safe to call more than once.
func (s *Synchronized[T]) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
	<-s.exited
}

// run is the core loop that serializes access to the buffer.
// It uses a nil channel to disable the 'get' case when the buffer is empty,
// so the 'done' signal is always received.
func (s *Synchronized[T]) run() {
	defer close(s.exited)

	var outputChan chan T

	for {
		if s.rb.Empty() {
			var zero T
			s.pending = zero
			outputChan = nil
		} else {
			s.pending = s.rb.Front()
			outputChan = s.getChan
		}

		select {
		case item := <-s.addChan:
			if s.rb.Full() {
				old, _ := s.rb.PopFront()
				cleanup(old)
				s.logger.Debug("ringbuffer overwrote oldest item", slog.Int("capacity", s.rb.Cap()))
			}
			_ = s.rb.PushBack(item)

		case req := <-s.tryAddChan:
			req.resp <- s.rb.PushBack(req.item)

		case outputChan <- s.pending:
			_, _ = s.rb.PopFront()

		case respChan := <-s.tryGetChan:
			item, err := s.rb.PopFront()
			respChan <- tryGetResponse[T]{item: item, ok: err == nil}

		case respChan := <-s.getAllChan:
			items := s.rb.Values()
			s.rb.Clear()
			s.logger.Debug("ringbuffer drained", slog.Int("items", len(items)))
			respChan <- items

		case req := <-s.doChan:
			req.resp <- s.call(req.fn)

		case <-s.done:
			remaining := s.rb.Len()
			if s.clean {
				for _, item := range s.rb.Values() {
					cleanup(item)
				}
			}
			s.rb.Clear()
			s.logger.Debug("ringbuffer stopped",
				slog.Int("remaining", remaining),
				slog.Bool("cleaned", s.clean))
			return
		}
	}
}

// call runs fn on the owned buffer, turning a panic into an error so the
// loop keeps serving.
func (s *Synchronized[T]) call(fn func(*RingBuffer[T])) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
			s.logger.Error("ringbuffer do callback panicked", slog.Any("panic", r))
		}
	}()
	fn(s.rb)
	return nil
}

func cleanup[T any](item T) {
	if c, ok := any(item).(Cleanable); ok {
		c.Cleanup()
	}
}
