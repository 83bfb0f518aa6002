package queue

import (
	"go.uber.org/atomic"
)

// LockFreeQueue is an unbounded multi-producer FIFO (Michael and Scott).
// Enqueue never blocks and never rejects. Peek and Dequeue may be called
// from any goroutine, but a Peek followed by a Dequeue only refers to the
// same item when there is a single consumer.
type LockFreeQueue[T any] struct {
	head atomic.Pointer[lockFreeNode[T]]
	tail atomic.Pointer[lockFreeNode[T]]
	len  atomic.Int64
}

type lockFreeNode[T any] struct {
	value T
	next  atomic.Pointer[lockFreeNode[T]]
}

func NewLockFreeQueue[T any]() *LockFreeQueue[T] {
	q := &LockFreeQueue[T]{}
	sentinel := &lockFreeNode[T]{}
	q.head.Store(sentinel)
	q.tail.Store(sentinel)
	return q
}

// Enqueue appends v to the tail of the queue.
func (q *LockFreeQueue[T]) Enqueue(v T) {
	n := &lockFreeNode[T]{value: v}
	// counted before linking so Len never goes negative
	q.len.Inc()
	for {
		tail := q.tail.Load()
		next := tail.next.Load()
		if tail != q.tail.Load() {
			continue
		}
		if next != nil {
			// tail is lagging, help it along
			q.tail.CompareAndSwap(tail, next)
			continue
		}
		if tail.next.CompareAndSwap(nil, n) {
			q.tail.CompareAndSwap(tail, n)
			return
		}
	}
}

// Peek returns the head item without removing it.
func (q *LockFreeQueue[T]) Peek() (T, bool) {
	next := q.head.Load().next.Load()
	if next == nil {
		var zero T
		return zero, false
	}
	return next.value, true
}

// Dequeue removes and returns the head item.
func (q *LockFreeQueue[T]) Dequeue() (T, bool) {
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		next := head.next.Load()
		if head != q.head.Load() {
			continue
		}
		if next == nil {
			var zero T
			return zero, false
		}
		if head == tail {
			q.tail.CompareAndSwap(tail, next)
			continue
		}
		if q.head.CompareAndSwap(head, next) {
			q.len.Dec()
			return next.value, true
		}
	}
}

// Len returns the approximate number of queued items.
func (q *LockFreeQueue[T]) Len() int {
	return int(q.len.Load())
}

// Empty reports whether the queue currently holds no items.
func (q *LockFreeQueue[T]) Empty() bool {
	return q.head.Load().next.Load() == nil
}
