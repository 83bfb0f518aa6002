package queue

import "errors"

// ErrQueueFull is returned by bounded queues that cannot accept more items.
var ErrQueueFull = errors.New("queue is full")

// ErrQueueEmpty is returned when dequeuing from an empty queue.
var ErrQueueEmpty = errors.New("queue is empty")

// Queue represents a basic queue.
type Queue interface {
	Enqueue(item interface{}) error
	Dequeue() (interface{}, error)
	Size() int
	// ReadMessages removes and returns up to max pending items.
	ReadMessages(max int) ([]interface{}, error)
	ReadAllMessages() ([]interface{}, error)
	ClearQueue() error
}
