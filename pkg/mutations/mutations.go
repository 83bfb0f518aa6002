package mutations

import (
	"fmt"

	"github.com/cbodonnell/stoneworks/pkg/accessor"
	"github.com/cbodonnell/stoneworks/pkg/cell"
	"github.com/cbodonnell/stoneworks/pkg/log"
	"github.com/cbodonnell/stoneworks/pkg/queue"
	"github.com/cbodonnell/stoneworks/pkg/world"
	"go.uber.org/atomic"
)

const (
	DefaultMaxChecks = 200
	DefaultMaxWrites = 50
)

// Mutation is a request to make the cell at Location match Snapshot.
type Mutation struct {
	Location world.BlockLocation
	Snapshot cell.Snapshot
}

// Queue holds pending mutations. Enqueue is safe from any goroutine and
// never blocks; entries are not de-duplicated.
type Queue struct {
	q        *queue.LockFreeQueue[Mutation]
	enqueued atomic.Int64
}

func NewQueue() *Queue {
	return &Queue{
		q: queue.NewLockFreeQueue[Mutation](),
	}
}

func (q *Queue) Enqueue(loc world.BlockLocation, s cell.Snapshot) {
	q.q.Enqueue(Mutation{Location: loc, Snapshot: s})
	q.enqueued.Inc()
}

// EnqueueSerialized parses line with cell.Parse and enqueues the result.
func (q *Queue) EnqueueSerialized(loc world.BlockLocation, line string) {
	q.Enqueue(loc, cell.Parse(line))
}

// Len returns the approximate number of pending mutations.
func (q *Queue) Len() int {
	return q.q.Len()
}

// Enqueued returns the number of mutations ever enqueued.
func (q *Queue) Enqueued() int64 {
	return q.enqueued.Load()
}

// ErrorHandler receives mutations that were dropped because they failed.
type ErrorHandler func(m Mutation, err error)

// TickStats describes the work done by one Tick.
type TickStats struct {
	Checks   int `json:"checks"`
	Writes   int `json:"writes"`
	Failures int `json:"failures"`
}

// Processor drains a Queue against the live worlds. It must only be used
// from the simulation goroutine.
type Processor struct {
	queue     *Queue
	worlds    world.Lookup
	accessor  accessor.Accessor
	maxChecks int
	maxWrites int
	onError   ErrorHandler
}

// NewProcessorOptions contains options for creating a new Processor.
type NewProcessorOptions struct {
	Queue    *Queue
	Worlds   world.Lookup
	Accessor accessor.Accessor
	// MaxChecks bounds NeedsUpdate calls per tick. Defaults to DefaultMaxChecks.
	MaxChecks int
	// MaxWrites bounds Apply calls per tick. Defaults to DefaultMaxWrites.
	MaxWrites int
	// ErrorHandler defaults to logging the failure.
	ErrorHandler ErrorHandler
}

func NewProcessor(opts NewProcessorOptions) *Processor {
	p := &Processor{
		queue:     opts.Queue,
		worlds:    opts.Worlds,
		accessor:  opts.Accessor,
		maxChecks: opts.MaxChecks,
		maxWrites: opts.MaxWrites,
		onError:   opts.ErrorHandler,
	}
	if p.maxChecks <= 0 {
		p.maxChecks = DefaultMaxChecks
	}
	if p.maxWrites <= 0 {
		p.maxWrites = DefaultMaxWrites
	}
	if p.onError == nil {
		logger := log.With("component", "mutations")
		p.onError = func(m Mutation, err error) {
			logger.Error("Dropped mutation at %v: %v", m.Location, err)
		}
	}
	return p
}

// Tick processes queued mutations until the queue is empty or one of the
// per-tick ceilings is reached. Every examined entry is removed, whether it
// needed a write, was written or failed.
func (p *Processor) Tick() TickStats {
	var stats TickStats
	for stats.Checks < p.maxChecks && stats.Writes < p.maxWrites {
		m, ok := p.queue.q.Peek()
		if !ok {
			break
		}

		wrote, err := p.process(m)
		stats.Checks++
		if wrote {
			stats.Writes++
		}
		p.queue.q.Dequeue()

		if err != nil {
			stats.Failures++
			p.onError(m, err)
		}
	}
	return stats
}

// process checks one mutation and applies it if needed. wrote reports whether
// Apply was called, even if it then failed.
func (p *Processor) process(m Mutation) (wrote bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while processing mutation: %v", r)
		}
	}()

	c, err := world.Resolve(p.worlds, m.Location)
	if err != nil {
		return false, fmt.Errorf("failed to resolve cell: %w", err)
	}
	if !p.accessor.NeedsUpdate(c, m.Snapshot) {
		return false, nil
	}
	wrote = true
	if err := p.accessor.Apply(c, m.Snapshot); err != nil {
		return wrote, fmt.Errorf("failed to apply snapshot: %w", err)
	}
	return wrote, nil
}
