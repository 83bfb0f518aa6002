package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cbodonnell/stoneworks/pkg/accessor"
	"github.com/cbodonnell/stoneworks/pkg/cell"
	"github.com/cbodonnell/stoneworks/pkg/log"
	"github.com/cbodonnell/stoneworks/pkg/mutations"
	"github.com/cbodonnell/stoneworks/pkg/queue"
	"github.com/cbodonnell/stoneworks/pkg/repositories/models"
	"github.com/cbodonnell/stoneworks/pkg/schematic"
	"github.com/cbodonnell/stoneworks/pkg/state"
	"github.com/cbodonnell/stoneworks/pkg/workers"
	"github.com/cbodonnell/stoneworks/pkg/world"
)

const (
	DefaultTickInterval  = 50 * time.Millisecond
	DefaultMaxTasks      = 100
	DefaultTaskQueueSize = 10000
	// DefaultMaxCopyVolume bounds the cells captured by one CopyRegion.
	DefaultMaxCopyVolume = 1 << 20
)

var (
	// ErrRegionTooLarge is returned by CopyRegion for boxes above the copy volume limit.
	ErrRegionTooLarge = errors.New("region too large")
	// ErrNotConfigured is returned by operations whose backing component was not provided.
	ErrNotConfigured = errors.New("not configured")
)

// Task runs on the simulation goroutine at the start of a tick.
type Task func()

// SchematicStore reads and manages saved schematics. schematic.Store implements it.
type SchematicStore interface {
	Load(ctx context.Context, name string, worlds world.Lookup) (*schematic.Schematic, error)
	List(ctx context.Context) ([]*models.Schematic, error)
	Delete(ctx context.Context, name string) error
}

// Engine owns the live worlds, the mutation queue and the paste scheduler.
// Everything that touches live cells runs inside Tick on a single goroutine;
// the exported methods are safe to call from any other goroutine.
type Engine struct {
	worlds               *world.Registry
	accessor             accessor.Accessor
	variant              accessor.Variant
	mutations            *mutations.Queue
	processor            *mutations.Processor
	scheduler            *schematic.Scheduler
	taskQueue            queue.Queue
	maxTasks             int
	maxCopyVolume        int
	sparse               cell.SparseSet
	store                SchematicStore
	stateManager         state.StateManager
	saveSchematicChan    chan<- workers.SaveSchematicRequest
	broadcastMessageChan chan<- workers.BroadcastMessage
	tickInterval         time.Duration
	logger               *log.Logger

	// owned by the simulation goroutine
	stats state.EngineStats
}

// NewEngineOptions contains options for creating a new Engine.
type NewEngineOptions struct {
	Worlds *world.Registry
	// Accessor overrides the accessor chosen from Variant.
	Accessor accessor.Accessor
	// Variant is resolved against the registered worlds when Accessor is nil.
	Variant     accessor.Variant
	TaskQueue   queue.Queue
	MaxTasks    int
	MaxChecks   int
	MaxWrites   int
	PasteBudget int
	// MaxCopyVolume defaults to DefaultMaxCopyVolume.
	MaxCopyVolume int
	// Sparse is used by pastes that skip sparse cells without their own set.
	Sparse               cell.SparseSet
	Store                SchematicStore
	StateManager         state.StateManager
	SaveSchematicChan    chan<- workers.SaveSchematicRequest
	BroadcastMessageChan chan<- workers.BroadcastMessage
	TickInterval         time.Duration
}

func NewEngine(opts NewEngineOptions) (*Engine, error) {
	if opts.Worlds == nil {
		return nil, fmt.Errorf("worlds are required")
	}

	acc, variant := opts.Accessor, opts.Variant
	if acc == nil {
		worlds := make([]world.World, 0)
		for _, name := range opts.Worlds.Names() {
			if w, ok := opts.Worlds.Get(name); ok {
				worlds = append(worlds, w)
			}
		}
		var err error
		acc, variant, err = accessor.Select(opts.Variant, worlds...)
		if err != nil {
			return nil, fmt.Errorf("failed to select cell accessor: %v", err)
		}
	}
	e := &Engine{
		worlds:               opts.Worlds,
		accessor:             acc,
		variant:              variant,
		mutations:            mutations.NewQueue(),
		scheduler:            schematic.NewScheduler(opts.PasteBudget),
		taskQueue:            opts.TaskQueue,
		maxTasks:             opts.MaxTasks,
		maxCopyVolume:        opts.MaxCopyVolume,
		sparse:               opts.Sparse,
		store:                opts.Store,
		stateManager:         opts.StateManager,
		saveSchematicChan:    opts.SaveSchematicChan,
		broadcastMessageChan: opts.BroadcastMessageChan,
		tickInterval:         opts.TickInterval,
		logger:               log.With("component", "engine"),
	}
	e.processor = mutations.NewProcessor(mutations.NewProcessorOptions{
		Queue:     e.mutations,
		Worlds:    e.worlds,
		Accessor:  e.accessor,
		MaxChecks: opts.MaxChecks,
		MaxWrites: opts.MaxWrites,
	})
	if e.taskQueue == nil {
		e.taskQueue = queue.NewInMemoryQueue(DefaultTaskQueueSize)
	}
	if e.maxTasks <= 0 {
		e.maxTasks = DefaultMaxTasks
	}
	if e.maxCopyVolume <= 0 {
		e.maxCopyVolume = DefaultMaxCopyVolume
	}
	if e.sparse == nil {
		e.sparse = cell.DefaultSparseSet()
	}
	if e.stateManager == nil {
		e.stateManager = state.NewInMemoryStateManager()
	}
	if e.tickInterval <= 0 {
		e.tickInterval = DefaultTickInterval
	}
	e.stats.Accessor = string(variant)
	e.logger.Info("Using %s cell accessor", variant)
	return e, nil
}

// Start runs the simulation loop until ctx is done.
func (e *Engine) Start(ctx context.Context) error {
	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			e.tick(t)
		}
	}
}

// Tick runs one iteration of the simulation loop: pending tasks, then the
// mutation queue, then the paste scheduler. It must only be called from the
// simulation goroutine.
func (e *Engine) Tick() {
	e.tick(time.Now())
}

func (e *Engine) tick(t time.Time) {
	tasks := e.runTasks()
	mutationStats := e.processor.Tick()
	pasteStats := e.scheduler.Tick()
	e.publishStats(t, tasks, mutationStats, pasteStats)
}

func (e *Engine) runTasks() int {
	items, err := e.taskQueue.ReadMessages(e.maxTasks)
	if err != nil {
		e.logger.Error("Failed to read tasks: %v", err)
		return 0
	}
	for _, item := range items {
		task, ok := item.(Task)
		if !ok {
			e.logger.Error("Unhandled task type: %T", item)
			continue
		}
		e.runTask(task)
	}
	return len(items)
}

func (e *Engine) runTask(task Task) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Recovered from panic in task: %v", r)
		}
	}()
	task()
}

func (e *Engine) publishStats(t time.Time, tasks int, m mutations.TickStats, p schematic.SchedulerStats) {
	e.stats.Timestamp = t.UnixMilli()
	e.stats.Ticks++
	e.stats.QueueDepth = e.mutations.Len()
	e.stats.Enqueued = e.mutations.Enqueued()
	e.stats.ActivePastes = e.scheduler.Len()
	e.stats.PendingTasks = e.taskQueue.Size()
	e.stats.LastChecks = m.Checks
	e.stats.LastWrites = m.Writes
	e.stats.LastFailures = m.Failures
	e.stats.LastConsidered = p.Considered
	e.stats.TotalChecks += int64(m.Checks)
	e.stats.TotalWrites += int64(m.Writes)
	e.stats.TotalFailures += int64(m.Failures)
	e.stats.TotalConsidered += int64(p.Considered)
	e.stats.PastesFinished += int64(p.Finished)

	if err := e.stateManager.Set(context.Background(), e.stats); err != nil {
		e.logger.Error("Failed to publish engine stats: %v", err)
	}
	if tasks > 0 || m.Checks > 0 || p.Considered > 0 {
		e.logger.Trace("Tick %d: %d tasks, %d checks, %d writes, %d considered", e.stats.Ticks, tasks, m.Checks, m.Writes, p.Considered)
	}
}

// Submit schedules task for the next tick.
func (e *Engine) Submit(task Task) error {
	if err := e.taskQueue.Enqueue(task); err != nil {
		return fmt.Errorf("failed to submit task: %w", err)
	}
	return nil
}

// call runs fn on the simulation goroutine and waits for it to return. It
// must not be called from the simulation goroutine.
func (e *Engine) call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	var taskErr error
	err := e.Submit(func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				taskErr = fmt.Errorf("panic in task: %v", r)
			}
		}()
		fn()
	})
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return taskErr
	}
}

func (e *Engine) Worlds() *world.Registry {
	return e.worlds
}

// Variant returns the installed accessor variant.
func (e *Engine) Variant() accessor.Variant {
	return e.variant
}

// Stats returns the stats published by the latest tick.
func (e *Engine) Stats(ctx context.Context) (state.EngineStats, error) {
	return e.stateManager.Get(ctx)
}

func (e *Engine) broadcast(messageType string, message interface{}) {
	if e.broadcastMessageChan == nil {
		return
	}
	msg := workers.BroadcastMessage{
		Type:      messageType,
		Timestamp: time.Now().UnixMilli(),
		Message:   message,
	}
	select {
	case e.broadcastMessageChan <- msg:
	default:
		e.logger.Warn("Dropped %s message: broadcast channel is full", messageType)
	}
}
