package schematic

import (
	"github.com/cbodonnell/stoneworks/pkg/cell"
	"github.com/cbodonnell/stoneworks/pkg/world"
	"github.com/google/uuid"
)

// DefaultPasteBudget is the number of entries considered per tick across all jobs.
const DefaultPasteBudget = 500

// Enqueuer accepts single cell mutations. mutations.Queue implements it.
type Enqueuer interface {
	Enqueue(loc world.BlockLocation, s cell.Snapshot)
}

// PasteOptions contains options for a paste.
type PasteOptions struct {
	// SkipSparse leaves cells whose type is in Sparse untouched.
	SkipSparse bool
	// Sparse defaults to cell.DefaultSparseSet.
	Sparse cell.SparseSet
	// Rotation is a quarter-turn count or a multiple of 90 degrees, clockwise around Y.
	Rotation int
}

// PasteResult is passed to the completion callback of a finished job.
type PasteResult struct {
	ID          uuid.UUID           `json:"id"`
	Destination world.BlockLocation `json:"destination"`
	Considered  int                 `json:"considered"`
	Placed      int                 `json:"placed"`
	Skipped     int                 `json:"skipped"`
}

// PasteJob is a resumable cursor over the entries of a schematic. It is
// owned by the simulation goroutine.
type PasteJob struct {
	id          uuid.UUID
	schematic   *Schematic
	destination world.BlockLocation
	skipSparse  bool
	sparse      cell.SparseSet
	rotation    int
	queue       Enqueuer
	callback    func(PasteResult)

	cursor  int
	placed  int
	skipped int
	done    bool
}

// NewPasteJob creates a job that places s with its pivot at destination. The
// callback may be nil.
func NewPasteJob(s *Schematic, destination world.BlockLocation, queue Enqueuer, opts PasteOptions, callback func(PasteResult)) *PasteJob {
	sparse := opts.Sparse
	if sparse == nil {
		sparse = cell.DefaultSparseSet()
	}
	return &PasteJob{
		id:          uuid.New(),
		schematic:   s,
		destination: destination,
		skipSparse:  opts.SkipSparse,
		sparse:      sparse,
		rotation:    NormalizeRotation(opts.Rotation),
		queue:       queue,
		callback:    callback,
	}
}

func (j *PasteJob) ID() uuid.UUID {
	return j.id
}

func (j *PasteJob) Cursor() int {
	return j.cursor
}

func (j *PasteJob) Len() int {
	return j.schematic.Len()
}

func (j *PasteJob) Destination() world.BlockLocation {
	return j.destination
}

// Finished reports whether every entry has been considered.
func (j *PasteJob) Finished() bool {
	return j.cursor == j.schematic.Len()
}

// Process considers up to max entries, enqueuing every entry that is not
// skipped at destination plus its rotated offset. It returns the number of
// entries considered, placed or skipped.
func (j *PasteJob) Process(max int) int {
	n := 0
	for n < max && j.cursor < len(j.schematic.entries) {
		entry := j.schematic.entries[j.cursor]
		j.cursor++
		n++

		s := cell.Parse(entry.Snapshot)
		if j.skipSparse && j.sparse.IsSparse(s) {
			j.skipped++
			continue
		}
		off := RotateOffset(entry.Offset(), j.rotation)
		j.queue.Enqueue(j.destination.Add(off), s)
		j.placed++
	}
	return n
}

func (j *PasteJob) Result() PasteResult {
	return PasteResult{
		ID:          j.id,
		Destination: j.destination,
		Considered:  j.cursor,
		Placed:      j.placed,
		Skipped:     j.skipped,
	}
}

// finish fires the callback, at most once.
func (j *PasteJob) finish() {
	if j.done {
		return
	}
	j.done = true
	if j.callback != nil {
		j.callback(j.Result())
	}
}

// SchedulerStats describes the work done by one Scheduler.Tick.
type SchedulerStats struct {
	Considered int `json:"considered"`
	Finished   int `json:"finished"`
}

// Scheduler spreads one per-tick entry budget over the active paste jobs in
// insertion order. It is owned by the simulation goroutine.
type Scheduler struct {
	jobs   []*PasteJob
	budget int
}

func NewScheduler(budget int) *Scheduler {
	if budget <= 0 {
		budget = DefaultPasteBudget
	}
	return &Scheduler{
		budget: budget,
	}
}

func (s *Scheduler) Budget() int {
	return s.budget
}

// Add appends job to the active set.
func (s *Scheduler) Add(job *PasteJob) {
	s.jobs = append(s.jobs, job)
}

// Remove drops an active job without firing its callback.
func (s *Scheduler) Remove(id uuid.UUID) bool {
	for i, job := range s.jobs {
		if job.id == id {
			s.jobs = append(s.jobs[:i:i], s.jobs[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of active jobs.
func (s *Scheduler) Len() int {
	return len(s.jobs)
}

// Jobs returns the active jobs in insertion order.
func (s *Scheduler) Jobs() []*PasteJob {
	jobs := make([]*PasteJob, len(s.jobs))
	copy(jobs, s.jobs)
	return jobs
}

// Tick advances the active jobs until the budget is spent, then removes the
// finished ones and fires their callbacks. Callbacks may Add new jobs; those
// are first processed on the next tick.
func (s *Scheduler) Tick() SchedulerStats {
	var stats SchedulerStats
	remaining := s.budget
	active := make([]*PasteJob, 0, len(s.jobs))
	var finished []*PasteJob
	for _, job := range s.jobs {
		if remaining > 0 {
			n := job.Process(remaining)
			remaining -= n
			stats.Considered += n
		}
		if job.Finished() {
			finished = append(finished, job)
		} else {
			active = append(active, job)
		}
	}
	s.jobs = active

	for _, job := range finished {
		job.finish()
	}
	stats.Finished = len(finished)
	return stats
}
