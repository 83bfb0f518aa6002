package engine

import (
	"context"
	"fmt"

	"github.com/cbodonnell/stoneworks/pkg/cell"
	"github.com/cbodonnell/stoneworks/pkg/messages"
	"github.com/cbodonnell/stoneworks/pkg/repositories/models"
	"github.com/cbodonnell/stoneworks/pkg/schematic"
	"github.com/cbodonnell/stoneworks/pkg/workers"
	"github.com/cbodonnell/stoneworks/pkg/world"
	"github.com/google/uuid"
)

// PasteStatus describes an active paste job.
type PasteStatus struct {
	ID          uuid.UUID           `json:"id"`
	Destination world.BlockLocation `json:"destination"`
	Cursor      int                 `json:"cursor"`
	Entries     int                 `json:"entries"`
}

// CaptureCell snapshots the cell at loc.
func (e *Engine) CaptureCell(ctx context.Context, loc world.BlockLocation) (cell.Snapshot, error) {
	var snapshot cell.Snapshot
	var captureErr error
	err := e.call(ctx, func() {
		c, err := world.Resolve(e.worlds, loc)
		if err != nil {
			captureErr = err
			return
		}
		snapshot = e.accessor.Capture(c)
	})
	if err != nil {
		return cell.Snapshot{}, err
	}
	return snapshot, captureErr
}

// EnqueueMutation queues s to be applied at loc. Mutations for unknown
// worlds or positions are dropped when they are processed.
func (e *Engine) EnqueueMutation(loc world.BlockLocation, s cell.Snapshot) {
	e.mutations.Enqueue(loc, s)
}

// EnqueueSerialized queues the snapshot encoded in line.
func (e *Engine) EnqueueSerialized(loc world.BlockLocation, line string) {
	e.mutations.EnqueueSerialized(loc, line)
}

// CopyRegion captures the box spanned by c1 and c2, which must be in the
// same world. See schematic.Copy.
func (e *Engine) CopyRegion(ctx context.Context, c1, c2 world.BlockLocation, pivot *world.Location) (*schematic.Schematic, error) {
	if c1.World != c2.World {
		return nil, fmt.Errorf("corners are in different worlds: %s and %s", c1.World, c2.World)
	}
	if pivot != nil && pivot.World != c1.World {
		return nil, fmt.Errorf("pivot world %s does not match region world %s", pivot.World, c1.World)
	}
	if volume := world.NewBox(c1.Pos, c2.Pos).Volume(); volume > e.maxCopyVolume {
		return nil, fmt.Errorf("%w: %d cells exceeds %d", ErrRegionTooLarge, volume, e.maxCopyVolume)
	}

	var s *schematic.Schematic
	var copyErr error
	err := e.call(ctx, func() {
		w, ok := e.worlds.Get(c1.World)
		if !ok {
			copyErr = fmt.Errorf("%w: %s", world.ErrUnknownWorld, c1.World)
			return
		}
		s, copyErr = schematic.Copy(w, e.accessor, c1.Pos, c2.Pos, pivot)
	})
	if err != nil {
		return nil, err
	}
	return s, copyErr
}

// Paste starts placing s with its pivot at dest. The job is processed over
// the following ticks; callback, which may be nil, runs on the simulation
// goroutine once every entry has been considered.
func (e *Engine) Paste(s *schematic.Schematic, dest world.BlockLocation, opts schematic.PasteOptions, callback func(schematic.PasteResult)) (uuid.UUID, error) {
	if !e.worlds.Has(dest.World) {
		return uuid.Nil, fmt.Errorf("%w: %s", world.ErrUnknownWorld, dest.World)
	}
	if opts.Sparse == nil {
		opts.Sparse = e.sparse
	}

	job := schematic.NewPasteJob(s, dest, e.mutations, opts, func(r schematic.PasteResult) {
		e.broadcast(messages.MessageTypeServerPasteFinished, &messages.ServerPasteFinished{
			PasteID:    r.ID.String(),
			World:      r.Destination.World,
			X:          r.Destination.Pos.X(),
			Y:          r.Destination.Pos.Y(),
			Z:          r.Destination.Pos.Z(),
			Considered: r.Considered,
			Placed:     r.Placed,
			Skipped:    r.Skipped,
		})
		if callback != nil {
			callback(r)
		}
	})
	if err := e.Submit(func() { e.scheduler.Add(job) }); err != nil {
		return uuid.Nil, err
	}
	return job.ID(), nil
}

// CancelPaste removes an active paste job. Its callback is not run. It
// reports whether the job was active.
func (e *Engine) CancelPaste(ctx context.Context, id uuid.UUID) (bool, error) {
	var removed bool
	err := e.call(ctx, func() {
		for _, job := range e.scheduler.Jobs() {
			if job.ID() != id {
				continue
			}
			removed = e.scheduler.Remove(id)
			e.broadcast(messages.MessageTypeServerPasteCancelled, &messages.ServerPasteCancelled{
				PasteID: id.String(),
				Cursor:  job.Cursor(),
				Entries: job.Len(),
			})
			return
		}
	})
	return removed, err
}

// Pastes lists the active paste jobs in scheduling order.
func (e *Engine) Pastes(ctx context.Context) ([]PasteStatus, error) {
	var pastes []PasteStatus
	err := e.call(ctx, func() {
		for _, job := range e.scheduler.Jobs() {
			pastes = append(pastes, PasteStatus{
				ID:          job.ID(),
				Destination: job.Destination(),
				Cursor:      job.Cursor(),
				Entries:     job.Len(),
			})
		}
	})
	return pastes, err
}

// SaveSchematic hands s to the save worker and waits for the result.
func (e *Engine) SaveSchematic(ctx context.Context, name string, s *schematic.Schematic) (*models.Schematic, error) {
	if e.saveSchematicChan == nil {
		return nil, fmt.Errorf("schematic saving is %w", ErrNotConfigured)
	}
	if err := schematic.ValidateName(name); err != nil {
		return nil, err
	}

	result := make(chan workers.SaveSchematicResult, 1)
	request := workers.SaveSchematicRequest{Name: name, Schematic: s, Result: result}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case e.saveSchematicChan <- request:
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-result:
		return res.Record, res.Err
	}
}

// LoadSchematic reads a saved schematic. A file written with another format
// version fails with schematic.ErrUnsupportedVersion.
func (e *Engine) LoadSchematic(ctx context.Context, name string) (*schematic.Schematic, error) {
	if e.store == nil {
		return nil, fmt.Errorf("schematic store is %w", ErrNotConfigured)
	}
	return e.store.Load(ctx, name, e.worlds)
}

func (e *Engine) ListSchematics(ctx context.Context) ([]*models.Schematic, error) {
	if e.store == nil {
		return nil, fmt.Errorf("schematic store is %w", ErrNotConfigured)
	}
	return e.store.List(ctx)
}

func (e *Engine) DeleteSchematic(ctx context.Context, name string) error {
	if e.store == nil {
		return fmt.Errorf("schematic store is %w", ErrNotConfigured)
	}
	return e.store.Delete(ctx, name)
}
