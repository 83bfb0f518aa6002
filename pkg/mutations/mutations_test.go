package mutations

import (
	"errors"
	"sync"
	"testing"

	mocks "github.com/cbodonnell/stoneworks/mocks/github.com/cbodonnell/stoneworks/pkg/accessor"
	"github.com/cbodonnell/stoneworks/pkg/accessor"
	"github.com/cbodonnell/stoneworks/pkg/cell"
	"github.com/cbodonnell/stoneworks/pkg/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRegistry() (*world.Registry, *world.Grid) {
	registry := world.NewRegistry()
	grid := world.NewGrid("world", world.GridOptions{})
	registry.Add(grid)
	return registry, grid
}

func loc(x, y, z int) world.BlockLocation {
	return world.BlockLocation{World: "world", Pos: world.Pos{x, y, z}}
}

func TestProcessor_TickCeilings(t *testing.T) {
	tests := []struct {
		name        string
		queued      int
		needsUpdate func(world.Cell, cell.Snapshot) bool
		want        TickStats
		wantLeft    int
	}{
		{
			name:        "all writes stop at write ceiling",
			queued:      1000,
			needsUpdate: func(world.Cell, cell.Snapshot) bool { return true },
			want:        TickStats{Checks: 50, Writes: 50},
			wantLeft:    950,
		},
		{
			name:        "all no-ops stop at check ceiling",
			queued:      1000,
			needsUpdate: func(world.Cell, cell.Snapshot) bool { return false },
			want:        TickStats{Checks: 200, Writes: 0},
			wantLeft:    800,
		},
		{
			name:   "one write in ten",
			queued: 1000,
			needsUpdate: func(c world.Cell, _ cell.Snapshot) bool {
				return c.Pos().X()%10 == 0
			},
			want:     TickStats{Checks: 200, Writes: 20},
			wantLeft: 800,
		},
		{
			name:        "short queue drains",
			queued:      7,
			needsUpdate: func(world.Cell, cell.Snapshot) bool { return true },
			want:        TickStats{Checks: 7, Writes: 7},
			wantLeft:    0,
		},
		{
			name:        "empty queue",
			queued:      0,
			needsUpdate: func(world.Cell, cell.Snapshot) bool { return true },
			want:        TickStats{},
			wantLeft:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, _ := newRegistry()
			acc := mocks.NewAccessor(t)
			acc.EXPECT().NeedsUpdate(mock.Anything, mock.Anything).RunAndReturn(tt.needsUpdate).Maybe()
			acc.EXPECT().Apply(mock.Anything, mock.Anything).Return(nil).Maybe()

			q := NewQueue()
			for i := 0; i < tt.queued; i++ {
				q.Enqueue(loc(i, 0, 0), cell.New("STONE", 0, nil))
			}

			p := NewProcessor(NewProcessorOptions{
				Queue:    q,
				Worlds:   registry,
				Accessor: acc,
			})
			got := p.Tick()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantLeft, q.Len())
			acc.AssertNumberOfCalls(t, "NeedsUpdate", tt.want.Checks)
			acc.AssertNumberOfCalls(t, "Apply", tt.want.Writes)
		})
	}
}

func TestProcessor_CustomCeilings(t *testing.T) {
	registry, _ := newRegistry()
	q := NewQueue()
	for i := 0; i < 20; i++ {
		q.Enqueue(loc(i, 0, 0), cell.New("STONE", 0, nil))
	}
	p := NewProcessor(NewProcessorOptions{
		Queue:     q,
		Worlds:    registry,
		Accessor:  accessor.NewLegacy(),
		MaxChecks: 10,
		MaxWrites: 3,
	})

	assert.Equal(t, TickStats{Checks: 3, Writes: 3}, p.Tick())
	assert.Equal(t, 17, q.Len())
}

func TestProcessor_AppliesInOrder(t *testing.T) {
	registry, grid := newRegistry()
	q := NewQueue()
	p := NewProcessor(NewProcessorOptions{
		Queue:    q,
		Worlds:   registry,
		Accessor: accessor.NewLegacy(),
	})

	q.Enqueue(loc(1, 2, 3), cell.New("STONE", 0, nil))
	q.EnqueueSerialized(loc(1, 2, 3), "material=WOOL|data=5")
	q.EnqueueSerialized(loc(1, 2, 3), "material=WOOL|data=5")

	stats := p.Tick()
	assert.Equal(t, TickStats{Checks: 3, Writes: 2}, stats)
	assert.Equal(t, int64(3), q.Enqueued())

	c, err := grid.Cell(world.Pos{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "WOOL", c.Type())
	assert.Equal(t, int8(5), c.Data())
}

func TestProcessor_Failures(t *testing.T) {
	registry, grid := newRegistry()
	acc := mocks.NewAccessor(t)
	acc.EXPECT().NeedsUpdate(mock.Anything, mock.Anything).RunAndReturn(func(c world.Cell, s cell.Snapshot) bool {
		if s.TypeID() == "EXPLOSIVE" {
			panic("boom")
		}
		return true
	})
	acc.EXPECT().Apply(mock.Anything, mock.Anything).RunAndReturn(func(c world.Cell, s cell.Snapshot) error {
		if s.TypeID() == "BROKEN" {
			return errors.New("rejected")
		}
		return c.SetType(s.TypeID())
	})

	var dropped []Mutation
	var errs []error
	q := NewQueue()
	p := NewProcessor(NewProcessorOptions{
		Queue:    q,
		Worlds:   registry,
		Accessor: acc,
		ErrorHandler: func(m Mutation, err error) {
			dropped = append(dropped, m)
			errs = append(errs, err)
		},
	})

	q.Enqueue(world.BlockLocation{World: "nether", Pos: world.Pos{0, 0, 0}}, cell.New("STONE", 0, nil))
	q.Enqueue(loc(0, 1000, 0), cell.New("STONE", 0, nil))
	q.Enqueue(loc(0, 0, 0), cell.New("BROKEN", 0, nil))
	q.Enqueue(loc(0, 0, 0), cell.New("EXPLOSIVE", 0, nil))
	q.Enqueue(loc(0, 0, 0), cell.New("STONE", 0, nil))

	stats := p.Tick()
	assert.Equal(t, TickStats{Checks: 5, Writes: 2, Failures: 4}, stats)
	assert.Equal(t, 0, q.Len())

	require.Len(t, errs, 4)
	assert.ErrorIs(t, errs[0], world.ErrUnknownWorld)
	assert.ErrorIs(t, errs[1], world.ErrOutOfBounds)
	assert.ErrorContains(t, errs[2], "rejected")
	assert.ErrorContains(t, errs[3], "boom")
	assert.Equal(t, "EXPLOSIVE", dropped[3].Snapshot.TypeID())

	c, err := grid.Cell(world.Pos{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, "STONE", c.Type())
}

func TestQueue_ConcurrentEnqueue(t *testing.T) {
	registry, grid := newRegistry()
	q := NewQueue()
	p := NewProcessor(NewProcessorOptions{
		Queue:    q,
		Worlds:   registry,
		Accessor: accessor.NewLegacy(),
	})

	const producers = 4
	const perProducer = 250
	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				q.Enqueue(loc(i, j%100, j/100), cell.New("STONE", 0, nil))
			}
		}(i)
	}
	wg.Wait()

	ticks := 0
	writes := 0
	for q.Len() > 0 {
		stats := p.Tick()
		assert.LessOrEqual(t, stats.Writes, DefaultMaxWrites)
		assert.LessOrEqual(t, stats.Checks, DefaultMaxChecks)
		writes += stats.Writes
		ticks++
	}
	assert.Equal(t, producers*perProducer, writes)
	assert.Equal(t, producers*perProducer/DefaultMaxWrites, ticks)

	c, err := grid.Cell(world.Pos{3, 99, 1})
	require.NoError(t, err)
	assert.Equal(t, "STONE", c.Type())
}
