package workers

import (
	"context"
	"time"

	"github.com/cbodonnell/stoneworks/pkg/log"
	"github.com/cbodonnell/stoneworks/pkg/messages"
	"github.com/cbodonnell/stoneworks/pkg/repositories/models"
	"github.com/cbodonnell/stoneworks/pkg/schematic"
	"github.com/cbodonnell/stoneworks/pkg/state"
)

// SchematicSaver persists schematics. schematic.Store implements it.
type SchematicSaver interface {
	Save(ctx context.Context, name string, s *schematic.Schematic) (*models.Schematic, error)
}

type SaveSchematicWorker struct {
	saver                SchematicSaver
	saveSchematicChan    <-chan SaveSchematicRequest
	stateManager         state.StateManager
	broadcastMessageChan chan<- BroadcastMessage
	interval             time.Duration
}

type NewSaveSchematicWorkerOptions struct {
	Saver             SchematicSaver
	SaveSchematicChan <-chan SaveSchematicRequest
	StateManager      state.StateManager
	// BroadcastMessageChan receives saved and stats messages. Optional.
	BroadcastMessageChan chan<- BroadcastMessage
	Interval             time.Duration
}

type SaveSchematicRequest struct {
	Name      string
	Schematic *schematic.Schematic
	// Result receives exactly one value. It should be buffered.
	Result chan<- SaveSchematicResult
}

type SaveSchematicResult struct {
	Record *models.Schematic
	Err    error
}

// NewSaveSchematicWorker creates a new SaveSchematicWorker.
// The worker performs schematic saves off the simulation goroutine, one at a
// time, and periodically reports the engine stats.
func NewSaveSchematicWorker(opts NewSaveSchematicWorkerOptions) *SaveSchematicWorker {
	return &SaveSchematicWorker{
		saver:                opts.Saver,
		saveSchematicChan:    opts.SaveSchematicChan,
		stateManager:         opts.StateManager,
		broadcastMessageChan: opts.BroadcastMessageChan,
		interval:             opts.Interval,
	}
}

func (w *SaveSchematicWorker) Start(ctx context.Context) {
	interval := w.interval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case saveRequest := <-w.saveSchematicChan:
			w.saveSchematic(ctx, saveRequest)
		case <-ticker.C:
			w.reportStats(ctx)
		}
	}
}

func (w *SaveSchematicWorker) saveSchematic(ctx context.Context, saveRequest SaveSchematicRequest) {
	record, err := w.saver.Save(ctx, saveRequest.Name, saveRequest.Schematic)
	if err != nil {
		log.Error("Failed to save schematic %s: %v", saveRequest.Name, err)
	} else {
		log.Info("Saved schematic %s with %d entries to %s", record.Name, record.Entries, record.Path)
		w.broadcast(BroadcastMessage{
			Type: messages.MessageTypeServerSchematicSaved,
			Message: &messages.ServerSchematicSaved{
				Name:       record.Name,
				Path:       record.Path,
				Entries:    record.Entries,
				Compressed: record.Compressed,
			},
		})
	}
	if saveRequest.Result != nil {
		saveRequest.Result <- SaveSchematicResult{Record: record, Err: err}
	}
}

func (w *SaveSchematicWorker) reportStats(ctx context.Context) {
	if w.stateManager == nil {
		return
	}
	stats, err := w.stateManager.Get(ctx)
	if err != nil {
		log.Error("Failed to get engine stats: %v", err)
		return
	}
	log.Debug("Tick %d: queue depth %d, active pastes %d, writes %d, failures %d",
		stats.Ticks, stats.QueueDepth, stats.ActivePastes, stats.TotalWrites, stats.TotalFailures)
	w.broadcast(BroadcastMessage{Type: messages.MessageTypeServerStats, Message: &stats})
}

func (w *SaveSchematicWorker) broadcast(msg BroadcastMessage) {
	if w.broadcastMessageChan == nil {
		return
	}
	msg.Timestamp = time.Now().UnixMilli()
	select {
	case w.broadcastMessageChan <- msg:
	default:
		log.Warn("Dropped %s message: broadcast channel is full", msg.Type)
	}
}
