package workers

import (
	"context"
	"fmt"

	"github.com/cbodonnell/stoneworks/pkg/log"
	"github.com/cbodonnell/stoneworks/pkg/messages"
	"github.com/cbodonnell/stoneworks/pkg/state"
)

// Broadcaster delivers a message to every subscriber. network.NetworkManager implements it.
type Broadcaster interface {
	SendMessageToAll(msg *messages.Message) error
}

type BroadcastMessageWorker struct {
	broadcaster          Broadcaster
	broadcastMessageChan <-chan BroadcastMessage
}

type BroadcastMessage struct {
	Type      string
	Timestamp int64
	Message   interface{}
}

type NewBroadcastMessageWorkerOptions struct {
	Broadcaster          Broadcaster
	BroadcastMessageChan <-chan BroadcastMessage
}

func NewBroadcastMessageWorker(opts NewBroadcastMessageWorkerOptions) *BroadcastMessageWorker {
	return &BroadcastMessageWorker{
		broadcaster:          opts.Broadcaster,
		broadcastMessageChan: opts.BroadcastMessageChan,
	}
}

func (w *BroadcastMessageWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-w.broadcastMessageChan:
			if err := w.handle(msg); err != nil {
				log.Error("Failed to handle %s message: %v", msg.Type, err)
			}
		}
	}
}

func (w *BroadcastMessageWorker) handle(b BroadcastMessage) error {
	var ok bool
	switch b.Type {
	case messages.MessageTypeServerPasteFinished:
		_, ok = b.Message.(*messages.ServerPasteFinished)
	case messages.MessageTypeServerPasteCancelled:
		_, ok = b.Message.(*messages.ServerPasteCancelled)
	case messages.MessageTypeServerSchematicSaved:
		_, ok = b.Message.(*messages.ServerSchematicSaved)
	case messages.MessageTypeServerStats:
		_, ok = b.Message.(*state.EngineStats)
	default:
		return fmt.Errorf("unknown server message type")
	}
	if !ok {
		return fmt.Errorf("failed to cast %T", b.Message)
	}

	msg, err := messages.NewMessage(b.Type, b.Timestamp, b.Message)
	if err != nil {
		return err
	}
	return w.broadcaster.SendMessageToAll(msg)
}
