package network

import (
	"fmt"

	"github.com/cbodonnell/stoneworks/pkg/log"
	"github.com/cbodonnell/stoneworks/pkg/messages"
)

type NetworkManager struct {
	ClientManager *ClientManager
}

type NewNetworkManagerOptions struct {
	ClientManager *ClientManager
}

func NewNetworkManager(options NewNetworkManagerOptions) *NetworkManager {
	clientManager := options.ClientManager
	if clientManager == nil {
		clientManager = NewClientManager(0)
	}
	return &NetworkManager{
		ClientManager: clientManager,
	}
}

// SendMessageToAll queues msg for every connected client. Clients whose
// buffer is full miss the message.
func (n *NetworkManager) SendMessageToAll(msg *messages.Message) error {
	b, err := messages.SerializeMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %v", err)
	}

	for _, client := range n.ClientManager.GetClients() {
		if err := n.ClientManager.Send(client.ID, b); err != nil {
			log.Warn("Failed to send %s message to client %d: %v", msg.Type, client.ID, err)
		}
	}
	return nil
}
