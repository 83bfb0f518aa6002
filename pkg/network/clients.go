package network

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/cbodonnell/stoneworks/pkg/messages"
)

const (
	// ClientIDMaxRetries represents the maximum number of retries when generating a unique ID
	ClientIDMaxRetries = 1024
)

// ErrClientBufferFull is returned when a client is not reading fast enough.
var ErrClientBufferFull = errors.New("client buffer is full")

// ErrClientNotFound is returned for IDs that are not connected.
var ErrClientNotFound = errors.New("client not found")

// Client represents a connected event subscriber
type Client struct {
	ID          uint32
	RemoteAddr  string
	ConnectedAt time.Time
	send        chan []byte
}

// Messages returns the frames queued for the client. The channel is closed
// when the client is disconnected.
func (c *Client) Messages() <-chan []byte {
	return c.send
}

// ClientManager manages connected clients
type ClientManager struct {
	clients     map[uint32]*Client
	clientsLock sync.RWMutex
	bufferSize  int
}

// NewClientManager creates a new ClientManager. Each client buffers up to
// bufferSize frames, messages.MessageBufferSize if bufferSize is not positive.
func NewClientManager(bufferSize int) *ClientManager {
	if bufferSize <= 0 {
		bufferSize = messages.MessageBufferSize
	}
	return &ClientManager{
		clients:    make(map[uint32]*Client),
		bufferSize: bufferSize,
	}
}

// ConnectClient adds a new client to the manager
func (cm *ClientManager) ConnectClient(remoteAddr string) (*Client, error) {
	cm.clientsLock.Lock()
	defer cm.clientsLock.Unlock()

	clientID, err := cm.generateUniqueID(ClientIDMaxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate a unique ID: %v", err)
	}
	client := &Client{
		ID:          clientID,
		RemoteAddr:  remoteAddr,
		ConnectedAt: time.Now(),
		send:        make(chan []byte, cm.bufferSize),
	}
	cm.clients[clientID] = client

	return client, nil
}

// DisconnectClient removes a client from the manager and closes its message channel
func (cm *ClientManager) DisconnectClient(clientID uint32) {
	cm.clientsLock.Lock()
	defer cm.clientsLock.Unlock()

	client, ok := cm.clients[clientID]
	if !ok {
		return
	}
	close(client.send)
	delete(cm.clients, clientID)
}

// GetClients returns a slice with all connected clients.
func (cm *ClientManager) GetClients() []*Client {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	clients := make([]*Client, 0, len(cm.clients))
	for _, client := range cm.clients {
		clients = append(clients, client)
	}
	return clients
}

func (cm *ClientManager) Count() int {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	return len(cm.clients)
}

func (cm *ClientManager) Exists(clientID uint32) bool {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()
	_, ok := cm.clients[clientID]
	return ok
}

// Send queues b for a client without blocking.
func (cm *ClientManager) Send(clientID uint32, b []byte) error {
	cm.clientsLock.RLock()
	defer cm.clientsLock.RUnlock()

	client, ok := cm.clients[clientID]
	if !ok {
		return ErrClientNotFound
	}
	select {
	case client.send <- b:
		return nil
	default:
		return ErrClientBufferFull
	}
}

// generateUniqueID generates a unique client ID with a maximum number of retries
// it reads from the clients, so it needs to be locked before calling
func (cm *ClientManager) generateUniqueID(maxRetries int) (uint32, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		id := rand.Uint32()
		if id == 0 {
			continue
		}
		if _, ok := cm.clients[id]; !ok {
			return id, nil
		}
	}

	return 0, fmt.Errorf("failed to generate a unique ID after %d attempts", maxRetries)
}
