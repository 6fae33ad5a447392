package realtime

import (
	"context"
	"sync"

	"github.com/mkarsten/waveline/utils"
)

// Hub is the registry of connected users. Each user id maps to the set of open
// connections for that user (one person, several tabs). Connect and disconnect
// flow through the Register/Unregister channels processed by Run; pushes read
// the registry directly.
type Hub struct {
	mu         sync.RWMutex
	clients    map[uint]map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint]map[*Client]bool),
		Register:   make(chan *Client, 16),
		Unregister: make(chan *Client, 16),
	}
}

// Run processes connect/disconnect events until ctx is canceled, then closes
// every remaining client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.Register:
			h.mu.Lock()
			conns, ok := h.clients[client.userID]
			if !ok {
				conns = make(map[*Client]bool)
				h.clients[client.userID] = conns
			}
			conns[client] = true
			total := len(conns)
			h.mu.Unlock()
			if utils.Sugar != nil {
				utils.Sugar.Infof("realtime client connected user=%d connections=%d", client.userID, total)
			}

		case client := <-h.Unregister:
			h.mu.Lock()
			if conns, ok := h.clients[client.userID]; ok && conns[client] {
				delete(conns, client)
				close(client.send)
				if len(conns) == 0 {
					delete(h.clients, client.userID)
				}
			}
			h.mu.Unlock()
			if utils.Sugar != nil {
				utils.Sugar.Infof("realtime client disconnected user=%d", client.userID)
			}
		}
	}
}

// PushToUser delivers the event to every open connection of userID. It never
// blocks: a connection whose buffer is full is skipped. Returns true when at
// least one connection accepted the event.
func (h *Hub) PushToUser(userID uint, event Event) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := false
	for client := range h.clients[userID] {
		select {
		case client.send <- event:
			delivered = true
		default:
			if utils.Sugar != nil {
				utils.Sugar.Warnf("realtime buffer full, dropping event for user=%d", userID)
			}
		}
	}
	return delivered
}

// Connected reports whether userID has at least one open connection.
func (h *Hub) Connected(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

// ClientCount returns the total number of open connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, conns := range h.clients {
		n += len(conns)
	}
	return n
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for userID, conns := range h.clients {
		for client := range conns {
			close(client.send)
		}
		delete(h.clients, userID)
	}
	if utils.Sugar != nil {
		utils.Sugar.Info("realtime hub stopped, all clients closed")
	}
}
