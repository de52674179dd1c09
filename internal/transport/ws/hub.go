package ws

import (
	"encoding/json"

	"github.com/flintapp/flint/internal/logger"
	"github.com/google/uuid"
)

// Hub owns the room registry: match id → set of connections currently
// joined to that match's broadcast group. Membership is process-local
// and dies with the connection. All maps are touched only inside Run,
// so there is no locking.
type Hub struct {
	// clients maps connection id → client. A user with two devices has
	// two entries.
	clients map[uuid.UUID]*Client
	// rooms maps match id → joined clients.
	rooms map[int64]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	join       chan roomJoin
	broadcast  chan *broadcastMsg
}

type roomJoin struct {
	client  *Client
	matchID int64
}

type broadcastMsg struct {
	matchID int64
	data    []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		rooms:      make(map[int64]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan roomJoin),
		broadcast:  make(chan *broadcastMsg, 256),
	}
}

// Run starts the Hub's main event loop. Call this in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client.id] = client
			logger.Debug("ws hub: client connected", "user_id", client.userID, "total", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client.id]; ok {
				h.drop(client)
				logger.Debug("ws hub: client disconnected", "user_id", client.userID, "total", len(h.clients))
			}

		case j := <-h.join:
			// The client was authorized before this lands here; a
			// repeated join is a no-op.
			room, ok := h.rooms[j.matchID]
			if !ok {
				room = make(map[*Client]struct{})
				h.rooms[j.matchID] = room
			}
			room[j.client] = struct{}{}

		case msg := <-h.broadcast:
			for client := range h.rooms[msg.matchID] {
				select {
				case client.send <- msg.data:
				default:
					// Client buffer full - disconnect
					h.drop(client)
				}
			}
		}
	}
}

// drop removes the client from the registry and every room it joined.
// Only called from Run.
func (h *Hub) drop(client *Client) {
	delete(h.clients, client.id)
	for matchID, room := range h.rooms {
		delete(room, client)
		if len(room) == 0 {
			delete(h.rooms, matchID)
		}
	}
	close(client.send)
	close(client.done)
}

// Join adds the client to the match's broadcast group.
func (h *Hub) Join(client *Client, matchID int64) {
	h.join <- roomJoin{client: client, matchID: matchID}
}

// BroadcastToMatch fans an event out to every connection currently in
// the match's room, the sender's own other connections included.
func (h *Hub) BroadcastToMatch(matchID int64, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("ws hub: marshal error", "err", err)
		return
	}
	h.broadcast <- &broadcastMsg{
		matchID: matchID,
		data:    data,
	}
}
