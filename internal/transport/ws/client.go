package ws

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/flintapp/flint/internal/domain"
	"github.com/flintapp/flint/internal/logger"
	"github.com/flintapp/flint/internal/service"
	"github.com/google/uuid"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

const (
	writeWait    = 10 * time.Second
	pingInterval = 30 * time.Second
	sendBufSize  = 256
)

// Chat is what the relay needs from the match service: membership
// checks for room joins and the persist step of send_message.
type Chat interface {
	EnsureParticipant(ctx context.Context, userID, matchID int64) (*domain.Match, error)
	SendMessage(ctx context.Context, userID, matchID int64, content, imageURL *string) (*domain.Message, error)
}

// Client represents a single authenticated websocket connection.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	chat   Chat
	id     uuid.UUID
	userID int64

	send chan []byte
	done chan struct{}
}

func NewClient(hub *Hub, conn *websocket.Conn, chat Chat, userID int64) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		chat:   chat,
		id:     uuid.New(),
		userID: userID,
		send:   make(chan []byte, sendBufSize),
		done:   make(chan struct{}),
	}
}

// ReadPump reads events from the websocket and dispatches them.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		var event Event
		err := wsjson.Read(context.Background(), c.conn, &event)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				logger.Debug("ws: client disconnected", "user_id", c.userID)
			} else {
				logger.Debug("ws: read error", "user_id", c.userID, "err", err)
			}
			return
		}

		c.handleEvent(&event)
	}
}

// WritePump writes messages from the send channel to the websocket.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Write(ctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				logger.Debug("ws: write error", "user_id", c.userID, "err", err)
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				logger.Debug("ws: ping error", "user_id", c.userID, "err", err)
				return
			}

		case <-c.done:
			return
		}
	}
}

// handleEvent routes one incoming client event.
func (c *Client) handleEvent(event *Event) {
	switch event.Type {
	case EventTypeJoinMatch:
		var p JoinMatchPayload
		if err := json.Unmarshal(event.Payload, &p); err != nil || p.MatchID <= 0 {
			c.sendError("INVALID_PAYLOAD", "invalid join_match payload")
			return
		}
		c.handleJoinMatch(p.MatchID)

	case EventTypeSendMessage:
		var p SendMessagePayload
		if err := json.Unmarshal(event.Payload, &p); err != nil || p.MatchID <= 0 {
			c.sendError("INVALID_PAYLOAD", "invalid send_message payload")
			return
		}
		c.handleSendMessage(&p)

	case EventTypePing:
		c.sendPong()

	default:
		c.sendError("UNKNOWN_EVENT", "unknown event type: "+event.Type)
	}
}

// handleJoinMatch admits the connection into the match's room only if
// its authenticated user is one of the match's two participants.
func (c *Client) handleJoinMatch(matchID int64) {
	_, err := c.chat.EnsureParticipant(context.Background(), c.userID, matchID)
	switch {
	case err == nil:
		c.hub.Join(c, matchID)
	case errors.Is(err, service.ErrMatchNotFound):
		c.sendError("NOT_FOUND", "match not found")
	case errors.Is(err, service.ErrNotParticipant):
		c.sendError("FORBIDDEN", "you are not part of this match")
	default:
		logger.Error("ws: join authorization failed", "user_id", c.userID, "match_id", matchID, "err", err)
		c.sendError("INTERNAL", "could not join match")
	}
}

// handleSendMessage persists first, then fans out the stored row.
// The send path is fire-and-forget: a persistence failure is logged
// and nothing is broadcast or surfaced to the channel, so senders who
// need certainty confirm via the history endpoint. Validation and
// authorization problems do get an error event back, matching the
// reject-before-dispatch rule for bad payloads.
func (c *Client) handleSendMessage(p *SendMessagePayload) {
	msg, err := c.chat.SendMessage(context.Background(), c.userID, p.MatchID, p.Content, p.ImageURL)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrMatchNotFound):
		c.sendError("NOT_FOUND", "match not found")
		return
	case errors.Is(err, service.ErrNotParticipant):
		c.sendError("FORBIDDEN", "you are not part of this match")
		return
	case errors.Is(err, service.ErrEmptyMessage):
		c.sendError("EMPTY_MESSAGE", "message needs text content or an image")
		return
	default:
		logger.Error("ws: persisting message failed", "user_id", c.userID, "match_id", p.MatchID, "err", err)
		return
	}

	evt, err := NewEvent(EventTypeReceiveMessage, ReceiveMessagePayload{Message: *msg})
	if err != nil {
		logger.Error("ws: marshal error", "err", err)
		return
	}
	c.hub.BroadcastToMatch(msg.MatchID, evt)
}

func (c *Client) sendPong() {
	data, _ := json.Marshal(Event{Type: EventTypePong})
	select {
	case c.send <- data:
	default:
	}
}

func (c *Client) sendError(code, message string) {
	evt, err := NewEvent(EventTypeError, ErrorPayload{Code: code, Message: message})
	if err != nil {
		return
	}
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
