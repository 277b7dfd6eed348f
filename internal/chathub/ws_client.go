package chathub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"roomchat/backend/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// WebSocketClient implements the Client interface over gorilla/websocket.
// The connection was authenticated once at handshake; UserID is fixed for
// the connection's lifetime.
type WebSocketClient struct {
	ConnID string
	UserID string
	Conn   *websocket.Conn
	Hub    *ManagerService
	Send   chan models.Event

	quit      chan struct{}
	closeOnce sync.Once
}

// NewWebSocketClient wraps an upgraded connection.
func NewWebSocketClient(hub *ManagerService, connID, userID string, conn *websocket.Conn) *WebSocketClient {
	return &WebSocketClient{
		ConnID: connID,
		UserID: userID,
		Conn:   conn,
		Hub:    hub,
		Send:   make(chan models.Event, 256),
		quit:   make(chan struct{}),
	}
}

func (c *WebSocketClient) GetConnID() string                   { return c.ConnID }
func (c *WebSocketClient) GetUserID() string                   { return c.UserID }
func (c *WebSocketClient) GetSendChannel() chan<- models.Event { return c.Send }

// Run starts the read and write pumps.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close signals the write pump to stop. The Send channel itself is never
// closed: the read goroutine may still have a frame in flight when the hub
// drops the connection, and a late private error event must land in the
// buffer, not panic on a closed channel.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() { close(c.quit) })
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		var frame models.ClientFrame
		if err := json.Unmarshal(payload, &frame); err != nil {
			log.Printf("Error decoding frame from conn %s: %v", c.ConnID, err)
			continue
		}

		c.Hub.HandleFrame(c, frame)
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case <-c.quit:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case event := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))

			payload, err := json.Marshal(event)
			if err != nil {
				log.Printf("Error encoding event for conn %s: %v", c.ConnID, err)
				continue
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(payload)

			// Drain whatever else is already queued into the same write.
			n := len(c.Send)
			for i := 0; i < n; i++ {
				next := <-c.Send
				if extra, err := json.Marshal(next); err == nil {
					w.Write([]byte("\n"))
					w.Write(extra)
				}
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
