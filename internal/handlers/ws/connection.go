package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/midnight/internal/protocol"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a frame to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Send pings with this period, must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Largest frame accepted from a client
	maxMessageSize = 64 * 1024
)

// connection is one upgraded client socket. It satisfies room.Connection.
type connection struct {
	id     string
	userID string
	name   string

	ws     *websocket.Conn
	send   chan *protocol.Envelope
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

func newConnection(id, userID, name string, ws *websocket.Conn, buffer int, logger *slog.Logger) *connection {
	return &connection{
		id:     id,
		userID: userID,
		name:   name,
		ws:     ws,
		send:   make(chan *protocol.Envelope, buffer),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// ID returns the server-assigned connection id
func (c *connection) ID() string {
	return c.id
}

// Send queues a frame without blocking the broadcaster's event loop
func (c *connection) Send(env *protocol.Envelope) error {
	select {
	case <-c.done:
		return ErrConnectionClosed
	default:
	}

	select {
	case c.send <- env:
		return nil
	default:
		return ErrSendBufferFull
	}
}

// close stops the writer. The send channel is never closed so a late
// broadcast cannot panic.
func (c *connection) close() {
	c.once.Do(func() {
		close(c.done)
	})
}

// writePump drains queued frames to the socket and keeps the peer alive with pings
func (c *connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case env := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteJSON(env); err != nil {
				c.logger.Debug("write failed",
					"connection_id", c.id,
					"event", env.Event,
					"error", err)
				c.close()
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		case <-c.done:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
