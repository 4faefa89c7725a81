package hub

import (
	"sync"

	"golang.org/x/net/websocket"

	"github.com/plazahq/plaza/internal/wire"
)

// Client wraps one player's websocket with a buffered outbound queue so a
// slow reader can never stall a broadcast.
type Client struct {
	ws      *websocket.Conn
	metrics *Metrics

	mu     sync.Mutex // serializes Enqueue against Close
	closed bool
	send   chan wire.Envelope
}

func NewClient(ws *websocket.Conn, metrics *Metrics) *Client {
	c := &Client{
		ws:      ws,
		send:    make(chan wire.Envelope, 64),
		metrics: metrics,
	}
	go c.writePump()
	return c
}

// Enqueue queues an envelope without blocking. When the queue is full, or
// the client is already torn down, the message is dropped; presence catches
// up on the next event, and throws are at-most-once anyway.
func (c *Client) Enqueue(env wire.Envelope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		c.metrics.IncSendDropped()
		return
	}
	select {
	case c.send <- env:
	default:
		c.metrics.IncSendDropped()
	}
}

// Close shuts down the write pump and the underlying connection. Idempotent;
// a concurrent Enqueue either lands before the close or is dropped.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Client) writePump() {
	defer c.ws.Close()
	for env := range c.send {
		if err := websocket.JSON.Send(c.ws, env); err != nil {
			return
		}
	}
}
