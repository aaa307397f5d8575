package realtime

import "sync"

// wsConn is the subset of *websocket.Conn the hub needs; tests swap in
// a recorder.
type wsConn interface {
	WriteJSON(v any) error
	Close() error
}

// Envelope is the wire form of every outbound event.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Client is one connected subscriber. Writes are serialized because
// gorilla connections allow a single concurrent writer.
type Client struct {
	id   string
	conn wsConn
	mu   sync.Mutex
}

// NewClient wraps a connection into a hub client.
func NewClient(id string, conn wsConn) *Client {
	return &Client{id: id, conn: conn}
}

// ID returns the connection identity (used only for logging).
func (c *Client) ID() string { return c.id }

// Send writes one event envelope to the connection.
func (c *Client) Send(event string, data any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(Envelope{Event: event, Data: data})
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
