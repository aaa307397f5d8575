// Package realtime delivers typed events to WebSocket subscribers
// grouped into named topics with dynamic membership.
package realtime

import (
	"sync"

	"service-foodrescue/internal/logx"
)

type counter interface {
	Inc()
}

// Hub tracks which client belongs to which topics and fans events out
// to current members. Delivery is best-effort: clients not connected
// at publish time receive nothing and nothing is queued.
type Hub struct {
	mu       sync.RWMutex
	rooms    map[string]map[*Client]struct{}
	byClient map[*Client]map[string]struct{}

	logger    logx.Logger
	published counter
}

// NewHub creates an empty Hub.
func NewHub(logger logx.Logger, published counter) *Hub {
	return &Hub{
		rooms:     map[string]map[*Client]struct{}{},
		byClient:  map[*Client]map[string]struct{}{},
		logger:    logger,
		published: published,
	}
}

// Join subscribes a client to a topic. Joining twice is a no-op.
func (h *Hub) Join(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := h.rooms[topic]
	if room == nil {
		room = map[*Client]struct{}{}
		h.rooms[topic] = room
	}
	room[c] = struct{}{}

	topics := h.byClient[c]
	if topics == nil {
		topics = map[string]struct{}{}
		h.byClient[c] = topics
	}
	topics[topic] = struct{}{}
}

// Leave unsubscribes a client from one topic.
func (h *Hub) Leave(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveLocked(c, topic)
}

// Drop unsubscribes a client from every topic it joined.
func (h *Hub) Drop(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for topic := range h.byClient[c] {
		h.leaveLocked(c, topic)
	}
	delete(h.byClient, c)
}

func (h *Hub) leaveLocked(c *Client, topic string) {
	if room, ok := h.rooms[topic]; ok {
		delete(room, c)
		if len(room) == 0 {
			delete(h.rooms, topic)
		}
	}
	if topics, ok := h.byClient[c]; ok {
		delete(topics, topic)
	}
}

// Publish sends an event to all current members of the topic and
// returns how many members were addressed. Send failures are logged
// and skipped; the client's read loop cleans up broken connections.
func (h *Hub) Publish(topic, event string, payload any) int {
	h.mu.RLock()
	members := make([]*Client, 0, len(h.rooms[topic]))
	for c := range h.rooms[topic] {
		members = append(members, c)
	}
	h.mu.RUnlock()

	for _, c := range members {
		if err := c.Send(event, payload); err != nil {
			h.logger.Warn("realtime send failed",
				logx.String("topic", topic),
				logx.String("event", event),
				logx.String("client", c.ID()),
				logx.Err(err),
			)
		}
	}
	if h.published != nil && len(members) > 0 {
		h.published.Inc()
	}
	h.logger.Debug("event published",
		logx.String("topic", topic),
		logx.String("event", event),
		logx.Int("members", len(members)),
	)
	return len(members)
}
