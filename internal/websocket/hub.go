package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"ai-gateway-be/internal/pkg/logger"
	"ai-gateway-be/pkg/events"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisChannel carries live-log frames between gateway instances.
const RedisChannel = "gateway_log_events"

// Hub fans persisted log records out to every connected live-log client.
// With Redis configured, frames published on one instance reach clients of
// all instances.
type Hub struct {
	clients map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu sync.RWMutex

	// Redis connection for cross-instance communication
	rdb *redis.Client

	// origin marks frames this instance already delivered locally
	origin string

	logger logger.ILogger
}

var _ events.Publisher = (*Hub)(nil)

type frame struct {
	Type string                 `json:"type"`
	Data map[string]interface{} `json:"data"`
}

type clusterPayload struct {
	Origin  string          `json:"origin"`
	Message json.RawMessage `json:"message"`
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		rdb:        rdb,
		origin:     uuid.NewString(),
		logger:     log,
	}
}

// Run owns client registration until ctx is cancelled, then disconnects
// everyone.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"client_id": client.ID})

		case client := <-h.unregister:
			h.remove(client)

		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
			return
		}
	}
}

// ClientCount reports the number of locally connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish delivers the event to local clients and to the other instances.
func (h *Hub) Publish(ctx context.Context, event events.Event) error {
	data, err := json.Marshal(frame{Type: event.EventType(), Data: event.Payload()})
	if err != nil {
		return fmt.Errorf("encode live log frame: %w", err)
	}

	h.deliver(data)

	if h.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(clusterPayload{Origin: h.origin, Message: data})
	if err != nil {
		return fmt.Errorf("encode cluster payload: %w", err)
	}
	if err := h.rdb.Publish(ctx, RedisChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", RedisChannel, err)
	}
	return nil
}

func (h *Hub) join(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.Send)
	h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"client_id": c.ID})
}

// deliver never blocks: a client whose buffer is full is disconnected.
func (h *Hub) deliver(data []byte) {
	var slow []*Client

	h.mu.RLock()
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range slow {
		h.logger.Warn("Hub", "Client send buffer full, disconnecting", map[string]interface{}{"client_id": client.ID})
		h.remove(client)
	}
}

func (h *Hub) handleRemote(raw []byte) {
	var payload clusterPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		h.logger.Warn("Hub", "Discarding malformed cluster message", map[string]interface{}{"error": err.Error()})
		return
	}
	if payload.Origin == h.origin || len(payload.Message) == 0 {
		return
	}
	h.deliver(payload.Message)
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, RedisChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			h.handleRemote([]byte(msg.Payload))
		case <-ctx.Done():
			return
		}
	}
}
