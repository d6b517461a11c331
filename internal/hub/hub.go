// Package hub delivers board events to connected websocket
// subscribers. Delivery is fire-and-forget: a slow or broken
// subscriber is dropped, never waited on, so publishing can sit on the
// HTTP response path without affecting it.
package hub

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// EventMessageUpdate is published once per successfully created message.
const EventMessageUpdate = "messageUpdate"

// Event is the wire shape pushed to subscribers.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// Conn is the minimal connection surface the hub needs. It is
// satisfied by *websocket.Conn; tests substitute fakes.
type Conn interface {
	WriteJSON(v any) error
	Close() error
}

type client struct {
	conn Conn
	send chan Event
}

// Hub tracks active subscriber connections and fans events out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[int64]*client
	nextID  int64
}

// New creates an empty hub.
func New() *Hub {
	return &Hub{clients: make(map[int64]*client)}
}

// Register adds a connection and returns an id for later removal. A
// per-client goroutine drains a small buffer so one stalled peer never
// delays a publish.
func (h *Hub) Register(conn Conn) int64 {
	c := &client{conn: conn, send: make(chan Event, 16)}

	h.mu.Lock()
	h.nextID++
	id := h.nextID
	h.clients[id] = c
	h.mu.Unlock()

	go func() {
		for evt := range c.send {
			if err := conn.WriteJSON(evt); err != nil {
				log.Debug().Err(err).Int64("client", id).Msg("subscriber write failed")
				h.Unregister(id)
				return
			}
		}
	}()

	return id
}

// Unregister removes a previously-registered connection and closes it.
// Safe to call more than once for the same id.
func (h *Hub) Unregister(id int64) {
	h.mu.Lock()
	c, ok := h.clients[id]
	if ok {
		delete(h.clients, id)
	}
	h.mu.Unlock()

	if ok {
		close(c.send)
		_ = c.conn.Close()
	}
}

// Publish queues an event for every connected subscriber. A client
// whose buffer is full is dropped rather than waited on.
func (h *Hub) Publish(eventType string, data any) {
	evt := Event{Type: eventType, Data: data}

	h.mu.RLock()
	stale := make([]int64, 0)
	for id, c := range h.clients {
		select {
		case c.send <- evt:
		default:
			stale = append(stale, id)
		}
	}
	h.mu.RUnlock()

	for _, id := range stale {
		log.Debug().Int64("client", id).Msg("dropping slow subscriber")
		h.Unregister(id)
	}
}

// Count returns the number of connected subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The board has no cross-origin story yet; subscribers connect from
	// anywhere, same as the REST surface.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades an HTTP request to a websocket subscription. The
// read loop exists only to notice the peer going away; subscribers
// never send anything the hub acts on.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	id := h.Register(conn)

	go func() {
		defer h.Unregister(id)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
