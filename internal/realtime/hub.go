package realtime

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
)

// globalScope subscribers receive every event.
const globalScope int64 = 0

type Hub struct {
	mu       sync.RWMutex
	scopes   map[int64]map[*Client]struct{}
	upgrader websocket.Upgrader
}

// NewHub creates a hub that accepts upgrades from allowedOrigin ("*" or "" allows any).
func NewHub(allowedOrigin string) *Hub {
	h := &Hub{scopes: make(map[int64]map[*Client]struct{})}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" || allowedOrigin == "*" {
				return true
			}
			origin := r.Header.Get("Origin")
			return origin == "" || origin == allowedOrigin
		},
	}
	return h
}

func (h *Hub) Register(scope int64, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.scopes[scope] == nil {
		h.scopes[scope] = make(map[*Client]struct{})
	}
	h.scopes[scope][c] = struct{}{}
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.scopes[c.scope]; ok {
		if _, ok := conns[c]; ok {
			delete(conns, c)
			close(c.send)
		}
		if len(conns) == 0 {
			delete(h.scopes, c.scope)
		}
	}
}

// Publish delivers ev to global subscribers and to subscribers of its project.
// Clients whose queue is full are dropped.
func (h *Hub) Publish(ev Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[ws][publish][err] %v", err)
		return
	}

	var slow []*Client
	h.mu.RLock()
	slow = h.deliver(h.scopes[globalScope], payload, slow)
	if ev.ProjectID != nil && *ev.ProjectID != globalScope {
		slow = h.deliver(h.scopes[*ev.ProjectID], payload, slow)
	}
	h.mu.RUnlock()

	for _, c := range slow {
		log.Printf("[ws][drop] slow client scope=%d", c.scope)
		h.Unregister(c)
	}
}

func (h *Hub) deliver(conns map[*Client]struct{}, payload []byte, slow []*Client) []*Client {
	for c := range conns {
		select {
		case c.send <- payload:
		default:
			slow = append(slow, c)
		}
	}
	return slow
}

// Count reports connected clients across all scopes.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, conns := range h.scopes {
		n += len(conns)
	}
	return n
}

// ServeWS upgrades the request. ?projectId=N subscribes to one project,
// otherwise the client receives every event.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	scope := globalScope
	if raw := r.URL.Query().Get("projectId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, `{"error":"invalid projectId"}`, http.StatusBadRequest)
			return
		}
		scope = id
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws][upgrade][err] %v", err)
		return
	}
	c := newClient(h, conn, scope)
	h.Register(scope, c)
	log.Printf("[ws][register] scope=%d clients=%d", scope, h.Count())

	go c.writePump()
	go c.readPump()
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for scope, conns := range h.scopes {
		for c := range conns {
			close(c.send)
		}
		delete(h.scopes, scope)
	}
}
