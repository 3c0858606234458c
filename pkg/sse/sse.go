package sse

import (
	"io"
	"log"
	"sync"

	"github.com/gin-gonic/gin"
)

// Event is a named payload pushed to connected browsers
type Event struct {
	Name string
	Data interface{}
}

type client struct {
	userID string
	ch     chan Event
}

// Manager fans out server-sent events to the connections of each user.
// A user may hold several connections (multiple tabs/devices).
type Manager struct {
	mu         sync.RWMutex
	clients    map[string]map[*client]struct{}
	register   chan *client
	unregister chan *client
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
	}
}

// Run processes client registration. Call once in a goroutine at startup.
func (m *Manager) Run() {
	for {
		select {
		case c := <-m.register:
			m.mu.Lock()
			if m.clients[c.userID] == nil {
				m.clients[c.userID] = make(map[*client]struct{})
			}
			m.clients[c.userID][c] = struct{}{}
			m.mu.Unlock()
			log.Printf("[SSE] Client connected for user %s", c.userID)
		case c := <-m.unregister:
			m.mu.Lock()
			if conns, ok := m.clients[c.userID]; ok {
				if _, ok := conns[c]; ok {
					delete(conns, c)
					close(c.ch)
					if len(conns) == 0 {
						delete(m.clients, c.userID)
					}
				}
			}
			m.mu.Unlock()
			log.Printf("[SSE] Client disconnected for user %s", c.userID)
		}
	}
}

// SendToUser delivers an event to every open connection of a user.
// Slow connections drop the event instead of blocking the caller.
func (m *Manager) SendToUser(userID, name string, data interface{}) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for c := range m.clients[userID] {
		select {
		case c.ch <- Event{Name: name, Data: data}:
		default:
		}
	}
}

// ServeHTTP streams events to the connection until the client goes away
func (m *Manager) ServeHTTP(c *gin.Context, userID string) {
	conn := &client{
		userID: userID,
		ch:     make(chan Event, 16),
	}
	m.register <- conn
	defer func() {
		m.unregister <- conn
	}()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-conn.ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, ev.Data)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
