// ws/hub.go
package ws

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jotlin/jotlin-server/domain"
)

// Event types pushed to the owner's connected clients.
const (
	EventNoteCreated = "note_created"
	EventNoteUpdated = "note_updated"
	EventNoteDeleted = "note_deleted"
)

type Event struct {
	Type string       `json:"type"`
	Note *domain.Note `json:"note,omitempty"`
}

type envelope struct {
	userID uuid.UUID
	event  Event
}

// Hub fans note events out to websocket clients. Events are scoped to the
// note's owner: a client only ever sees changes to its own notes, so nothing
// authorization-sensitive travels here.
type Hub struct {
	clients    map[*websocket.Conn]uuid.UUID
	broadcast  chan envelope
	register   chan registration
	unregister chan *websocket.Conn
	mu         sync.RWMutex
	log        zerolog.Logger
}

type registration struct {
	conn   *websocket.Conn
	userID uuid.UUID
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]uuid.UUID),
		broadcast:  make(chan envelope, 256),
		register:   make(chan registration),
		unregister: make(chan *websocket.Conn),
		log:        log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case reg := <-h.register:
			h.mu.Lock()
			h.clients[reg.conn] = reg.userID
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case env := <-h.broadcast:
			h.mu.RLock()
			var dead []*websocket.Conn
			for conn, userID := range h.clients {
				if userID != env.userID {
					continue
				}
				if err := conn.WriteJSON(env.event); err != nil {
					h.log.Debug().Err(err).Msg("websocket write failed")
					dead = append(dead, conn)
				}
			}
			h.mu.RUnlock()
			for _, conn := range dead {
				h.mu.Lock()
				delete(h.clients, conn)
				h.mu.Unlock()
				conn.Close()
			}
		}
	}
}

// NotifyOwner queues an event for every connection the note's owner has open.
func (h *Hub) NotifyOwner(ownerID uuid.UUID, eventType string, note *domain.Note) {
	h.broadcast <- envelope{userID: ownerID, event: Event{Type: eventType, Note: note}}
}

// HandleConnection registers the connection and blocks reading until the
// client goes away. Inbound frames are drained and ignored; this is a
// one-way stream.
func (h *Hub) HandleConnection(conn *websocket.Conn, userID uuid.UUID) {
	h.register <- registration{conn: conn, userID: userID}
	defer func() { h.unregister <- conn }()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
