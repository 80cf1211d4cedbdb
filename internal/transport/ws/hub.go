package ws

import (
	"encoding/json"
	"log"
	"sync"

	"talentflow/internal/assessment"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// MsgAssessmentSaved announces that the builder saved a new schema
	// version for the watched job.
	MsgAssessmentSaved MessageType = "assessment_saved"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages preview watchers. Any number of clients can watch a job;
// every save of that job's assessment is pushed to all of them so open
// preview and runtime views stay in sync with the builder.
type Hub struct {
	// job -> connections
	watchers map[string]map[*Connection]bool

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *jobMessage
}

// Connection represents one watching WebSocket client
type Connection struct {
	JobID string
	Send  chan []byte
}

type jobMessage struct {
	jobID   string
	message *Message
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		watchers:   make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *jobMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.watchers[conn.JobID] == nil {
				h.watchers[conn.JobID] = make(map[*Connection]bool)
			}
			h.watchers[conn.JobID][conn] = true
			h.mu.Unlock()
			log.Printf("Preview watcher connected for job %s", conn.JobID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.watchers[conn.JobID]; ok && conns[conn] {
				delete(conns, conn)
				close(conn.Send)
				if len(conns) == 0 {
					delete(h.watchers, conn.JobID)
				}
			}
			h.mu.Unlock()
			log.Printf("Preview watcher disconnected for job %s", conn.JobID)

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.message)
			for conn := range h.watchers[msg.jobID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// AssessmentSaved pushes the freshly saved schema to every watcher of the
// job (implements service.Broadcaster)
func (h *Hub) AssessmentSaved(jobID string, schema assessment.Schema) {
	payload, _ := json.Marshal(map[string]any{
		"jobId":  jobID,
		"schema": schema,
	})
	h.broadcast <- &jobMessage{
		jobID: jobID,
		message: &Message{
			Type:    MsgAssessmentSaved,
			Payload: payload,
		},
	}
}
