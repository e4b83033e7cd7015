package sse

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mcoot/wordsearch/internal/model"
)

const (
	// Time between keepalive comments
	pingPeriod = 15 * time.Second

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Formatter turns an event into a wire message. Returning false skips the
// event for that client.
type Formatter func(event model.Event) ([]byte, bool)

// JSONFormatter sends every event as JSON, named by its type
func JSONFormatter(event model.Event) ([]byte, bool) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, false
	}
	return formatSSEMessage(string(event.Type), string(data)), true
}

// Client is one connected SSE stream
type Client struct {
	hub         *Hub
	playerID    model.PlayerID
	send        chan []byte
	format      Formatter
	connectedAt time.Time
}

// NewClient creates a new SSE client
func NewClient(hub *Hub, playerID model.PlayerID, format Formatter) *Client {
	if format == nil {
		format = JSONFormatter
	}
	return &Client{
		hub:         hub,
		playerID:    playerID,
		send:        make(chan []byte, sendBufferSize),
		format:      format,
		connectedAt: time.Now(),
	}
}

// ServeSSE streams hub events to the response until the client goes away
func ServeSSE(w http.ResponseWriter, r *http.Request, hub *Hub, playerID model.PlayerID, format Formatter) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	// Streams outlive the server's write timeout
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	client := NewClient(hub, playerID, format)
	hub.Register(client)
	defer hub.Unregister(client)

	_, _ = w.Write(formatSSEMessage("connected", `{"status":"connected"}`))
	flusher.Flush()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-client.send:
			if !ok {
				return
			}
			if _, err := w.Write(message); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := w.Write([]byte(": keepalive\n\n")); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
