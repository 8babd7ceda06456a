package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/trend-goat/trend-goat/internal/chart"
	"github.com/trend-goat/trend-goat/internal/store"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Self-hosted: the dashboard may sit behind any hostname
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub tracks websocket subscribers per experiment and fans refreshed chart
// payloads out to them after each ingest.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]string
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]string)}
}

func (h *Hub) add(conn *websocket.Conn, experiment string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = experiment
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}

// Broadcast sends a payload to every subscriber of the experiment. Dead
// connections are dropped on write failure.
func (h *Hub) Broadcast(experiment string, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn, exp := range h.clients {
		if exp != experiment {
			continue
		}
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("experiment")
	if name == "" {
		http.Error(w, "Missing experiment parameter", http.StatusBadRequest)
		return
	}

	if _, err := s.store.GetExperiment(r.Context(), name); err != nil {
		if err == store.ErrNotFound {
			http.Error(w, "Experiment not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		return
	}

	s.hub.add(conn, name)

	// Read loop exists only to notice the peer going away.
	go func() {
		defer func() {
			s.hub.remove(conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// broadcastChart pushes a fresh day-granularity view of the experiment to
// live subscribers. Subscribers reshape the view client-side; the push is
// the signal that underlying counts changed.
func (s *Server) broadcastChart(exp *store.Experiment) {
	state := chart.ViewState{
		Keys:        exp.Keys(),
		Granularity: chart.GranularityDay,
		Zoom:        chart.MinZoom,
		Pan:         0,
		Mode:        chart.ModeLine,
	}

	response, err := s.buildChartResponse(context.Background(), exp, state)
	if err != nil {
		return
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return
	}

	s.hub.Broadcast(exp.Name, payload)
}
