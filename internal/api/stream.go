package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/phillipDoubleU/showdex/internal/battle"
	"github.com/phillipDoubleU/showdex/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type streamClient struct {
	conn *websocket.Conn
	send chan battle.SimulationState
}

// StreamHub fans simulation-state updates out to websocket subscribers,
// grouped per battle identifier.
type StreamHub struct {
	mu      sync.Mutex
	clients map[string]map[*streamClient]struct{}
}

// NewStreamHub creates an empty hub.
func NewStreamHub() *StreamHub {
	return &StreamHub{clients: make(map[string]map[*streamClient]struct{})}
}

// Broadcast queues the state for every subscriber of battleID. Slow
// subscribers are dropped rather than blocking the caller.
func (hub *StreamHub) Broadcast(battleID string, state battle.SimulationState) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	for cl := range hub.clients[battleID] {
		select {
		case cl.send <- state:
		default:
			hub.dropLocked(battleID, cl)
		}
	}
}

// Close disconnects every subscriber of battleID.
func (hub *StreamHub) Close(battleID string) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	for cl := range hub.clients[battleID] {
		hub.dropLocked(battleID, cl)
	}
	delete(hub.clients, battleID)
}

func (hub *StreamHub) dropLocked(battleID string, cl *streamClient) {
	if set, ok := hub.clients[battleID]; ok {
		if _, present := set[cl]; present {
			delete(set, cl)
			close(cl.send)
		}
	}
}

// add registers the client and queues the initial state in one critical
// section, so a concurrent Close cannot close the send channel between
// registration and the first delivery.
func (hub *StreamHub) add(battleID string, cl *streamClient, initial battle.SimulationState) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	set, ok := hub.clients[battleID]
	if !ok {
		set = make(map[*streamClient]struct{})
		hub.clients[battleID] = set
	}
	set[cl] = struct{}{}
	select {
	case cl.send <- initial:
	default:
	}
}

func (hub *StreamHub) remove(battleID string, cl *streamClient) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	hub.dropLocked(battleID, cl)
}

// StreamSimulation upgrades the request to a websocket and streams state
// updates for one battle until the client disconnects.
func (h *SimulationHandler) StreamSimulation(c *gin.Context) {
	s, ok := h.lookup(c)
	if !ok {
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", err, logging.Fields{"battle_id": s.BattleID})
		return
	}
	cl := &streamClient{conn: conn, send: make(chan battle.SimulationState, 8)}
	// Initial state so a late subscriber is not blind until the next op.
	h.stream.add(s.BattleID, cl, s.State())

	go func() {
		defer func() {
			h.stream.remove(s.BattleID, cl)
			conn.Close()
		}()
		for state := range cl.send {
			if err := conn.WriteJSON(state); err != nil {
				return
			}
		}
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}()

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.stream.remove(s.BattleID, cl)
				return
			}
		}
	}()
}
